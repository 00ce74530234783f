package get_earnings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/maxturnos/turnos-service/internal/api/handlers"
	"github.com/maxturnos/turnos-service/internal/api/middleware"
	"github.com/maxturnos/turnos-service/internal/earnings"
	getEarnings "github.com/maxturnos/turnos-service/internal/usecase/get_earnings"
)

const (
	msgInvalidMode  = "modo debe ser dia, dias, semana o mes"
	msgInvalidDate  = "fecha (YYYY-MM-DD) o fechas inválidas"
	msgForbidden    = "No autorizado"
	msgInvalidInput = "Parámetros inválidos"

	defaultChartWidth  = 640
	defaultChartHeight = 240
)

type Handler struct {
	useCase GetEarningsUseCase
	logger  Logger
}

func NewHandler(useCase GetEarningsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/negocios/{codigo}/ingresos?modo=&fecha=&fechas=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	report, ok := h.report(w, r)
	if !ok {
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromReport(report))
}

// HandleChart GET /api/negocios/{codigo}/ingresos/grafico, тот же отчет в виде SVG
func (h *Handler) HandleChart(w http.ResponseWriter, r *http.Request) {
	report, ok := h.report(w, r)
	if !ok {
		return
	}
	width := queryInt(r, "ancho", defaultChartWidth)
	height := queryInt(r, "alto", defaultChartHeight)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(earnings.RenderSVG(report, width, height)))
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) (earnings.Report, bool) {
	actor, _ := middleware.GetPrincipal(r.Context())
	code := handlers.PathString(r, "codigo")
	q := r.URL.Query()

	mode := earnings.Mode(q.Get("modo"))
	if mode == "" {
		mode = earnings.ModeDay
	}
	if !mode.IsValid() {
		handlers.RespondBadRequest(w, msgInvalidMode)
		return earnings.Report{}, false
	}

	req := &getEarnings.Request{Actor: actor, BusinessCode: code, Mode: mode}
	var err error
	if mode == earnings.ModeDays {
		req.Dates, err = handlers.ParseDates(q.Get("fechas"))
	} else {
		req.Date, err = handlers.ParseDate(q.Get("fecha"))
	}
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return earnings.Report{}, false
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getEarnings.ErrForbidden):
			h.logger.Warn("GET /negocios/%s/ingresos - Forbidden: user=%s", code, actor.Email)
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, getEarnings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("GET /negocios/%s/ingresos - Failed: mode=%s, error=%v", code, mode, err)
			handlers.RespondInternalError(w)
		}
		return earnings.Report{}, false
	}
	return result.Report, true
}

func queryInt(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
