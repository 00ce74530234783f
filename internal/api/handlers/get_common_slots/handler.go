package get_common_slots

import (
	"errors"
	"net/http"

	"github.com/maxturnos/turnos-service/internal/api/handlers"
	getCommonSlots "github.com/maxturnos/turnos-service/internal/usecase/get_common_slots"
	"github.com/maxturnos/turnos-service/pkg/types"
)

const (
	msgInvalidRequest   = "establecimiento y fechas (YYYY-MM-DD separadas por coma) son requeridos"
	msgInvalidParam     = "profesionalId, servicioId o desde inválidos"
	msgBusinessNotFound = "Negocio no encontrado"
	msgNoStaff          = "El negocio no tiene profesionales cargados"
	msgAllFailed        = "No se pudieron obtener los horarios"
	msgInvalidInput     = "Parámetros inválidos"
)

type Handler struct {
	useCase GetCommonSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetCommonSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/reservas/horarios-comunes?establecimiento=&fechas=&profesionalId=&servicioId=&desde=
// Без profesionalId считается по всем сотрудникам (General).
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	code := q.Get("establecimiento")

	dates, err := handlers.ParseDates(q.Get("fechas"))
	if err != nil || len(dates) == 0 || code == "" {
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	req := &getCommonSlots.Request{BusinessCode: code, Dates: dates}
	if req.StaffID, err = handlers.QueryInt64(r, "profesionalId"); err != nil {
		handlers.RespondBadRequest(w, msgInvalidParam)
		return
	}
	if req.ServiceID, err = handlers.QueryInt64(r, "servicioId"); err != nil {
		handlers.RespondBadRequest(w, msgInvalidParam)
		return
	}
	if raw := q.Get("desde"); raw != "" {
		floor, err := types.NewTimeStringFromString(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidParam)
			return
		}
		req.MinOpening = &floor
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getCommonSlots.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)
		case errors.Is(err, getCommonSlots.ErrNoStaff):
			handlers.RespondNotFound(w, msgNoStaff)
		case errors.Is(err, getCommonSlots.ErrAllRequestsFailed):
			h.logger.Error("GET /reservas/horarios-comunes - All requests failed: business=%s, error=%v", code, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgAllFailed)
		case errors.Is(err, getCommonSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("GET /reservas/horarios-comunes - Failed: business=%s, error=%v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.Failed > 0 {
		h.logger.Warn("GET /reservas/horarios-comunes - %d request(s) skipped: business=%s", result.Failed, code)
	}
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
