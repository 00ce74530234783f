package cancel_day

import (
	"errors"
	"net/http"

	"github.com/maxturnos/turnos-service/internal/api/handlers"
	"github.com/maxturnos/turnos-service/internal/api/middleware"
	"github.com/maxturnos/turnos-service/internal/domain"
	cancelDay "github.com/maxturnos/turnos-service/internal/usecase/cancel_day"
)

const (
	msgInvalidRequestBody = "Cuerpo de la solicitud inválido"
	msgInvalidRequest     = "establecimiento y fecha (YYYY-MM-DD) son requeridos"
	msgBusinessNotFound   = "Negocio no encontrado"
	msgForbidden          = "No autorizado"
	msgInvalidInput       = "Datos inválidos"
)

type Handler struct {
	useCase CancelDayUseCase
	logger  Logger
}

func NewHandler(useCase CancelDayUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/dias-cancelados
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())

	var req CancelDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /dias-cancelados - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	date, err := handlers.ParseDate(req.Fecha)
	if err != nil || req.Establecimiento == "" {
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelDay.Request{
		Actor:        actor,
		BusinessCode: req.Establecimiento,
		Date:         date,
		Reason:       req.Motivo,
	})
	if err != nil {
		var hasBookings *cancelDay.DayHasBookingsError
		switch {
		case errors.As(err, &hasBookings):
			h.logger.Warn("POST /dias-cancelados - Day has %d active booking(s): business=%s, date=%s",
				hasBookings.Count, req.Establecimiento, req.Fecha)
			handlers.RespondConflict(w, hasBookings.Error())
		case errors.Is(err, cancelDay.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)
		case errors.Is(err, cancelDay.ErrForbidden):
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, cancelDay.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /dias-cancelados - Failed: business=%s, date=%s, error=%v", req.Establecimiento, req.Fecha, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
		h.logger.Info("POST /dias-cancelados - Day cancelled: business=%s, date=%s", req.Establecimiento, req.Fecha)
	}
	handlers.RespondJSON(w, status, CancelDayResponse{
		Fecha:  result.Date.Format(domain.DateFormat),
		Creado: result.Created,
	})
}
