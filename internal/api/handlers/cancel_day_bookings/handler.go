package cancel_day_bookings

import (
	"errors"
	"net/http"

	"github.com/maxturnos/turnos-service/internal/api/handlers"
	"github.com/maxturnos/turnos-service/internal/api/middleware"
	cancelDayBookings "github.com/maxturnos/turnos-service/internal/usecase/cancel_day_bookings"
)

const (
	msgInvalidRequestBody = "Cuerpo de la solicitud inválido"
	msgInvalidRequest     = "establecimiento y fecha (YYYY-MM-DD) son requeridos"
	msgForbidden          = "No autorizado"
	msgInvalidInput       = "Datos inválidos"
)

type Handler struct {
	useCase CancelDayBookingsUseCase
	logger  Logger
}

func NewHandler(useCase CancelDayBookingsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/reservas/cancelar-dia
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())

	var req CancelDayBookingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservas/cancelar-dia - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	date, err := handlers.ParseDate(req.Fecha)
	if err != nil || req.Establecimiento == "" {
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelDayBookings.Request{
		Actor:        actor,
		BusinessCode: req.Establecimiento,
		Date:         date,
		Note:         req.Nota,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelDayBookings.ErrForbidden):
			h.logger.Warn("POST /reservas/cancelar-dia - Forbidden: user=%s, business=%s", actor.Email, req.Establecimiento)
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, cancelDayBookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /reservas/cancelar-dia - Failed: business=%s, date=%s, error=%v", req.Establecimiento, req.Fecha, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservas/cancelar-dia - business=%s, date=%s, cancelled=%d, failed=%d",
		req.Establecimiento, req.Fecha, result.Cancelled, result.Failed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
