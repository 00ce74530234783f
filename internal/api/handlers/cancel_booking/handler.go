package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/maxturnos/turnos-service/internal/api/handlers"
	"github.com/maxturnos/turnos-service/internal/api/middleware"
	"github.com/maxturnos/turnos-service/internal/service/bookings/models"
	cancelBooking "github.com/maxturnos/turnos-service/internal/usecase/cancel_booking"
)

const (
	msgInvalidBookingID   = "id de reserva inválido"
	msgInvalidRequestBody = "Cuerpo de la solicitud inválido"
	msgBookingNotFound    = "Reserva no encontrada"
	msgAccessDenied       = "No tienes permiso para cancelar esta reserva"
	msgCannotCancel       = "La reserva ya fue cancelada"
	msgInvalidInput       = "La nota de cancelación es demasiado larga"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/reservas/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())

	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req CancelBookingRequest
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("DELETE /reservas/%d - Invalid request body: %v", id, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &cancelBooking.Request{
		Actor:     actor,
		BookingID: id,
		Note:      req.Nota,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, cancelBooking.ErrAccessDenied):
			h.logger.Warn("DELETE /reservas/%d - Access denied: user=%s", id, actor.Email)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, cancelBooking.ErrCannotCancel):
			handlers.RespondConflict(w, msgCannotCancel)
		case errors.Is(err, cancelBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("DELETE /reservas/%d - Failed to cancel booking: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /reservas/%d - Booking cancelled by %s", id, actor.Email)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(result.Booking))
}
