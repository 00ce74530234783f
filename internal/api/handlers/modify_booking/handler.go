package modify_booking

import (
	"errors"
	"net/http"

	"github.com/maxturnos/turnos-service/internal/api/handlers"
	"github.com/maxturnos/turnos-service/internal/api/middleware"
	"github.com/maxturnos/turnos-service/internal/service/bookings/models"
	modifyBooking "github.com/maxturnos/turnos-service/internal/usecase/modify_booking"
)

const (
	msgInvalidBookingID   = "id de reserva inválido"
	msgInvalidRequestBody = "Cuerpo de la solicitud inválido"
	msgDateTimeRequired   = "fecha y hora son requeridos"
	msgBookingNotFound    = "Reserva no encontrada"
	msgStaffNotFound      = "Profesional no encontrado"
	msgAccessDenied       = "No tienes permiso para modificar esta reserva"
	msgCannotModify       = "La reserva ya fue cancelada y no se puede modificar"
	msgInvalidDate        = "No se puede mover la reserva a una fecha pasada"
	msgBusinessClosed     = "El negocio no atiende en la fecha seleccionada"
	msgSlotNotAvailable   = "El horario seleccionado no está disponible para este profesional"
	msgInvalidTimeSlot    = "El horario seleccionado no es válido"
	msgInvalidInput       = "Datos de la reserva inválidos"
)

type Handler struct {
	useCase ModifyBookingUseCase
	logger  Logger
}

func NewHandler(useCase ModifyBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/reservas/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())

	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req ModifyBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservas/%d - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	useCaseReq, err := req.ToUseCaseRequest(actor, id)
	if err != nil {
		handlers.RespondBadRequest(w, msgDateTimeRequired)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, modifyBooking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, modifyBooking.ErrStaffNotFound):
			handlers.RespondNotFound(w, msgStaffNotFound)
		case errors.Is(err, modifyBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /reservas/%d - Access denied: user=%s", id, actor.Email)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, modifyBooking.ErrCannotModify):
			handlers.RespondConflict(w, msgCannotModify)
		case errors.Is(err, modifyBooking.ErrSlotNotAvailable):
			handlers.RespondConflict(w, msgSlotNotAvailable)
		case errors.Is(err, modifyBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)
		case errors.Is(err, modifyBooking.ErrBusinessClosed):
			handlers.RespondBadRequest(w, msgBusinessClosed)
		case errors.Is(err, modifyBooking.ErrInvalidTimeSlot):
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)
		case errors.Is(err, modifyBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("PATCH /reservas/%d - Failed to modify booking: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservas/%d - Booking moved to %s %s, staff=%d",
		id, req.Fecha, result.Booking.StartTime, result.Booking.StaffID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(result.Booking))
}
