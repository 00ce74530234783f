package create_booking

import (
	"errors"
	"net/http"

	"github.com/maxturnos/turnos-service/internal/api/handlers"
	"github.com/maxturnos/turnos-service/internal/api/middleware"
	"github.com/maxturnos/turnos-service/internal/service/bookings/models"
	createBooking "github.com/maxturnos/turnos-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "Cuerpo de la solicitud inválido"
	msgInvalidRequest     = "fecha (YYYY-MM-DD), hora (HH:MM) y establecimiento son requeridos"
	msgLoginRequired      = "Debes iniciar sesión para realizar una reserva"
	msgSlotNotAvailable   = "El horario seleccionado no está disponible para este profesional"
	msgBusinessNotFound   = "Negocio no encontrado"
	msgServiceNotFound    = "Servicio no encontrado"
	msgStaffNotFound      = "Profesional no encontrado"
	msgBusinessClosed     = "El negocio no atiende en la fecha seleccionada"
	msgInvalidDate        = "No se puede reservar en una fecha pasada"
	msgDateTooFar         = "La fecha seleccionada está fuera del período de reservas"
	msgInvalidTimeSlot    = "El horario seleccionado no es válido"
	msgTooLateToBook      = "El horario seleccionado ya pasó"
	msgInvalidInput       = "Datos de la reserva inválidos"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/reservas
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservas - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /reservas - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrLoginRequired):
			handlers.RespondUnauthorized(w, msgLoginRequired)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /reservas - Slot not available: business=%s, date=%s, time=%s, staff=%d",
				req.Establecimiento, req.Fecha, req.Hora, req.Profesional.ID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrStaffNotFound):
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createBooking.ErrBusinessClosed):
			handlers.RespondBadRequest(w, msgBusinessClosed)

		case errors.Is(err, createBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservas - Failed to create booking: business=%s, user=%s, error=%v",
				req.Establecimiento, actor.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservas - Booking created: id=%d, business=%s, user=%s",
		result.Booking.ID, result.Booking.BusinessCode, actor.Email)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainBooking(result.Booking))
}
