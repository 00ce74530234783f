package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/maxturnos/turnos-service/internal/api/handlers"
	getAvailableSlots "github.com/maxturnos/turnos-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidRequest   = "establecimiento, fecha (YYYY-MM-DD) y profesionalId son requeridos"
	msgInvalidServiceID = "servicioId inválido"
	msgBusinessNotFound = "Negocio no encontrado"
	msgServiceNotFound  = "Servicio no encontrado"
	msgStaffNotFound    = "Profesional no encontrado"
	msgInvalidInput     = "Parámetros inválidos"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/reservas/horarios-disponibles?establecimiento=&fecha=&profesionalId=&servicioId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	code := q.Get("establecimiento")

	date, err := handlers.ParseDate(q.Get("fecha"))
	if err != nil || code == "" {
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}
	staffID, err := handlers.QueryInt64(r, "profesionalId")
	if err != nil || staffID == nil {
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}
	serviceID, err := handlers.QueryInt64(r, "servicioId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		BusinessCode: code,
		Date:         date,
		StaffID:      *staffID,
		ServiceID:    serviceID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)
		case errors.Is(err, getAvailableSlots.ErrStaffNotFound):
			handlers.RespondNotFound(w, msgStaffNotFound)
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("GET /reservas/horarios-disponibles - Failed: business=%s, date=%s, staff=%d, error=%v",
				code, q.Get("fecha"), *staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
