package unblock_slots

import (
	"errors"
	"net/http"

	"github.com/maxturnos/turnos-service/internal/api/handlers"
	"github.com/maxturnos/turnos-service/internal/api/middleware"
	unblockSlots "github.com/maxturnos/turnos-service/internal/usecase/unblock_slots"
)

const (
	msgInvalidRequestBody = "Cuerpo de la solicitud inválido"
	msgInvalidRequest     = "establecimiento, fechas (YYYY-MM-DD) y hora (HH:MM) son requeridos"
	msgForbidden          = "No autorizado"
	msgNoStaff            = "El negocio no tiene profesionales cargados"
	msgInvalidInput       = "Datos inválidos"
)

type Handler struct {
	useCase UnblockSlotsUseCase
	logger  Logger
}

func NewHandler(useCase UnblockSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/horarios-bloqueados
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())

	var req SlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("DELETE /horarios-bloqueados - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, unblockSlots.ErrForbidden):
			h.logger.Warn("DELETE /horarios-bloqueados - Forbidden: user=%s, business=%s", actor.Email, req.Establecimiento)
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, unblockSlots.ErrNoStaff):
			handlers.RespondNotFound(w, msgNoStaff)
		case errors.Is(err, unblockSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("DELETE /horarios-bloqueados - Failed: business=%s, error=%v", req.Establecimiento, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /horarios-bloqueados - business=%s, time=%s, unblocked=%d, failed=%d",
		req.Establecimiento, req.Hora, result.Succeeded, result.Failed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
