package block_slots

import (
	"errors"
	"net/http"

	"github.com/maxturnos/turnos-service/internal/api/handlers"
	"github.com/maxturnos/turnos-service/internal/api/middleware"
	blockSlots "github.com/maxturnos/turnos-service/internal/usecase/block_slots"
)

const (
	msgInvalidRequestBody = "Cuerpo de la solicitud inválido"
	msgInvalidRequest     = "establecimiento, fechas (YYYY-MM-DD) y hora (HH:MM) son requeridos"
	msgForbidden          = "No autorizado"
	msgNoStaff            = "El negocio no tiene profesionales cargados"
	msgInvalidInput       = "Datos inválidos"
)

type Handler struct {
	useCase BlockSlotsUseCase
	logger  Logger
}

func NewHandler(useCase BlockSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/horarios-bloqueados
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())

	var req SlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /horarios-bloqueados - Invalid request body: %v", err)
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
		case errors.Is(err, blockSlots.ErrForbidden):
			h.logger.Warn("POST /horarios-bloqueados - Forbidden: user=%s, business=%s", actor.Email, req.Establecimiento)
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, blockSlots.ErrNoStaff):
			handlers.RespondNotFound(w, msgNoStaff)
		case errors.Is(err, blockSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /horarios-bloqueados - Failed: business=%s, error=%v", req.Establecimiento, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /horarios-bloqueados - business=%s, time=%s, blocked=%d, failed=%d",
		req.Establecimiento, req.Hora, result.Succeeded, result.Failed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
