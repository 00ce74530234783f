package restore_day

import (
	"errors"
	"net/http"

	"github.com/maxturnos/turnos-service/internal/api/handlers"
	"github.com/maxturnos/turnos-service/internal/api/middleware"
	"github.com/maxturnos/turnos-service/internal/domain"
	restoreDay "github.com/maxturnos/turnos-service/internal/usecase/restore_day"
)

const (
	msgInvalidDate      = "fecha inválida, se espera YYYY-MM-DD"
	msgBusinessNotFound = "Negocio no encontrado"
	msgForbidden        = "No autorizado"
	msgInvalidInput     = "Datos inválidos"
)

type Handler struct {
	useCase RestoreDayUseCase
	logger  Logger
}

func NewHandler(useCase RestoreDayUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/dias-cancelados/{establecimiento}/{fecha}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())
	code := handlers.PathString(r, "establecimiento")

	date, err := handlers.ParseDate(handlers.PathString(r, "fecha"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &restoreDay.Request{
		Actor:        actor,
		BusinessCode: code,
		Date:         date,
	})
	if err != nil {
		switch {
		case errors.Is(err, restoreDay.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)
		case errors.Is(err, restoreDay.ErrForbidden):
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, restoreDay.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("DELETE /dias-cancelados/%s - Failed: error=%v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	day := result.Date.Format(domain.DateFormat)
	h.logger.Info("DELETE /dias-cancelados/%s/%s - removed=%t, sundayRestored=%t", code, day, result.Removed, result.SundayRestored)
	handlers.RespondJSON(w, http.StatusOK, RestoreDayResponse{
		Fecha:             day,
		Eliminado:         result.Removed,
		DomingoRestaurado: result.SundayRestored,
	})
}
