package reviews

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/maxturnos/turnos-service/internal/api/handlers"
	"github.com/maxturnos/turnos-service/internal/api/middleware"
	reviewsService "github.com/maxturnos/turnos-service/internal/service/reviews"
	"github.com/maxturnos/turnos-service/internal/service/reviews/models"
)

const (
	msgInvalidRequestBody = "Cuerpo de la solicitud inválido"
	msgInvalidID          = "id de reseña inválido"
	msgBusinessNotFound   = "Negocio no encontrado"
	msgReviewNotFound     = "Reseña no encontrada"
	msgLoginRequired      = "Debes iniciar sesión para dejar una reseña"
	msgAccessDenied       = "No autorizado"
	msgInvalidInput       = "La calificación debe estar entre 1 y 5 y el texto no puede superar los 500 caracteres"
)

// Handler отзывы клиентов и их модерация
type Handler struct {
	service ReviewsService
	logger  Logger
}

func NewHandler(service ReviewsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ListApproved GET /api/resenas/{codigo}
func (h *Handler) ListApproved(w http.ResponseWriter, r *http.Request) {
	code := handlers.PathString(r, "codigo")
	list, err := h.service.ListApproved(r.Context(), code)
	if err != nil {
		h.fail(w, "GET /resenas/"+code, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, list)
}

// ListAll GET /api/resenas/{codigo}/todas
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())
	code := handlers.PathString(r, "codigo")

	list, err := h.service.ListAll(r.Context(), actor, code)
	if err != nil {
		h.fail(w, "GET /resenas/"+code+"/todas", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, list)
}

// Create POST /api/resenas/{codigo}
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())
	code := handlers.PathString(r, "codigo")

	var req models.CreateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	resp, err := h.service.Create(r.Context(), actor, code, &req)
	if err != nil {
		h.fail(w, "POST /resenas/"+code, err)
		return
	}
	h.logger.Info("POST /resenas/%s - Review created: id=%d, user=%s", code, resp.ID, actor.Email)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

// Moderate PUT /api/resenas/{codigo}/{id}/moderacion
func (h *Handler) Moderate(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())
	code := handlers.PathString(r, "codigo")

	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	var req models.ModerateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := h.service.Moderate(r.Context(), actor, code, id, req.Aprobada); err != nil {
		h.fail(w, fmt.Sprintf("PUT /resenas/%s/%d/moderacion", code, id), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete DELETE /api/resenas/{codigo}/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())
	code := handlers.PathString(r, "codigo")

	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	if err := h.service.Delete(r.Context(), actor, code, id); err != nil {
		h.fail(w, fmt.Sprintf("DELETE /resenas/%s/%d", code, id), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) fail(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, reviewsService.ErrBusinessNotFound):
		handlers.RespondNotFound(w, msgBusinessNotFound)
	case errors.Is(err, reviewsService.ErrReviewNotFound):
		handlers.RespondNotFound(w, msgReviewNotFound)
	case errors.Is(err, reviewsService.ErrLoginRequired):
		handlers.RespondUnauthorized(w, msgLoginRequired)
	case errors.Is(err, reviewsService.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgAccessDenied)
	case errors.Is(err, reviewsService.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)
	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
