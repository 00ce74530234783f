package superadmin

import (
	"errors"
	"net/http"
	"strings"

	"github.com/maxturnos/turnos-service/internal/api/handlers"
	"github.com/maxturnos/turnos-service/internal/api/middleware"
	superadminService "github.com/maxturnos/turnos-service/internal/service/superadmin"
	"github.com/maxturnos/turnos-service/internal/service/superadmin/models"
)

const (
	msgInvalidRequestBody = "Cuerpo de la solicitud inválido"
	msgForbidden          = "No autorizado"
	msgRequiredFields     = "id y mailAsociado son obligatorios"
	msgInvalidID          = "id no válido"
	msgDuplicateCode      = "Ya existe un negocio con ese id"
	msgBusinessNotFound   = "Negocio no encontrado"
	msgInvalidInput       = "Datos inválidos"
)

// Handler панель суперадмина: бизнесы и их владельцы
type Handler struct {
	service SuperAdminService
	logger  Logger
}

func NewHandler(service SuperAdminService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/superadmin/negocios
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())
	list, err := h.service.List(r.Context(), actor)
	if err != nil {
		h.fail(w, "GET /superadmin/negocios", err, msgInvalidInput)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, list)
}

// Create POST /api/superadmin/negocios
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())

	var req models.CreateBusinessRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if strings.TrimSpace(req.ID) == "" || strings.TrimSpace(req.MailAsociado) == "" {
		handlers.RespondBadRequest(w, msgRequiredFields)
		return
	}

	resp, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		h.fail(w, "POST /superadmin/negocios", err, msgInvalidID)
		return
	}
	h.logger.Info("POST /superadmin/negocios - Business created: %s, owner=%s, services=%d, staff=%d",
		resp.Negocio.ID, resp.Negocio.MailAsociado, resp.Servicios, resp.Personal)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

// Update PUT /api/superadmin/negocios/{codigo}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())
	code := handlers.PathString(r, "codigo")

	var req models.UpdateBusinessRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	resp, err := h.service.Update(r.Context(), actor, code, &req)
	if err != nil {
		h.fail(w, "PUT /superadmin/negocios/"+code, err, msgInvalidInput)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Delete DELETE /api/superadmin/negocios/{codigo}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())
	code := handlers.PathString(r, "codigo")

	if err := h.service.Delete(r.Context(), actor, code); err != nil {
		h.fail(w, "DELETE /superadmin/negocios/"+code, err, msgInvalidInput)
		return
	}
	h.logger.Info("DELETE /superadmin/negocios/%s - Business deleted by %s", code, actor.Email)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) fail(w http.ResponseWriter, route string, err error, invalidMsg string) {
	switch {
	case errors.Is(err, superadminService.ErrForbidden):
		h.logger.Warn("%s - Forbidden", route)
		handlers.RespondForbidden(w, msgForbidden)
	case errors.Is(err, superadminService.ErrDuplicateCode):
		handlers.RespondConflict(w, msgDuplicateCode)
	case errors.Is(err, superadminService.ErrBusinessNotFound):
		handlers.RespondNotFound(w, msgBusinessNotFound)
	case errors.Is(err, superadminService.ErrInvalidInput):
		handlers.RespondBadRequest(w, invalidMsg)
	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
