package catalog

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/maxturnos/turnos-service/internal/api/handlers"
	"github.com/maxturnos/turnos-service/internal/api/middleware"
	catalogService "github.com/maxturnos/turnos-service/internal/service/catalog"
	"github.com/maxturnos/turnos-service/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "Cuerpo de la solicitud inválido"
	msgInvalidID          = "id inválido"
	msgBusinessNotFound   = "Negocio no encontrado"
	msgServiceNotFound    = "Servicio no encontrado"
	msgStaffNotFound      = "Profesional no encontrado"
	msgUnknownCategory    = "La categoría no pertenece al negocio"
	msgInvalidAvatar      = "La imagen del profesional no es válida"
	msgAccessDenied       = "No autorizado"
	msgInvalidInput       = "Datos inválidos"
)

// Handler услуги и персонал бизнеса
type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ListServices GET /api/servicios/{codigo}
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	code := handlers.PathString(r, "codigo")
	list, err := h.service.ListServices(r.Context(), code)
	if err != nil {
		h.fail(w, "GET /servicios/"+code, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, list)
}

// CreateService POST /api/servicios/{codigo}
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())
	code := handlers.PathString(r, "codigo")

	var req models.ServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	resp, err := h.service.CreateService(r.Context(), actor, code, &req)
	if err != nil {
		h.fail(w, "POST /servicios/"+code, err)
		return
	}
	h.logger.Info("POST /servicios/%s - Service created: id=%d", code, resp.ID)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

// UpdateService PUT /api/servicios/{codigo}/{id}
func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())
	code := handlers.PathString(r, "codigo")

	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	var req models.ServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	resp, err := h.service.UpdateService(r.Context(), actor, code, id, &req)
	if err != nil {
		h.fail(w, fmt.Sprintf("PUT /servicios/%s/%d", code, id), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// DeleteService DELETE /api/servicios/{codigo}/{id}
func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())
	code := handlers.PathString(r, "codigo")

	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	if err := h.service.DeleteService(r.Context(), actor, code, id); err != nil {
		h.fail(w, fmt.Sprintf("DELETE /servicios/%s/%d", code, id), err)
		return
	}
	h.logger.Info("DELETE /servicios/%s/%d - Service deleted", code, id)
	w.WriteHeader(http.StatusNoContent)
}

// ReorderServices PUT /api/servicios/{codigo}/orden
func (h *Handler) ReorderServices(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())
	code := handlers.PathString(r, "codigo")

	var req models.ReorderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := h.service.ReorderServices(r.Context(), actor, code, req.IDs); err != nil {
		h.fail(w, "PUT /servicios/"+code+"/orden", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListStaff GET /api/personal/{codigo}
func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	code := handlers.PathString(r, "codigo")
	list, err := h.service.ListStaff(r.Context(), code)
	if err != nil {
		h.fail(w, "GET /personal/"+code, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, list)
}

// CreateStaff POST /api/personal/{codigo}
func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())
	code := handlers.PathString(r, "codigo")

	var req models.StaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	resp, err := h.service.CreateStaff(r.Context(), actor, code, &req)
	if err != nil {
		h.fail(w, "POST /personal/"+code, err)
		return
	}
	h.logger.Info("POST /personal/%s - Staff created: id=%d", code, resp.ID)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

// UpdateStaff PUT /api/personal/{codigo}/{id}
func (h *Handler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())
	code := handlers.PathString(r, "codigo")

	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	var req models.StaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	resp, err := h.service.UpdateStaff(r.Context(), actor, code, id, &req)
	if err != nil {
		h.fail(w, fmt.Sprintf("PUT /personal/%s/%d", code, id), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// DeleteStaff DELETE /api/personal/{codigo}/{id}
func (h *Handler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())
	code := handlers.PathString(r, "codigo")

	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	if err := h.service.DeleteStaff(r.Context(), actor, code, id); err != nil {
		h.fail(w, fmt.Sprintf("DELETE /personal/%s/%d", code, id), err)
		return
	}
	h.logger.Info("DELETE /personal/%s/%d - Staff deleted", code, id)
	w.WriteHeader(http.StatusNoContent)
}

// ReorderStaff PUT /api/personal/{codigo}/orden
func (h *Handler) ReorderStaff(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())
	code := handlers.PathString(r, "codigo")

	var req models.ReorderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := h.service.ReorderStaff(r.Context(), actor, code, req.IDs); err != nil {
		h.fail(w, "PUT /personal/"+code+"/orden", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) fail(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, catalogService.ErrBusinessNotFound):
		handlers.RespondNotFound(w, msgBusinessNotFound)
	case errors.Is(err, catalogService.ErrServiceNotFound):
		handlers.RespondNotFound(w, msgServiceNotFound)
	case errors.Is(err, catalogService.ErrStaffNotFound):
		handlers.RespondNotFound(w, msgStaffNotFound)
	case errors.Is(err, catalogService.ErrUnknownCategory):
		handlers.RespondBadRequest(w, msgUnknownCategory)
	case errors.Is(err, catalogService.ErrInvalidAvatar):
		handlers.RespondBadRequest(w, msgInvalidAvatar)
	case errors.Is(err, catalogService.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgAccessDenied)
	case errors.Is(err, catalogService.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)
	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
