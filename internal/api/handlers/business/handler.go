package business

import (
	"errors"
	"net/http"

	"github.com/maxturnos/turnos-service/internal/api/handlers"
	"github.com/maxturnos/turnos-service/internal/api/middleware"
	businessService "github.com/maxturnos/turnos-service/internal/service/business"
	"github.com/maxturnos/turnos-service/internal/service/business/models"
)

const (
	msgInvalidRequestBody = "Cuerpo de la solicitud inválido"
	msgBusinessNotFound   = "Negocio no encontrado"
	msgAccessDenied       = "No autorizado"
	msgInvalidSchedule    = "Horario inválido: la apertura debe ser anterior al cierre y el intervalo entre 5 y 240 minutos"
	msgInvalidInput       = "Datos inválidos"
)

type CategoriesResponse struct {
	Categorias []string `json:"categorias"`
}

type ReviewOrderResponse struct {
	OrdenResenas string `json:"ordenResenas"`
}

// Handler настройки бизнеса и публичная витрина
type Handler struct {
	service BusinessService
	logger  Logger
}

func NewHandler(service BusinessService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Get GET /api/negocios/{codigo}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	code := handlers.PathString(r, "codigo")
	resp, err := h.service.Get(r.Context(), code)
	if err != nil {
		h.fail(w, "GET /negocios/"+code, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Storefront GET /api/negocios/{codigo}/vitrina
func (h *Handler) Storefront(w http.ResponseWriter, r *http.Request) {
	code := handlers.PathString(r, "codigo")
	resp, err := h.service.GetStorefront(r.Context(), code)
	if err != nil {
		h.fail(w, "GET /negocios/"+code+"/vitrina", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// UpdateSchedule PUT /api/negocios/{codigo}/horarios
func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())
	code := handlers.PathString(r, "codigo")

	var req models.UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	resp, err := h.service.UpdateSchedule(r.Context(), actor, code, &req)
	if err != nil {
		h.fail(w, "PUT /negocios/"+code+"/horarios", err)
		return
	}
	h.logger.Info("PUT /negocios/%s/horarios - Schedule updated by %s", code, actor.Email)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// UpdateCategories PUT /api/negocios/{codigo}/categorias
func (h *Handler) UpdateCategories(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())
	code := handlers.PathString(r, "codigo")

	var req models.UpdateCategoriesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	categories, err := h.service.UpdateCategories(r.Context(), actor, code, &req)
	if err != nil {
		h.fail(w, "PUT /negocios/"+code+"/categorias", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, CategoriesResponse{Categorias: categories})
}

// UpdateReviewOrder PUT /api/negocios/{codigo}/orden-resenas
func (h *Handler) UpdateReviewOrder(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())
	code := handlers.PathString(r, "codigo")

	var req models.UpdateReviewOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := h.service.UpdateReviewOrder(r.Context(), actor, code, &req); err != nil {
		h.fail(w, "PUT /negocios/"+code+"/orden-resenas", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, ReviewOrderResponse{OrdenResenas: req.OrdenResenas})
}

func (h *Handler) fail(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, businessService.ErrBusinessNotFound):
		handlers.RespondNotFound(w, msgBusinessNotFound)
	case errors.Is(err, businessService.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgAccessDenied)
	case errors.Is(err, businessService.ErrInvalidSchedule):
		handlers.RespondBadRequest(w, msgInvalidSchedule)
	case errors.Is(err, businessService.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)
	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
