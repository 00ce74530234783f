package auth

import (
	"errors"
	"net/http"

	"github.com/maxturnos/turnos-service/internal/api/handlers"
	authService "github.com/maxturnos/turnos-service/internal/service/auth"
	"github.com/maxturnos/turnos-service/internal/service/auth/models"
)

const (
	msgInvalidRequestBody = "Cuerpo de la solicitud inválido"
	msgEmailTaken         = "Este email ya está registrado"
	msgInvalidCredentials = "Credenciales inválidas"
	msgBusinessNotFound   = "No se encontró negocio para este administrador"
	msgInvalidInput       = "Datos de registro inválidos: email válido, nombre, apellido y contraseña de al menos 6 caracteres"
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register POST /api/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, authService.ErrEmailTaken):
			handlers.RespondConflict(w, msgEmailTaken)
		case errors.Is(err, authService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /auth/register - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/register - User registered: %s, role=%s", user.Email, user.Rol)
	handlers.RespondJSON(w, http.StatusCreated, user)
}

// Login POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		var notFound *authService.BusinessNotFoundError
		switch {
		case errors.As(err, &notFound):
			handlers.RespondJSON(w, http.StatusNotFound, models.BusinessNotFoundResponse{
				Message:             msgBusinessNotFound,
				NegocioNoEncontrado: true,
				Email:               notFound.Email,
				NombreNegocio:       notFound.BusinessName,
			})
		case errors.Is(err, authService.ErrInvalidCredentials):
			handlers.RespondUnauthorized(w, msgInvalidCredentials)
		default:
			h.logger.Error("POST /auth/login - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
