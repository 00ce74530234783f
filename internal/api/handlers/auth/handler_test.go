package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authService "github.com/maxturnos/turnos-service/internal/service/auth"
	"github.com/maxturnos/turnos-service/internal/service/auth/models"
	"github.com/maxturnos/turnos-service/pkg/logger"
)

type stubService struct {
	err error
}

func (s stubService) Register(_ context.Context, req *models.RegisterRequest) (*models.UserResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.UserResponse{Email: req.Email, Nombre: req.Nombre, Rol: "usuario"}, nil
}

func (s stubService) Login(_ context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.LoginResponse{Token: "jwt", Usuario: models.UserResponse{Email: req.Email}}, nil
}

func post(handle http.HandlerFunc, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handle(rec, httptest.NewRequest(http.MethodPost, "/api/auth", strings.NewReader(body)))
	return rec
}

func TestRegister(t *testing.T) {
	h := NewHandler(stubService{}, logger.Nop())
	rec := post(h.Register, `{"nombre":"ana","apellido":"pérez","email":"ana@example.com","password":"secreto"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	h = NewHandler(stubService{err: authService.ErrEmailTaken}, logger.Nop())
	rec = post(h.Register, `{"email":"ana@example.com"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Este email ya está registrado")
}

func TestLogin(t *testing.T) {
	h := NewHandler(stubService{}, logger.Nop())
	rec := post(h.Login, `{"email":"ana@example.com","password":"secreto"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "jwt", resp.Token)

	h = NewHandler(stubService{err: authService.ErrInvalidCredentials}, logger.Nop())
	assert.Equal(t, http.StatusUnauthorized, post(h.Login, `{"email":"x@example.com"}`).Code)
}

func TestLogin_AdminWithoutBusiness(t *testing.T) {
	h := NewHandler(stubService{err: &authService.BusinessNotFoundError{Email: "owner@example.com", BusinessName: "No especificado"}}, logger.Nop())
	rec := post(h.Login, `{"email":"owner@example.com","password":"secreto"}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp models.BusinessNotFoundResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.NegocioNoEncontrado)
	assert.Equal(t, "owner@example.com", resp.Email)
	assert.Equal(t, "No especificado", resp.NombreNegocio)
	assert.Equal(t, msgBusinessNotFound, resp.Message)
}
