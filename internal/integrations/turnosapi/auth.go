package turnosapi

import (
	"context"
	"net/http"

	"github.com/maxturnos/turnos-service/internal/service/auth/models"
)

// Login POST /auth/login. При успехе токен запоминается для следующих запросов.
// Администратор без бизнеса получает *BusinessNotFoundError.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	req := models.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

// Register POST /auth/register
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.UserResponse, error) {
	var resp models.UserResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout забывает токен
func (c *Client) Logout() {
	c.SetToken("")
}
