package turnosapi

import (
	"context"
	"net/http"

	"github.com/maxturnos/turnos-service/internal/service/superadmin/models"
)

// Businesses GET /superadmin/negocios
func (c *Client) Businesses(ctx context.Context) ([]models.BusinessSummary, error) {
	var resp []models.BusinessSummary
	if err := c.do(ctx, http.MethodGet, "/superadmin/negocios", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateBusiness POST /superadmin/negocios
func (c *Client) CreateBusiness(ctx context.Context, req models.CreateBusinessRequest) (*models.CreateBusinessResponse, error) {
	var resp models.CreateBusinessResponse
	if err := c.do(ctx, http.MethodPost, "/superadmin/negocios", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateBusiness PUT /superadmin/negocios/{codigo}
func (c *Client) UpdateBusiness(ctx context.Context, code string, req models.UpdateBusinessRequest) (*models.BusinessSummary, error) {
	var resp models.BusinessSummary
	if err := c.do(ctx, http.MethodPut, "/superadmin/negocios/"+segment(code), nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteBusiness DELETE /superadmin/negocios/{codigo}
func (c *Client) DeleteBusiness(ctx context.Context, code string) error {
	return c.do(ctx, http.MethodDelete, "/superadmin/negocios/"+segment(code), nil, nil, nil)
}
