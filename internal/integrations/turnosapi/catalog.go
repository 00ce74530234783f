package turnosapi

import (
	"context"
	"net/http"

	"github.com/maxturnos/turnos-service/internal/service/catalog/models"
)

// Services GET /servicios/{codigo}
func (c *Client) Services(ctx context.Context, code string) ([]models.ServiceResponse, error) {
	var resp []models.ServiceResponse
	if err := c.do(ctx, http.MethodGet, "/servicios/"+segment(code), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateService POST /servicios/{codigo}
func (c *Client) CreateService(ctx context.Context, code string, req models.ServiceRequest) (*models.ServiceResponse, error) {
	var resp models.ServiceResponse
	if err := c.do(ctx, http.MethodPost, "/servicios/"+segment(code), nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateService PUT /servicios/{codigo}/{id}
func (c *Client) UpdateService(ctx context.Context, code string, id int64, req models.ServiceRequest) (*models.ServiceResponse, error) {
	var resp models.ServiceResponse
	if err := c.do(ctx, http.MethodPut, "/servicios/"+segment(code)+"/"+formatID(id), nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteService DELETE /servicios/{codigo}/{id}
func (c *Client) DeleteService(ctx context.Context, code string, id int64) error {
	return c.do(ctx, http.MethodDelete, "/servicios/"+segment(code)+"/"+formatID(id), nil, nil, nil)
}

// ReorderServices PUT /servicios/{codigo}/orden
func (c *Client) ReorderServices(ctx context.Context, code string, ids []int64) error {
	return c.do(ctx, http.MethodPut, "/servicios/"+segment(code)+"/orden", nil, models.ReorderRequest{IDs: ids}, nil)
}

// Staff GET /personal/{codigo}
func (c *Client) Staff(ctx context.Context, code string) ([]models.StaffResponse, error) {
	var resp []models.StaffResponse
	if err := c.do(ctx, http.MethodGet, "/personal/"+segment(code), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateStaff POST /personal/{codigo}
func (c *Client) CreateStaff(ctx context.Context, code string, req models.StaffRequest) (*models.StaffResponse, error) {
	var resp models.StaffResponse
	if err := c.do(ctx, http.MethodPost, "/personal/"+segment(code), nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateStaff PUT /personal/{codigo}/{id}
func (c *Client) UpdateStaff(ctx context.Context, code string, id int64, req models.StaffRequest) (*models.StaffResponse, error) {
	var resp models.StaffResponse
	if err := c.do(ctx, http.MethodPut, "/personal/"+segment(code)+"/"+formatID(id), nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteStaff DELETE /personal/{codigo}/{id}
func (c *Client) DeleteStaff(ctx context.Context, code string, id int64) error {
	return c.do(ctx, http.MethodDelete, "/personal/"+segment(code)+"/"+formatID(id), nil, nil, nil)
}

// ReorderStaff PUT /personal/{codigo}/orden
func (c *Client) ReorderStaff(ctx context.Context, code string, ids []int64) error {
	return c.do(ctx, http.MethodPut, "/personal/"+segment(code)+"/orden", nil, models.ReorderRequest{IDs: ids}, nil)
}
