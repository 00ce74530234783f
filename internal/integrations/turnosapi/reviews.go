package turnosapi

import (
	"context"
	"net/http"

	"github.com/maxturnos/turnos-service/internal/service/reviews/models"
)

// Reviews GET /resenas/{codigo}, только одобренные
func (c *Client) Reviews(ctx context.Context, code string) ([]models.ReviewResponse, error) {
	var resp []models.ReviewResponse
	if err := c.do(ctx, http.MethodGet, "/resenas/"+segment(code), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// AllReviews GET /resenas/{codigo}/todas
func (c *Client) AllReviews(ctx context.Context, code string) ([]models.ReviewResponse, error) {
	var resp []models.ReviewResponse
	if err := c.do(ctx, http.MethodGet, "/resenas/"+segment(code)+"/todas", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateReview POST /resenas/{codigo}
func (c *Client) CreateReview(ctx context.Context, code string, req models.CreateReviewRequest) (*models.ReviewResponse, error) {
	var resp models.ReviewResponse
	if err := c.do(ctx, http.MethodPost, "/resenas/"+segment(code), nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ModerateReview PUT /resenas/{codigo}/{id}/moderacion; approved == nil возвращает в ожидание
func (c *Client) ModerateReview(ctx context.Context, code string, id int64, approved *bool) error {
	path := "/resenas/" + segment(code) + "/" + formatID(id) + "/moderacion"
	return c.do(ctx, http.MethodPut, path, nil, models.ModerateRequest{Aprobada: approved}, nil)
}

// DeleteReview DELETE /resenas/{codigo}/{id}
func (c *Client) DeleteReview(ctx context.Context, code string, id int64) error {
	return c.do(ctx, http.MethodDelete, "/resenas/"+segment(code)+"/"+formatID(id), nil, nil, nil)
}
