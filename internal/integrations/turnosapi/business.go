package turnosapi

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	businessHandler "github.com/maxturnos/turnos-service/internal/api/handlers/business"
	getEarnings "github.com/maxturnos/turnos-service/internal/api/handlers/get_earnings"
	"github.com/maxturnos/turnos-service/internal/availability"
	"github.com/maxturnos/turnos-service/internal/earnings"
	"github.com/maxturnos/turnos-service/internal/service/business/models"
)

// Business GET /negocios/{codigo}
func (c *Client) Business(ctx context.Context, code string) (*models.BusinessResponse, error) {
	var resp models.BusinessResponse
	if err := c.do(ctx, http.MethodGet, "/negocios/"+segment(code), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Storefront GET /negocios/{codigo}/vitrina
func (c *Client) Storefront(ctx context.Context, code string) (*models.StorefrontResponse, error) {
	var resp models.StorefrontResponse
	if err := c.do(ctx, http.MethodGet, "/negocios/"+segment(code)+"/vitrina", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateSchedule PUT /negocios/{codigo}/horarios
func (c *Client) UpdateSchedule(ctx context.Context, code string, req models.UpdateScheduleRequest) (*models.BusinessResponse, error) {
	var resp models.BusinessResponse
	if err := c.do(ctx, http.MethodPut, "/negocios/"+segment(code)+"/horarios", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateCategories PUT /negocios/{codigo}/categorias
func (c *Client) UpdateCategories(ctx context.Context, code string, categories []string) ([]string, error) {
	var resp businessHandler.CategoriesResponse
	req := models.UpdateCategoriesRequest{Categorias: categories}
	if err := c.do(ctx, http.MethodPut, "/negocios/"+segment(code)+"/categorias", nil, req, &resp); err != nil {
		return nil, err
	}
	return resp.Categorias, nil
}

// UpdateReviewOrder PUT /negocios/{codigo}/orden-resenas
func (c *Client) UpdateReviewOrder(ctx context.Context, code, order string) (string, error) {
	var resp businessHandler.ReviewOrderResponse
	req := models.UpdateReviewOrderRequest{OrdenResenas: order}
	if err := c.do(ctx, http.MethodPut, "/negocios/"+segment(code)+"/orden-resenas", nil, req, &resp); err != nil {
		return "", err
	}
	return resp.OrdenResenas, nil
}

// EarningsQuery период отчета: Date для dia/semana/mes, Dates для dias
type EarningsQuery struct {
	Mode  earnings.Mode
	Date  time.Time
	Dates []time.Time
}

func (q EarningsQuery) values() url.Values {
	v := url.Values{}
	v.Set("modo", string(q.Mode))
	if q.Mode == earnings.ModeDays {
		keys := make([]string, 0, len(q.Dates))
		for _, d := range q.Dates {
			keys = append(keys, availability.FormatLocalDate(d))
		}
		v.Set("fechas", strings.Join(keys, ","))
	} else {
		v.Set("fecha", availability.FormatLocalDate(q.Date))
	}
	return v
}

// Earnings GET /negocios/{codigo}/ingresos
func (c *Client) Earnings(ctx context.Context, code string, q EarningsQuery) (*getEarnings.EarningsResponse, error) {
	var resp getEarnings.EarningsResponse
	if err := c.do(ctx, http.MethodGet, "/negocios/"+segment(code)+"/ingresos", q.values(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// EarningsChart GET /negocios/{codigo}/ingresos/grafico, SVG пишется в w
func (c *Client) EarningsChart(ctx context.Context, code string, q EarningsQuery, width, height int, w io.Writer) error {
	v := q.values()
	if width > 0 {
		v.Set("ancho", strconv.Itoa(width))
	}
	if height > 0 {
		v.Set("alto", strconv.Itoa(height))
	}
	return c.raw(ctx, "/negocios/"+segment(code)+"/ingresos/grafico", v, w)
}
