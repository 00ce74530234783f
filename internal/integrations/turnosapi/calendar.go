package turnosapi

import (
	"context"
	"net/http"
	"net/url"
	"time"

	blockSlots "github.com/maxturnos/turnos-service/internal/api/handlers/block_slots"
	cancelDay "github.com/maxturnos/turnos-service/internal/api/handlers/cancel_day"
	restoreDay "github.com/maxturnos/turnos-service/internal/api/handlers/restore_day"
	unblockSlots "github.com/maxturnos/turnos-service/internal/api/handlers/unblock_slots"
	"github.com/maxturnos/turnos-service/internal/availability"
	"github.com/maxturnos/turnos-service/internal/service/calendar/models"
)

// CancelledDays GET /dias-cancelados/{establecimiento}?desde=&hasta=
func (c *Client) CancelledDays(ctx context.Context, code string, from, to time.Time) (*models.DaysResponse, error) {
	v := url.Values{}
	if !from.IsZero() {
		v.Set("desde", availability.FormatLocalDate(from))
	}
	if !to.IsZero() {
		v.Set("hasta", availability.FormatLocalDate(to))
	}

	var resp models.DaysResponse
	if err := c.do(ctx, http.MethodGet, "/dias-cancelados/"+segment(code), v, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CancelDay POST /dias-cancelados
func (c *Client) CancelDay(ctx context.Context, req cancelDay.CancelDayRequest) (*cancelDay.CancelDayResponse, error) {
	var resp cancelDay.CancelDayResponse
	if err := c.do(ctx, http.MethodPost, "/dias-cancelados", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RestoreDay DELETE /dias-cancelados/{establecimiento}/{fecha}
func (c *Client) RestoreDay(ctx context.Context, code string, day time.Time) (*restoreDay.RestoreDayResponse, error) {
	var resp restoreDay.RestoreDayResponse
	path := "/dias-cancelados/" + segment(code) + "/" + availability.FormatLocalDate(day)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BlockedSlots GET /horarios-bloqueados/{establecimiento}?fecha=&profesionalId=
func (c *Client) BlockedSlots(ctx context.Context, code string, day time.Time, staffID *int64) ([]models.BlockedSlotResponse, error) {
	v := url.Values{}
	v.Set("fecha", availability.FormatLocalDate(day))
	if staffID != nil {
		v.Set("profesionalId", formatID(*staffID))
	}

	var resp []models.BlockedSlotResponse
	if err := c.do(ctx, http.MethodGet, "/horarios-bloqueados/"+segment(code), v, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// BlockSlots POST /horarios-bloqueados
func (c *Client) BlockSlots(ctx context.Context, req blockSlots.SlotsRequest) (*blockSlots.SlotsResponse, error) {
	var resp blockSlots.SlotsResponse
	if err := c.do(ctx, http.MethodPost, "/horarios-bloqueados", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UnblockSlots DELETE /horarios-bloqueados
func (c *Client) UnblockSlots(ctx context.Context, req unblockSlots.SlotsRequest) (*unblockSlots.SlotsResponse, error) {
	var resp unblockSlots.SlotsResponse
	if err := c.do(ctx, http.MethodDelete, "/horarios-bloqueados", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
