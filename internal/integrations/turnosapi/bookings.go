package turnosapi

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	cancelBooking "github.com/maxturnos/turnos-service/internal/api/handlers/cancel_booking"
	cancelDayBookings "github.com/maxturnos/turnos-service/internal/api/handlers/cancel_day_bookings"
	createBooking "github.com/maxturnos/turnos-service/internal/api/handlers/create_booking"
	getAvailableSlots "github.com/maxturnos/turnos-service/internal/api/handlers/get_available_slots"
	getCommonSlots "github.com/maxturnos/turnos-service/internal/api/handlers/get_common_slots"
	modifyBooking "github.com/maxturnos/turnos-service/internal/api/handlers/modify_booking"
	"github.com/maxturnos/turnos-service/internal/availability"
	"github.com/maxturnos/turnos-service/internal/service/bookings/models"
)

// SlotsQuery свободное время одного сотрудника на дату
type SlotsQuery struct {
	BusinessCode string
	Date         time.Time
	StaffID      int64
	ServiceID    *int64
}

// AvailableSlots GET /reservas/horarios-disponibles
func (c *Client) AvailableSlots(ctx context.Context, q SlotsQuery) (*getAvailableSlots.SlotsResponse, error) {
	v := url.Values{}
	v.Set("establecimiento", q.BusinessCode)
	v.Set("fecha", availability.FormatLocalDate(q.Date))
	v.Set("profesionalId", formatID(q.StaffID))
	if q.ServiceID != nil {
		v.Set("servicioId", formatID(*q.ServiceID))
	}

	var resp getAvailableSlots.SlotsResponse
	if err := c.do(ctx, http.MethodGet, "/reservas/horarios-disponibles", v, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CommonSlotsQuery пересечение на сервере; StaffID == nil означает всех сотрудников
type CommonSlotsQuery struct {
	BusinessCode string
	Dates        []time.Time
	StaffID      *int64
	ServiceID    *int64
	MinOpening   string
}

// CommonSlots GET /reservas/horarios-comunes
func (c *Client) CommonSlots(ctx context.Context, q CommonSlotsQuery) (*getCommonSlots.CommonSlotsResponse, error) {
	keys := make([]string, 0, len(q.Dates))
	for _, d := range q.Dates {
		keys = append(keys, availability.FormatLocalDate(d))
	}
	v := url.Values{}
	v.Set("establecimiento", q.BusinessCode)
	v.Set("fechas", strings.Join(keys, ","))
	if q.StaffID != nil {
		v.Set("profesionalId", formatID(*q.StaffID))
	}
	if q.ServiceID != nil {
		v.Set("servicioId", formatID(*q.ServiceID))
	}
	if q.MinOpening != "" {
		v.Set("desde", q.MinOpening)
	}

	var resp getCommonSlots.CommonSlotsResponse
	if err := c.do(ctx, http.MethodGet, "/reservas/horarios-comunes", v, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateBooking POST /reservas
func (c *Client) CreateBooking(ctx context.Context, req createBooking.CreateBookingRequest) (*models.BookingResponse, error) {
	var resp models.BookingResponse
	if err := c.do(ctx, http.MethodPost, "/reservas", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ModifyBooking PATCH /reservas/{id}
func (c *Client) ModifyBooking(ctx context.Context, id int64, req modifyBooking.ModifyBookingRequest) (*models.BookingResponse, error) {
	var resp models.BookingResponse
	if err := c.do(ctx, http.MethodPatch, "/reservas/"+formatID(id), nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CancelBooking DELETE /reservas/{id}
func (c *Client) CancelBooking(ctx context.Context, id int64, note *string) (*models.BookingResponse, error) {
	var body interface{}
	if note != nil {
		body = cancelBooking.CancelBookingRequest{Nota: note}
	}
	var resp models.BookingResponse
	if err := c.do(ctx, http.MethodDelete, "/reservas/"+formatID(id), nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CancelDayBookings POST /reservas/cancelar-dia
func (c *Client) CancelDayBookings(ctx context.Context, req cancelDayBookings.CancelDayBookingsRequest) (*cancelDayBookings.CancelDayBookingsResponse, error) {
	var resp cancelDayBookings.CancelDayBookingsResponse
	if err := c.do(ctx, http.MethodPost, "/reservas/cancelar-dia", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Booking GET /reservas/{id}
func (c *Client) Booking(ctx context.Context, id int64) (*models.BookingResponse, error) {
	var resp models.BookingResponse
	if err := c.do(ctx, http.MethodGet, "/reservas/"+formatID(id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MyBookings GET /reservas/mias
func (c *Client) MyBookings(ctx context.Context) ([]models.BookingResponse, error) {
	var resp []models.BookingResponse
	if err := c.do(ctx, http.MethodGet, "/reservas/mias", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Bookings GET /reservas?establecimiento=&fecha=&profesionalId=
func (c *Client) Bookings(ctx context.Context, code string, day *time.Time, staffID *int64) ([]models.BookingResponse, error) {
	v := url.Values{}
	v.Set("establecimiento", code)
	if day != nil {
		v.Set("fecha", availability.FormatLocalDate(*day))
	}
	if staffID != nil {
		v.Set("profesionalId", formatID(*staffID))
	}

	var resp []models.BookingResponse
	if err := c.do(ctx, http.MethodGet, "/reservas", v, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// BookingsByMonth GET /reservas/por-mes
func (c *Client) BookingsByMonth(ctx context.Context, code string, year int, month time.Month) (*models.MonthResponse, error) {
	v := url.Values{}
	v.Set("establecimiento", code)
	v.Set("anio", strconv.Itoa(year))
	v.Set("mes", strconv.Itoa(int(month)))

	var resp models.MonthResponse
	if err := c.do(ctx, http.MethodGet, "/reservas/por-mes", v, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Receipt GET /reservas/{id}/comprobante, PDF пишется в w
func (c *Client) Receipt(ctx context.Context, id int64, w io.Writer) error {
	return c.raw(ctx, "/reservas/"+formatID(id)+"/comprobante", nil, w)
}
