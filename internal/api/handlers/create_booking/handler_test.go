package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxturnos/turnos-service/internal/api/handlers"
	"github.com/maxturnos/turnos-service/internal/api/middleware"
	"github.com/maxturnos/turnos-service/internal/domain"
	createBooking "github.com/maxturnos/turnos-service/internal/usecase/create_booking"
	"github.com/maxturnos/turnos-service/pkg/logger"
)

type stubUseCase struct {
	got *createBooking.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &createBooking.Response{Booking: &domain.Booking{
		ID: 7, BusinessCode: req.BusinessCode, BookingDate: req.Date, StartTime: req.StartTime,
		Status: domain.StatusConfirmed, StaffID: req.StaffID, ServiceID: req.ServiceID,
	}}, nil
}

const body = `{"establecimiento":"barberia","fecha":"2025-11-05","hora":"10:00","servicio":{"id":1},"profesional":{"id":2}}`

func do(h *Handler, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/reservas", strings.NewReader(payload))
	req = req.WithContext(middleware.WithPrincipal(req.Context(), domain.Principal{Email: "ana@example.com"}))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{}
	rec := do(NewHandler(uc, logger.Nop()), body)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "ana@example.com", uc.got.Actor.Email)
	assert.Equal(t, int64(2), uc.got.StaffID)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-11-05", resp["fecha"])
	assert.Equal(t, "10:00", resp["hora"])
}

func TestHandle_ErrorMapping(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{createBooking.ErrSlotNotAvailable, http.StatusConflict, msgSlotNotAvailable},
		{createBooking.ErrLoginRequired, http.StatusUnauthorized, msgLoginRequired},
		{createBooking.ErrStaffNotFound, http.StatusNotFound, msgStaffNotFound},
		{createBooking.ErrBusinessClosed, http.StatusBadRequest, msgBusinessClosed},
		{createBooking.ErrInternal, http.StatusInternalServerError, "Error interno del servidor"},
	}
	for _, tc := range cases {
		t.Run(tc.message, func(t *testing.T) {
			rec := do(NewHandler(&stubUseCase{err: tc.err}, logger.Nop()), body)
			assert.Equal(t, tc.status, rec.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.message, resp.Message)
		})
	}
}

func TestHandle_BadInput(t *testing.T) {
	uc := &stubUseCase{}
	assert.Equal(t, http.StatusBadRequest, do(NewHandler(uc, logger.Nop()), "{").Code)
	assert.Equal(t, http.StatusBadRequest, do(NewHandler(uc, logger.Nop()),
		`{"establecimiento":"barberia","fecha":"05/11/2025","hora":"10:00"}`).Code)
	assert.Nil(t, uc.got)
}
