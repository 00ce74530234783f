package cancel_day

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxturnos/turnos-service/internal/api/handlers"
	cancelDay "github.com/maxturnos/turnos-service/internal/usecase/cancel_day"
	"github.com/maxturnos/turnos-service/pkg/logger"
)

type stubUseCase struct {
	resp *cancelDay.Response
	err  error
}

func (s stubUseCase) Execute(context.Context, *cancelDay.Request) (*cancelDay.Response, error) {
	return s.resp, s.err
}

const body = `{"establecimiento":"barberia","fecha":"2025-11-05","motivo":"Feriado"}`

func post(h *Handler) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/dias-cancelados", strings.NewReader(body)))
	return rec
}

func TestHandle_CreatedAndIdempotent(t *testing.T) {
	day := time.Date(2025, time.November, 5, 0, 0, 0, 0, time.Local)

	rec := post(NewHandler(stubUseCase{resp: &cancelDay.Response{Date: day, Created: true}}, logger.Nop()))
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = post(NewHandler(stubUseCase{resp: &cancelDay.Response{Date: day}}, logger.Nop()))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp CancelDayResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-11-05", resp.Fecha)
	assert.False(t, resp.Creado)
}

func TestHandle_DayWithBookingsIsConflict(t *testing.T) {
	day := time.Date(2025, time.November, 5, 0, 0, 0, 0, time.Local)
	rec := post(NewHandler(stubUseCase{err: &cancelDay.DayHasBookingsError{Date: day, Count: 2}}, logger.Nop()))

	require.Equal(t, http.StatusConflict, rec.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "2025-11-05")
	assert.Contains(t, resp.Message, "2 reserva(s)")
}

func TestHandle_Forbidden(t *testing.T) {
	rec := post(NewHandler(stubUseCase{err: cancelDay.ErrForbidden}, logger.Nop()))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
