package earnings

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingModels "github.com/maxturnos/turnos-service/internal/service/bookings/models"
)

type fakeMonths struct {
	mu     sync.Mutex
	months map[time.Month][]bookingModels.BookingResponse
	calls  []time.Month
	err    error
}

func (f *fakeMonths) BookingsByMonth(_ context.Context, _ string, _ int, month time.Month) (*bookingModels.MonthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, month)
	if f.err != nil {
		return nil, f.err
	}
	return &bookingModels.MonthResponse{Reservas: f.months[month]}, nil
}

func resp(id int64, fecha, price, estado string) bookingModels.BookingResponse {
	return bookingModels.BookingResponse{
		ID:       id,
		Fecha:    fecha,
		Hora:     "10:00",
		Servicio: bookingModels.ServiceSnapshot{Price: price},
		Estado:   estado,
	}
}

func TestLoad_WeekAcrossMonths(t *testing.T) {
	api := &fakeMonths{months: map[time.Month][]bookingModels.BookingResponse{
		time.November: {
			resp(1, "2025-11-29", "$2500", "confirmed"),
			resp(2, "2025-11-29", "$3.000", "confirmed"),
			resp(3, "2025-11-29", "$1,500", "confirmed"),
			resp(4, "2025-11-30", "$9999", "cancelled"),
			resp(5, "2025-11-03", "$700", "confirmed"),
		},
		time.December: {
			resp(6, "2025-12-02", "$4000", "confirmed"),
			resp(7, "bad-date", "$1", "confirmed"),
		},
	}}

	report, skipped, err := Load(context.Background(), api, "barberia", Week(time.Date(2025, 11, 28, 0, 0, 0, 0, time.Local)))
	require.NoError(t, err)

	assert.Equal(t, 1, skipped)
	assert.ElementsMatch(t, []time.Month{time.November, time.December}, api.calls)
	require.Len(t, report.Days, 7)
	assert.Equal(t, 7000.0, report.Days[1].Total)
	assert.Equal(t, 3, report.Days[1].Bookings)
	assert.Zero(t, report.Days[2].Total)
	assert.Equal(t, 4000.0, report.Days[4].Total)
	assert.Equal(t, 11000.0, report.Total)
	assert.Equal(t, 4, report.Count)
}

func TestLoad_FetchError(t *testing.T) {
	api := &fakeMonths{err: errors.New("boom")}
	_, _, err := Load(context.Background(), api, "barberia", Day(time.Date(2025, 11, 3, 0, 0, 0, 0, time.Local)))
	assert.Error(t, err)
}
