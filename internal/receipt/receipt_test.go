package receipt

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/pkg/types"
)

func testBooking(t *testing.T) *domain.Booking {
	start, err := types.NewTimeStringFromString("10:00")
	require.NoError(t, err)
	return &domain.Booking{
		ID:              15,
		BusinessCode:    "barberia-centro",
		BookingDate:     time.Date(2025, time.November, 4, 0, 0, 0, 0, time.Local),
		StartTime:       start,
		Status:          domain.StatusConfirmed,
		ServiceName:     "Corte de Pelo Clásico",
		ServiceDuration: "30 min",
		ServicePrice:    "$2500",
		DurationMinutes: 30,
		StaffName:       "Lucía Fernández",
		CustomerEmail:   "cliente@example.com",
	}
}

func TestPayload(t *testing.T) {
	assert.Equal(t, "maxturnos|barberia-centro|15|2025-11-04|10:00", Payload(testBooking(t)))
}

func TestRender_ProducesPDF(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, &domain.Business{Name: "Barbería Centro"}, testBooking(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
