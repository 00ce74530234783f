package archive

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxturnos/turnos-service/internal/config"
	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/pkg/ptr"
	"github.com/maxturnos/turnos-service/pkg/types"
)

func TestDocumentRoundTrip(t *testing.T) {
	start, err := types.NewTimeStringFromString("10:30")
	require.NoError(t, err)

	b := &domain.Booking{
		ID:              42,
		BusinessCode:    "barberia-centro",
		BookingDate:     time.Date(2025, time.November, 4, 0, 0, 0, 0, time.Local),
		StartTime:       start,
		Status:          domain.StatusConfirmed,
		ServiceName:     "Corte de Pelo Clásico",
		ServicePrice:    "$2500",
		DurationMinutes: 30,
		StaffID:         7,
		StaffName:       "Carlos Mendoza",
		CustomerEmail:   "cliente@example.com",
		Note:            ptr.Ptr("sin máquina"),
	}

	doc := toDocument(b, time.Now())
	assert.Equal(t, "2025-11", doc.Month)
	assert.Equal(t, "2025-11-04", doc.Date)

	back, err := fromDocument(&doc)
	require.NoError(t, err)
	assert.Equal(t, b.ID, back.ID)
	assert.True(t, b.BookingDate.Equal(back.BookingDate))
	assert.Equal(t, "10:30", back.StartTime.String())
	assert.Equal(t, "sin máquina", *back.Note)
}

func TestNew_EmptyURIDisablesArchive(t *testing.T) {
	a, err := New(context.Background(), config.MongoConfig{})
	require.NoError(t, err)
	assert.IsType(t, NopArchive{}, a)
}
