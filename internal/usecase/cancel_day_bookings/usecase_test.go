package cancel_day_bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/pkg/logger"
	"github.com/maxturnos/turnos-service/pkg/ptr"
)

type fakeBookings struct {
	items   []*domain.Booking
	failFor map[int64]bool
	notes   map[int64]*string
}

func (f *fakeBookings) GetWithFilter(context.Context, domain.BookingsFilter) ([]*domain.Booking, error) {
	return f.items, nil
}

func (f *fakeBookings) Cancel(_ context.Context, id int64, note *string) error {
	if f.failFor[id] {
		return errors.New("connection reset")
	}
	f.notes[id] = note
	return nil
}

type recordingEvents struct {
	n    int
	last domain.Event
}

func (r *recordingEvents) Publish(_ context.Context, e domain.Event) error {
	r.n++
	r.last = e
	return nil
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type countingMetrics struct{ cancelled int }

func (c *countingMetrics) IncBookingCancelled(_ string, n int) { c.cancelled += n }

var (
	admin = domain.Principal{Email: "dueno@example.com", Role: domain.RoleAdmin, BusinessCode: "barberia"}
	day   = time.Date(2025, time.November, 5, 0, 0, 0, 0, time.Local)
)

func TestExecute_PartialFailuresAreReported(t *testing.T) {
	bookings := &fakeBookings{
		items: []*domain.Booking{
			{ID: 1, BusinessCode: "barberia", Status: domain.StatusConfirmed},
			{ID: 2, BusinessCode: "barberia", Status: domain.StatusConfirmed},
			{ID: 3, BusinessCode: "barberia", Status: domain.StatusCancelled},
		},
		failFor: map[int64]bool{2: true},
		notes:   map[int64]*string{},
	}
	events := &recordingEvents{}
	metrics := &countingMetrics{}
	clock := time.Date(2025, time.November, 4, 9, 15, 0, 0, time.Local)
	uc := NewUseCase(bookings, events, metrics, logger.Nop()).WithTimeProvider(fixedTime{t: clock})

	resp, err := uc.Execute(context.Background(), &Request{Actor: admin, BusinessCode: "barberia", Date: day, Note: ptr.Ptr("feriado")})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Cancelled)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Results, 2)
	assert.True(t, resp.Results[0].Cancelled)
	assert.False(t, resp.Results[1].Cancelled)
	assert.NotEmpty(t, resp.Results[1].Error)
	assert.Equal(t, "feriado", *bookings.notes[1])
	assert.Equal(t, 1, events.n)
	assert.Equal(t, clock, events.last.OccurredAt)
	assert.Equal(t, 1, metrics.cancelled)
}

func TestExecute_RequiresBusinessAdmin(t *testing.T) {
	uc := NewUseCase(&fakeBookings{}, &recordingEvents{}, &countingMetrics{}, logger.Nop())

	customer := domain.Principal{Email: "ana@example.com", Role: domain.RoleCustomer}
	_, err := uc.Execute(context.Background(), &Request{Actor: customer, BusinessCode: "barberia", Date: day})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = uc.Execute(context.Background(), &Request{Actor: admin, BusinessCode: "barberia"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
