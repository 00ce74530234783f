package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/pkg/logger"
	"github.com/maxturnos/turnos-service/pkg/ptr"
)

type fakeCalendar struct {
	from, to  time.Time
	cancelled []*domain.CancelledDay
	restored  []time.Time
}

func (f *fakeCalendar) ListCancelledDays(_ context.Context, _ string, from, to time.Time) ([]*domain.CancelledDay, error) {
	f.from, f.to = from, to
	return f.cancelled, nil
}

func (f *fakeCalendar) ListRestoredSundays(context.Context, string) ([]time.Time, error) {
	return f.restored, nil
}

func (f *fakeCalendar) ListBlockedSlots(context.Context, string, time.Time, *int64) ([]*domain.BlockedSlot, error) {
	return nil, nil
}

func date(m time.Month, d int) time.Time { return time.Date(2025, m, d, 0, 0, 0, 0, time.Local) }

func TestListDays_DefaultRangeIsBookingHorizon(t *testing.T) {
	repo := &fakeCalendar{
		cancelled: []*domain.CancelledDay{{Day: date(time.November, 12), Reason: ptr.Ptr("Feriado")}},
		restored:  []time.Time{date(time.November, 9)},
	}
	svc := NewService(repo, logger.Nop())
	svc.now = func() time.Time { return time.Date(2025, time.November, 4, 15, 30, 0, 0, time.Local) }

	resp, err := svc.ListDays(context.Background(), "barberia", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, date(time.November, 4), repo.from)
	assert.Equal(t, date(time.December, 4), repo.to)
	require.Len(t, resp.DiasCancelados, 1)
	assert.Equal(t, "2025-11-12", resp.DiasCancelados[0].Fecha)
	assert.Equal(t, []string{"2025-11-09"}, resp.DomingosRestaurados)
}

func TestListDays_InvalidRange(t *testing.T) {
	svc := NewService(&fakeCalendar{}, logger.Nop())

	from, to := date(time.November, 10), date(time.November, 1)
	_, err := svc.ListDays(context.Background(), "barberia", &from, &to)
	assert.ErrorIs(t, err, ErrInvalidRange)

	far := time.Date(2027, time.January, 1, 0, 0, 0, 0, time.Local)
	_, err = svc.ListDays(context.Background(), "barberia", &to, &far)
	assert.ErrorIs(t, err, ErrInvalidRange)
}
