package cancel_day

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/pkg/logger"
)

type fakeBookings struct{ counts map[string]int }

func (f fakeBookings) CountActiveByDay(context.Context, string, time.Time, time.Time) (map[string]int, error) {
	return f.counts, nil
}

type fakeBusinesses struct{}

func (fakeBusinesses) GetByCode(context.Context, string) (*domain.Business, error) {
	b := &domain.Business{Code: "barberia"}
	b.ApplyDefaults()
	return b, nil
}

type fakeCalendar struct {
	cancelled  map[string]string
	restored   map[string]bool
	unrestored int
}

func (f *fakeCalendar) CancelDay(_ context.Context, _ string, day time.Time, reason *string) (bool, error) {
	key := day.Format(domain.DateFormat)
	if _, ok := f.cancelled[key]; ok {
		return false, nil
	}
	f.cancelled[key] = *reason
	return true, nil
}

func (f *fakeCalendar) UnrestoreSunday(_ context.Context, _ string, day time.Time) (bool, error) {
	key := day.Format(domain.DateFormat)
	if !f.restored[key] {
		return false, nil
	}
	delete(f.restored, key)
	f.unrestored++
	return true, nil
}

type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingCache struct{ deleted []string }

func (c *recordingCache) Delete(_ context.Context, keys ...string) error {
	c.deleted = append(c.deleted, keys...)
	return nil
}

type recordingEvents struct{ events []domain.Event }

func (r *recordingEvents) Publish(_ context.Context, e domain.Event) error {
	r.events = append(r.events, e)
	return nil
}

type countingMetrics struct{ days int }

func (c *countingMetrics) IncDayCancelled(string) { c.days++ }

var admin = domain.Principal{Email: "dueno@example.com", Role: domain.RoleAdmin, BusinessCode: "barberia"}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var clock = time.Date(2025, time.November, 4, 9, 15, 0, 0, time.Local)

type env struct {
	uc       *UseCase
	calendar *fakeCalendar
	cache    *recordingCache
	events   *recordingEvents
	metrics  *countingMetrics
}

func newEnv(counts map[string]int) *env {
	e := &env{
		calendar: &fakeCalendar{cancelled: map[string]string{}, restored: map[string]bool{"2025-11-09": true}},
		cache:    &recordingCache{},
		events:   &recordingEvents{},
		metrics:  &countingMetrics{},
	}
	e.uc = NewUseCase(fakeBookings{counts: counts}, fakeBusinesses{}, e.calendar, inlineTx{}, e.cache, e.events, e.metrics, logger.Nop()).
		WithTimeProvider(fixedTime{t: clock})
	return e
}

func TestExecute_CancelsWithDefaultReasonAndIsIdempotent(t *testing.T) {
	e := newEnv(nil)
	req := &Request{Actor: admin, BusinessCode: "barberia", Date: time.Date(2025, time.November, 5, 0, 0, 0, 0, time.Local)}

	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Created)
	assert.Equal(t, domain.DefaultCancelDayReason, e.calendar.cancelled["2025-11-05"])
	assert.Equal(t, []string{"storefront:barberia"}, e.cache.deleted)
	require.Len(t, e.events.events, 1)
	assert.Equal(t, domain.EventDayCancelled, e.events.events[0].Type)
	assert.Equal(t, clock, e.events.events[0].OccurredAt)

	resp, err = e.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.Created)
	assert.Equal(t, 1, e.metrics.days)
	assert.Len(t, e.events.events, 1)
}

func TestExecute_DayWithBookingsIsRejectedWithCount(t *testing.T) {
	e := newEnv(map[string]int{"2025-11-05": 3})

	_, err := e.uc.Execute(context.Background(), &Request{
		Actor:        admin,
		BusinessCode: "barberia",
		Date:         time.Date(2025, time.November, 5, 0, 0, 0, 0, time.Local),
	})

	var hasBookings *DayHasBookingsError
	require.True(t, errors.As(err, &hasBookings))
	assert.Equal(t, 3, hasBookings.Count)
	assert.Contains(t, err.Error(), "3 reserva")
	assert.Empty(t, e.calendar.cancelled)
}

func TestExecute_RestoredSundayIsClosedAgain(t *testing.T) {
	e := newEnv(nil)

	_, err := e.uc.Execute(context.Background(), &Request{
		Actor:        admin,
		BusinessCode: "barberia",
		Date:         time.Date(2025, time.November, 9, 0, 0, 0, 0, time.Local),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, e.calendar.unrestored)
	assert.Empty(t, e.calendar.restored)
}

func TestExecute_Forbidden(t *testing.T) {
	e := newEnv(nil)
	other := domain.Principal{Email: "x@example.com", Role: domain.RoleAdmin, BusinessCode: "peluqueria"}

	_, err := e.uc.Execute(context.Background(), &Request{Actor: other, BusinessCode: "barberia", Date: time.Now()})
	assert.ErrorIs(t, err, ErrForbidden)
}
