package restore_day

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxturnos/turnos-service/internal/availability"
	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/pkg/logger"
)

type fakeBusinesses struct{}

func (fakeBusinesses) GetByCode(context.Context, string) (*domain.Business, error) {
	b := &domain.Business{Code: "barberia"}
	b.ApplyDefaults()
	return b, nil
}

type fakeCalendar struct {
	cancelled map[string]bool
	restored  map[string]bool
}

func (f *fakeCalendar) RestoreDay(_ context.Context, _ string, day time.Time) (bool, error) {
	key := day.Format(domain.DateFormat)
	existed := f.cancelled[key]
	delete(f.cancelled, key)
	return existed, nil
}

func (f *fakeCalendar) RestoreSunday(_ context.Context, _ string, day time.Time) (bool, error) {
	key := day.Format(domain.DateFormat)
	if f.restored[key] {
		return false, nil
	}
	f.restored[key] = true
	return true, nil
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopCache struct{}

func (nopCache) Delete(context.Context, ...string) error { return nil }

var admin = domain.Principal{Email: "dueno@example.com", Role: domain.RoleAdmin, BusinessCode: "barberia"}

func TestExecute_RestoredSundayBecomesBookable(t *testing.T) {
	calendar := &fakeCalendar{cancelled: map[string]bool{}, restored: map[string]bool{}}
	uc := NewUseCase(fakeBusinesses{}, calendar, inlineTx{}, nopCache{}, logger.Nop())
	sunday := time.Date(2025, time.November, 9, 0, 0, 0, 0, time.Local)

	resp, err := uc.Execute(context.Background(), &Request{Actor: admin, BusinessCode: "barberia", Date: sunday})
	require.NoError(t, err)
	assert.False(t, resp.Removed)
	assert.True(t, resp.SundayRestored)

	// движок, собранный заново из сохраненных данных, считает воскресенье рабочим
	business, _ := fakeBusinesses{}.GetByCode(context.Background(), "barberia")
	engine := availability.ForBusiness(business, nil, []time.Time{sunday}, func() time.Time {
		return time.Date(2025, time.November, 8, 12, 0, 0, 0, time.Local)
	})
	keys := make([]string, 0)
	for _, d := range engine.GenerateBookableDates(3) {
		keys = append(keys, d.Key)
	}
	assert.Contains(t, keys, "2025-11-09")
}

func TestExecute_WeekdayRemovesCancelledRecordOnly(t *testing.T) {
	calendar := &fakeCalendar{cancelled: map[string]bool{"2025-11-05": true}, restored: map[string]bool{}}
	uc := NewUseCase(fakeBusinesses{}, calendar, inlineTx{}, nopCache{}, logger.Nop())

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:        admin,
		BusinessCode: "barberia",
		Date:         time.Date(2025, time.November, 5, 0, 0, 0, 0, time.Local),
	})
	require.NoError(t, err)
	assert.True(t, resp.Removed)
	assert.False(t, resp.SundayRestored)
	assert.Empty(t, calendar.cancelled)
	assert.Empty(t, calendar.restored)
}

func TestExecute_RequiresAdmin(t *testing.T) {
	uc := NewUseCase(fakeBusinesses{}, &fakeCalendar{}, inlineTx{}, nopCache{}, logger.Nop())

	_, err := uc.Execute(context.Background(), &Request{
		Actor:        domain.Principal{Email: "ana@example.com", Role: domain.RoleCustomer},
		BusinessCode: "barberia",
		Date:         time.Now(),
	})
	assert.ErrorIs(t, err, ErrForbidden)
}
