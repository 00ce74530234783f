package unblock_slots

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/pkg/logger"
	"github.com/maxturnos/turnos-service/pkg/ptr"
	"github.com/maxturnos/turnos-service/pkg/types"
)

type fakeStaff struct{ staff []*domain.Staff }

func (f fakeStaff) List(context.Context, string) ([]*domain.Staff, error) {
	return f.staff, nil
}

type fakeCalendar struct {
	mu      sync.Mutex
	blocked map[string]bool
}

func (f *fakeCalendar) UnblockSlot(_ context.Context, _ string, day time.Time, start types.TimeString, staffID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := fmt.Sprintf("%s|%s|%d", day.Format(domain.DateFormat), start, staffID)
	existed := f.blocked[key]
	delete(f.blocked, key)
	return existed, nil
}

var admin = domain.Principal{Email: "dueno@example.com", Role: domain.RoleAdmin, BusinessCode: "barberia"}

func TestExecute_GeneralRemovesForEveryStaff(t *testing.T) {
	calendar := &fakeCalendar{blocked: map[string]bool{
		"2025-11-05|10:00|1": true,
		"2025-11-05|10:00|2": true,
		"2025-11-05|11:00|1": true,
	}}
	uc := NewUseCase(fakeStaff{staff: []*domain.Staff{{ID: 1}, {ID: 2}}}, calendar, logger.Nop())

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:        admin,
		BusinessCode: "barberia",
		Dates:        []time.Time{time.Date(2025, time.November, 5, 0, 0, 0, 0, time.Local)},
		StartTime:    "10:00",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Succeeded)
	assert.Equal(t, map[string]bool{"2025-11-05|11:00|1": true}, calendar.blocked)
}

func TestExecute_MissingBlockIsNotAnError(t *testing.T) {
	uc := NewUseCase(fakeStaff{}, &fakeCalendar{blocked: map[string]bool{}}, logger.Nop())

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:        admin,
		BusinessCode: "barberia",
		Dates:        []time.Time{time.Date(2025, time.November, 5, 0, 0, 0, 0, time.Local)},
		StartTime:    "10:00",
		StaffID:      ptr.Ptr(int64(4)),
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.False(t, resp.Results[0].Removed)
	assert.Zero(t, resp.Failed)
}
