package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxturnos/turnos-service/internal/domain"
	businessRepo "github.com/maxturnos/turnos-service/internal/infra/storage/business"
	catalogRepo "github.com/maxturnos/turnos-service/internal/infra/storage/catalog"
	"github.com/maxturnos/turnos-service/pkg/logger"
	"github.com/maxturnos/turnos-service/pkg/ptr"
	"github.com/maxturnos/turnos-service/pkg/types"
)

type fakeBookings struct{ items []*domain.Booking }

func (f *fakeBookings) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.items {
		if filter.StaffID != nil && b.StaffID != *filter.StaffID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

type fakeBusinesses struct{ b *domain.Business }

func (f *fakeBusinesses) GetByCode(_ context.Context, code string) (*domain.Business, error) {
	if f.b == nil || f.b.Code != code {
		return nil, businessRepo.ErrBusinessNotFound
	}
	return f.b, nil
}

type fakeServices struct{}

func (fakeServices) GetByID(_ context.Context, _ string, id int64) (*domain.Service, error) {
	if id != 1 {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return &domain.Service{ID: 1, Duration: "1:00"}, nil
}

type fakeStaff struct{}

func (fakeStaff) GetByID(_ context.Context, _ string, id int64) (*domain.Staff, error) {
	if id > 2 {
		return nil, catalogRepo.ErrStaffNotFound
	}
	return &domain.Staff{ID: id}, nil
}

type fakeCalendar struct {
	cancelled []*domain.CancelledDay
	blocked   []*domain.BlockedSlot
}

func (f *fakeCalendar) ListCancelledDays(context.Context, string, time.Time, time.Time) ([]*domain.CancelledDay, error) {
	return f.cancelled, nil
}

func (f *fakeCalendar) ListRestoredSundays(context.Context, string) ([]time.Time, error) {
	return nil, nil
}

func (f *fakeCalendar) ListBlockedSlots(_ context.Context, _ string, _ time.Time, staffID *int64) ([]*domain.BlockedSlot, error) {
	var out []*domain.BlockedSlot
	for _, s := range f.blocked {
		if staffID == nil || s.StaffID == *staffID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func ts(s string) types.TimeString {
	v, err := types.NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func tuesday() time.Time { return time.Date(2025, time.November, 4, 0, 0, 0, 0, time.Local) }

func newUseCase(bookings []*domain.Booking, cal *fakeCalendar) *UseCase {
	business := &domain.Business{Code: "barberia", OpeningTime: "09:00", ClosingTime: "11:00"}
	business.ApplyDefaults()
	return NewUseCase(&fakeBookings{items: bookings}, &fakeBusinesses{b: business}, fakeServices{}, fakeStaff{}, cal, logger.Nop()).
		WithTimeProvider(fixedTime{t: time.Date(2025, time.November, 3, 12, 0, 0, 0, time.Local)})
}

func TestExecute_FreeSlotsForStaff(t *testing.T) {
	bookings := []*domain.Booking{
		{StaffID: 1, StartTime: ts("09:30"), DurationMinutes: 30, Status: domain.StatusConfirmed},
		{StaffID: 2, StartTime: ts("10:00"), DurationMinutes: 30, Status: domain.StatusConfirmed},
		{StaffID: 1, StartTime: ts("10:30"), DurationMinutes: 30, Status: domain.StatusCancelled},
	}
	cal := &fakeCalendar{blocked: []*domain.BlockedSlot{{StaffID: 1, StartTime: ts("10:00")}}}

	resp, err := newUseCase(bookings, cal).Execute(context.Background(), &Request{
		BusinessCode: "barberia",
		Date:         tuesday(),
		StaffID:      1,
	})
	require.NoError(t, err)

	assert.False(t, resp.Closed)
	assert.Equal(t, []types.TimeString{"09:00", "10:30"}, resp.Available)
	assert.Equal(t, []types.TimeString{"09:30", "10:00"}, resp.Blocked)
}

func TestExecute_ServiceDurationMustFit(t *testing.T) {
	resp, err := newUseCase(nil, &fakeCalendar{}).Execute(context.Background(), &Request{
		BusinessCode: "barberia",
		Date:         tuesday(),
		StaffID:      1,
		ServiceID:    ptr.Ptr(int64(1)),
	})
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00"}, resp.Available)
}

func TestExecute_CancelledDayIsClosed(t *testing.T) {
	cal := &fakeCalendar{cancelled: []*domain.CancelledDay{{Day: tuesday()}}}

	resp, err := newUseCase(nil, cal).Execute(context.Background(), &Request{
		BusinessCode: "barberia",
		Date:         tuesday(),
		StaffID:      1,
	})
	require.NoError(t, err)
	assert.True(t, resp.Closed)
	assert.Empty(t, resp.Available)
}

func TestExecute_Errors(t *testing.T) {
	uc := newUseCase(nil, &fakeCalendar{})

	_, err := uc.Execute(context.Background(), &Request{BusinessCode: "otro", Date: tuesday(), StaffID: 1})
	assert.ErrorIs(t, err, ErrBusinessNotFound)

	_, err = uc.Execute(context.Background(), &Request{BusinessCode: "barberia", Date: tuesday(), StaffID: 9})
	assert.ErrorIs(t, err, ErrStaffNotFound)

	_, err = uc.Execute(context.Background(), &Request{BusinessCode: "barberia", Date: tuesday(), StaffID: 1, ServiceID: ptr.Ptr(int64(5))})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = uc.Execute(context.Background(), &Request{BusinessCode: "barberia", StaffID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
