package get_earnings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/internal/earnings"
	"github.com/maxturnos/turnos-service/pkg/logger"
)

type fakeBookings struct{ items []*domain.Booking }

func (f fakeBookings) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.items {
		if b.BookingDate.Before(*filter.StartDate) || b.BookingDate.After(*filter.EndDate) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

type fakeArchive struct {
	items []*domain.Booking
	err   error
}

func (f fakeArchive) ListMonth(context.Context, string, int, time.Month) ([]*domain.Booking, error) {
	return f.items, f.err
}

var admin = domain.Principal{Email: "dueno@example.com", Role: domain.RoleAdmin, BusinessCode: "barberia"}

func nov(d int) time.Time { return time.Date(2025, time.November, d, 0, 0, 0, 0, time.Local) }

func booking(id int64, day int, price string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{ID: id, BusinessCode: "barberia", BookingDate: nov(day), ServicePrice: price, Status: status}
}

func TestExecute_WeekMergesArchiveWithoutDuplicates(t *testing.T) {
	live := fakeBookings{items: []*domain.Booking{
		booking(1, 3, "$2500", domain.StatusConfirmed),
		booking(2, 4, "$1.500", domain.StatusConfirmed),
		booking(3, 4, "$9000", domain.StatusCancelled),
	}}
	archive := fakeArchive{items: []*domain.Booking{
		booking(1, 3, "$2500", domain.StatusConfirmed),
		booking(10, 5, "$3000,50", domain.StatusConfirmed),
	}}
	uc := NewUseCase(live, archive, logger.Nop())

	resp, err := uc.Execute(context.Background(), &Request{Actor: admin, BusinessCode: "barberia", Mode: earnings.ModeWeek, Date: nov(3)})
	require.NoError(t, err)

	report := resp.Report
	require.Len(t, report.Days, 7)
	assert.Equal(t, "2025-11-03", report.Days[0].Key)
	assert.Equal(t, 2500.0, report.Days[0].Total)
	assert.Equal(t, 1500.0, report.Days[1].Total)
	assert.Equal(t, 3000.5, report.Days[2].Total)
	assert.Zero(t, report.Days[6].Total)
	assert.Equal(t, 3, report.Count)
	assert.InDelta(t, 7000.5, report.Total, 0.001)
}

func TestExecute_ArchiveFailureIsTolerated(t *testing.T) {
	live := fakeBookings{items: []*domain.Booking{booking(1, 3, "$2500", domain.StatusConfirmed)}}
	uc := NewUseCase(live, fakeArchive{err: errors.New("mongo down")}, logger.Nop())

	resp, err := uc.Execute(context.Background(), &Request{Actor: admin, BusinessCode: "barberia", Mode: earnings.ModeMonth, Date: nov(15)})
	require.NoError(t, err)
	assert.Len(t, resp.Report.Days, 30)
	assert.Equal(t, 2500.0, resp.Report.Total)
}

func TestExecute_CustomDaysAreSortedAndDeduplicated(t *testing.T) {
	uc := NewUseCase(fakeBookings{}, fakeArchive{}, logger.Nop())

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:        admin,
		BusinessCode: "barberia",
		Mode:         earnings.ModeDays,
		Dates:        []time.Time{nov(10), nov(2), nov(10)},
	})
	require.NoError(t, err)
	require.Len(t, resp.Report.Days, 2)
	assert.Equal(t, "2025-11-02", resp.Report.Days[0].Key)
	assert.Equal(t, "2025-11-10", resp.Report.Days[1].Key)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(fakeBookings{}, fakeArchive{}, logger.Nop())

	_, err := uc.Execute(context.Background(), &Request{Actor: admin, BusinessCode: "barberia", Mode: "anio", Date: nov(1)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Actor: admin, BusinessCode: "barberia", Mode: earnings.ModeDays})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Actor: domain.Principal{Email: "ana@example.com"}, BusinessCode: "barberia", Mode: earnings.ModeDay, Date: nov(1)})
	assert.ErrorIs(t, err, ErrForbidden)
}
