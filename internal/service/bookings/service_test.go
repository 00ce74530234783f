package bookings

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxturnos/turnos-service/internal/domain"
	bookingRepo "github.com/maxturnos/turnos-service/internal/infra/storage/booking"
	"github.com/maxturnos/turnos-service/pkg/logger"
	"github.com/maxturnos/turnos-service/pkg/types"
)

type fakeBookings struct{ items []*domain.Booking }

func (f *fakeBookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	for _, b := range f.items {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookings) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.items {
		if b.BusinessCode == filter.BusinessCode {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) GetByCustomer(_ context.Context, email string) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.items {
		if b.CustomerEmail == email {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeBusinesses struct{}

func (fakeBusinesses) GetByCode(_ context.Context, code string) (*domain.Business, error) {
	return &domain.Business{Code: code, Name: "Barbería Central"}, nil
}

type fakeArchive struct {
	items []*domain.Booking
	err   error
}

func (f fakeArchive) ListMonth(context.Context, string, int, time.Month) ([]*domain.Booking, error) {
	return f.items, f.err
}

func day(d int) time.Time { return time.Date(2025, time.November, d, 0, 0, 0, 0, time.Local) }

func booking(id int64, d int, hhmm string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		BusinessCode:  "barberia",
		BookingDate:   day(d),
		StartTime:     types.TimeString(hhmm),
		Status:        status,
		CustomerEmail: "ana@example.com",
	}
}

var owner = domain.Principal{Email: "dueno@example.com", Role: domain.RoleAdmin, BusinessCode: "barberia"}

func TestByMonth_MergesArchiveAndCountsActive(t *testing.T) {
	repo := &fakeBookings{items: []*domain.Booking{
		booking(3, 5, "11:00", domain.StatusConfirmed),
		booking(2, 5, "10:00", domain.StatusCancelled),
	}}
	archive := fakeArchive{items: []*domain.Booking{
		booking(1, 2, "09:00", domain.StatusConfirmed),
		booking(3, 5, "11:00", domain.StatusConfirmed), // уже в БД
	}}
	svc := NewService(repo, fakeBusinesses{}, archive, nil, logger.Nop())

	resp, err := svc.ByMonth(context.Background(), owner, "barberia", 2025, time.November)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.TotalReservas)
	assert.Equal(t, map[string]int{"2025-11-02": 1, "2025-11-05": 1}, resp.ContadoresPorDia)
	require.Len(t, resp.Reservas, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{resp.Reservas[0].ID, resp.Reservas[1].ID, resp.Reservas[2].ID})
}

func TestByMonth_ArchiveFailureIsTolerated(t *testing.T) {
	repo := &fakeBookings{items: []*domain.Booking{booking(1, 5, "10:00", domain.StatusConfirmed)}}
	svc := NewService(repo, fakeBusinesses{}, fakeArchive{err: errors.New("mongo down")}, nil, logger.Nop())

	resp, err := svc.ByMonth(context.Background(), owner, "barberia", 2025, time.November)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.TotalReservas)
}

func TestByMonth_Rejections(t *testing.T) {
	svc := NewService(&fakeBookings{}, fakeBusinesses{}, fakeArchive{}, nil, logger.Nop())

	_, err := svc.ByMonth(context.Background(), domain.Principal{Email: "ana@example.com"}, "barberia", 2025, time.November)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.ByMonth(context.Background(), owner, "barberia", 2025, time.Month(13))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID_Access(t *testing.T) {
	repo := &fakeBookings{items: []*domain.Booking{booking(1, 5, "10:00", domain.StatusConfirmed)}}
	svc := NewService(repo, fakeBusinesses{}, fakeArchive{}, nil, logger.Nop())

	resp, err := svc.GetByID(context.Background(), domain.Principal{Email: "ana@example.com"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-11-05", resp.Fecha)

	_, err = svc.GetByID(context.Background(), owner, 1)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), domain.Principal{Email: "otro@example.com"}, 1)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), owner, 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestReceipt_UsesRenderer(t *testing.T) {
	repo := &fakeBookings{items: []*domain.Booking{booking(1, 5, "10:00", domain.StatusConfirmed)}}
	var gotBusiness string
	render := func(w io.Writer, b *domain.Business, _ *domain.Booking) error {
		gotBusiness = b.Name
		_, err := w.Write([]byte("%PDF"))
		return err
	}
	svc := NewService(repo, fakeBusinesses{}, fakeArchive{}, render, logger.Nop())

	var buf bytes.Buffer
	require.NoError(t, svc.Receipt(context.Background(), domain.Principal{Email: "ana@example.com"}, 1, &buf))
	assert.Equal(t, "%PDF", buf.String())
	assert.Equal(t, "Barbería Central", gotBusiness)
}

func TestList_RequiresManager(t *testing.T) {
	repo := &fakeBookings{items: []*domain.Booking{booking(1, 5, "10:00", domain.StatusConfirmed)}}
	svc := NewService(repo, fakeBusinesses{}, fakeArchive{}, nil, logger.Nop())

	d := day(5)
	list, err := svc.List(context.Background(), owner, "barberia", &d, nil)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.List(context.Background(), domain.Principal{Email: "ana@example.com"}, "barberia", nil, nil)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
