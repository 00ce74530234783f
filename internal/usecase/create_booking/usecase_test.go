package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxturnos/turnos-service/internal/domain"
	bookingRepo "github.com/maxturnos/turnos-service/internal/infra/storage/booking"
	businessRepo "github.com/maxturnos/turnos-service/internal/infra/storage/business"
	catalogRepo "github.com/maxturnos/turnos-service/internal/infra/storage/catalog"
	"github.com/maxturnos/turnos-service/pkg/logger"
	"github.com/maxturnos/turnos-service/pkg/ptr"
	"github.com/maxturnos/turnos-service/pkg/types"
)

type fakeBookings struct {
	items     []*domain.Booking
	createErr error
	nextID    int64
}

func (f *fakeBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	b.ID = f.nextID
	f.items = append(f.items, b)
	return b, nil
}

func (f *fakeBookings) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.items {
		if filter.StaffID != nil && b.StaffID != *filter.StaffID {
			continue
		}
		if filter.StartDate != nil && !sameDay(b.BookingDate, *filter.StartDate) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func sameDay(a, b time.Time) bool {
	return a.Format(domain.DateFormat) == b.Format(domain.DateFormat)
}

type fakeBusinesses struct{ b *domain.Business }

func (f fakeBusinesses) GetByCode(_ context.Context, code string) (*domain.Business, error) {
	if f.b.Code != code {
		return nil, businessRepo.ErrBusinessNotFound
	}
	return f.b, nil
}

type fakeServices struct{}

func (fakeServices) GetByID(_ context.Context, _ string, id int64) (*domain.Service, error) {
	if id != 1 {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return &domain.Service{ID: 1, Name: "Corte de Pelo Clásico", Duration: "30 min", Price: "$2500"}, nil
}

type fakeStaff struct{}

func (fakeStaff) GetByID(_ context.Context, _ string, id int64) (*domain.Staff, error) {
	if id > 2 {
		return nil, catalogRepo.ErrStaffNotFound
	}
	return &domain.Staff{ID: id, Name: "Carlos Mendoza"}, nil
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

func (f *fakeCalendar) ListBlockedSlots(context.Context, string, time.Time, *int64) ([]*domain.BlockedSlot, error) {
	return f.blocked, nil
}

type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingEvents struct{ events []domain.Event }

func (r *recordingEvents) Publish(_ context.Context, e domain.Event) error {
	r.events = append(r.events, e)
	return nil
}

type countingMetrics struct{ created int }

func (c *countingMetrics) IncBookingCreated(string) { c.created++ }

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type env struct {
	uc       *UseCase
	bookings *fakeBookings
	calendar *fakeCalendar
	events   *recordingEvents
	metrics  *countingMetrics
}

// "сейчас" = вторник 4 ноября 2025, 10:10
func newEnv() *env {
	business := &domain.Business{Code: "barberia", Active: true}
	business.ApplyDefaults()

	e := &env{
		bookings: &fakeBookings{},
		calendar: &fakeCalendar{},
		events:   &recordingEvents{},
		metrics:  &countingMetrics{},
	}
	e.uc = NewUseCase(e.bookings, fakeBusinesses{b: business}, fakeServices{}, fakeStaff{}, e.calendar,
		inlineTx{}, e.events, e.metrics, logger.Nop()).
		WithTimeProvider(fixedTime{t: time.Date(2025, time.November, 4, 10, 10, 0, 0, time.Local)})
	return e
}

func request(date time.Time, start string) *Request {
	return &Request{
		Actor:        domain.Principal{Email: "cliente@example.com", Name: "Ana Pérez", Role: domain.RoleCustomer},
		BusinessCode: "barberia",
		ServiceID:    1,
		StaffID:      1,
		Date:         date,
		StartTime:    types.TimeString(start),
	}
}

func wednesday() time.Time { return time.Date(2025, time.November, 5, 0, 0, 0, 0, time.Local) }

func TestExecute_CreatesBookingWithSnapshot(t *testing.T) {
	e := newEnv()

	resp, err := e.uc.Execute(context.Background(), request(wednesday(), "10:00"))
	require.NoError(t, err)

	b := resp.Booking
	assert.Equal(t, int64(1), b.ID)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.Equal(t, "Corte de Pelo Clásico", b.ServiceName)
	assert.Equal(t, "$2500", b.ServicePrice)
	assert.Equal(t, 30, b.DurationMinutes)
	assert.Equal(t, "Carlos Mendoza", b.StaffName)
	assert.Equal(t, "Ana Pérez", *b.CustomerName)

	assert.Equal(t, 1, e.metrics.created)
	require.Len(t, e.events.events, 1)
	assert.Equal(t, domain.EventBookingCreated, e.events.events[0].Type)
}

func TestExecute_SameStaffCollisionIsRejected(t *testing.T) {
	e := newEnv()

	_, err := e.uc.Execute(context.Background(), request(wednesday(), "10:00"))
	require.NoError(t, err)

	_, err = e.uc.Execute(context.Background(), request(wednesday(), "10:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// другой сотрудник на то же время свободен
	other := request(wednesday(), "10:00")
	other.StaffID = 2
	_, err = e.uc.Execute(context.Background(), other)
	assert.NoError(t, err)
}

func TestExecute_Rejections(t *testing.T) {
	today := time.Date(2025, time.November, 4, 0, 0, 0, 0, time.Local)
	sunday := time.Date(2025, time.November, 9, 0, 0, 0, 0, time.Local)

	cases := []struct {
		name    string
		req     *Request
		prepare func(e *env)
		wantErr error
	}{
		{name: "no session", req: func() *Request { r := request(wednesday(), "10:00"); r.Actor = domain.Principal{}; return r }(), wantErr: ErrLoginRequired},
		{name: "past date", req: request(time.Date(2025, time.November, 3, 0, 0, 0, 0, time.Local), "10:00"), wantErr: ErrInvalidDate},
		{name: "beyond horizon", req: request(time.Date(2025, time.December, 20, 0, 0, 0, 0, time.Local), "10:00"), wantErr: ErrDateTooFarInFuture},
		{name: "sunday closed", req: request(sunday, "10:00"), wantErr: ErrBusinessClosed},
		{name: "today past time", req: request(today, "10:00"), wantErr: ErrTooLateToBook},
		{name: "off grid", req: request(wednesday(), "10:15"), wantErr: ErrInvalidTimeSlot},
		{name: "does not fit before closing", req: request(wednesday(), "20:00"), wantErr: ErrInvalidTimeSlot},
		{
			name: "cancelled day",
			req:  request(wednesday(), "10:00"),
			prepare: func(e *env) {
				e.calendar.cancelled = []*domain.CancelledDay{{Day: wednesday()}}
			},
			wantErr: ErrBusinessClosed,
		},
		{
			name: "blocked time",
			req:  request(wednesday(), "10:00"),
			prepare: func(e *env) {
				e.calendar.blocked = []*domain.BlockedSlot{{StaffID: 1, StartTime: "10:00"}}
			},
			wantErr: ErrSlotNotAvailable,
		},
		{
			name: "unique index race",
			req:  request(wednesday(), "10:00"),
			prepare: func(e *env) {
				e.bookings.createErr = bookingRepo.ErrSlotNotAvailable
			},
			wantErr: ErrSlotNotAvailable,
		},
		{name: "long note", req: func() *Request {
			r := request(wednesday(), "10:00")
			r.Note = ptr.Ptr(string(make([]rune, 251)))
			return r
		}(), wantErr: ErrInvalidInput},
		{name: "unknown staff", req: func() *Request { r := request(wednesday(), "10:00"); r.StaffID = 7; return r }(), wantErr: ErrStaffNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv()
			if tc.prepare != nil {
				tc.prepare(e)
			}
			_, err := e.uc.Execute(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, e.events.events)
		})
	}
}
