package workers

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

type fakeReviews struct {
	calledWith time.Time
	err        error
}

func (f *fakeReviews) PurgeRejected(_ context.Context, now time.Time) (int64, error) {
	f.calledWith = now
	return 3, f.err
}

func TestReviewPurgeWorker_RunOnce(t *testing.T) {
	now := time.Date(2025, time.November, 4, 10, 0, 0, 0, time.Local)
	reviews := &fakeReviews{}
	w := NewReviewPurgeWorker(reviews, 0, logger.Nop())
	w.now = func() time.Time { return now }

	w.RunOnce(context.Background())
	assert.Equal(t, now, reviews.calledWith)
	assert.Equal(t, time.Hour, w.interval)
}

func TestReviewPurgeWorker_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := NewReviewPurgeWorker(&fakeReviews{err: errors.New("db down")}, time.Hour, logger.Nop())

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

type fakeSource struct {
	bookings []*domain.Booking
	before   time.Time
	deleted  []int64
}

func (f *fakeSource) ListBefore(_ context.Context, day time.Time, limit int) ([]*domain.Booking, error) {
	f.before = day
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.BookingDate.Before(day) && len(out) < limit {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeSource) DeleteByIDs(_ context.Context, ids []int64) error {
	drop := make(map[int64]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := f.bookings[:0]
	for _, b := range f.bookings {
		if !drop[b.ID] {
			kept = append(kept, b)
		}
	}
	f.bookings = kept
	f.deleted = append(f.deleted, ids...)
	return nil
}

type fakeArchive struct {
	stored []*domain.Booking
	err    error
}

func (f *fakeArchive) Store(_ context.Context, bookings []*domain.Booking) error {
	if f.err != nil {
		return f.err
	}
	f.stored = append(f.stored, bookings...)
	return nil
}

func day(d int) time.Time { return time.Date(2025, time.November, d, 0, 0, 0, 0, time.Local) }

func TestBookingArchiveWorker_MovesPastBookings(t *testing.T) {
	source := &fakeSource{bookings: []*domain.Booking{
		{ID: 1, BookingDate: day(1)},
		{ID: 2, BookingDate: day(3)},
		{ID: 3, BookingDate: day(4)},
		{ID: 4, BookingDate: day(5)},
	}}
	archive := &fakeArchive{}
	w := NewBookingArchiveWorker(source, archive, 2, logger.Nop())
	w.now = func() time.Time { return time.Date(2025, time.November, 4, 2, 0, 0, 0, time.Local) }

	moved, err := w.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, moved)
	assert.Equal(t, day(4), source.before)
	assert.ElementsMatch(t, []int64{1, 2}, source.deleted)
	assert.Len(t, archive.stored, 2)
	assert.Len(t, source.bookings, 2)
}

func TestBookingArchiveWorker_KeepsBookingsWhenArchiveFails(t *testing.T) {
	source := &fakeSource{bookings: []*domain.Booking{{ID: 1, BookingDate: day(1)}}}
	w := NewBookingArchiveWorker(source, &fakeArchive{err: errors.New("mongo down")}, 2, logger.Nop())
	w.now = func() time.Time { return day(4) }

	_, err := w.RunOnce(context.Background())
	assert.Error(t, err)
	assert.Empty(t, source.deleted)
	assert.Len(t, source.bookings, 1)
}

func TestBookingArchiveWorker_UntilNextRun(t *testing.T) {
	w := NewBookingArchiveWorker(&fakeSource{}, &fakeArchive{}, 2, logger.Nop())

	assert.Equal(t, time.Hour, w.untilNextRun(time.Date(2025, time.November, 4, 1, 0, 0, 0, time.Local)))
	assert.Equal(t, 23*time.Hour, w.untilNextRun(time.Date(2025, time.November, 4, 3, 0, 0, 0, time.Local)))
	assert.Equal(t, 24*time.Hour, w.untilNextRun(time.Date(2025, time.November, 4, 2, 0, 0, 0, time.Local)))
}
