package workers

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/maxturnos/turnos-service/internal/availability"
	"github.com/maxturnos/turnos-service/internal/infra/tracing"
)

const archiveBatchSize = 500

// BookingArchiveWorker раз в сутки переносит прошедшие бронирования в архив.
// Запись в архив идемпотентна по ID, поэтому сбой между Store и DeleteByIDs
// приводит только к повторной записи на следующем проходе.
type BookingArchiveWorker struct {
	source  BookingSource
	archive Archive
	hour    int
	logger  Logger
	now     func() time.Time
}

func NewBookingArchiveWorker(source BookingSource, archive Archive, hour int, logger Logger) *BookingArchiveWorker {
	if hour < 0 || hour > 23 {
		hour = 2
	}
	return &BookingArchiveWorker{
		source:  source,
		archive: archive,
		hour:    hour,
		logger:  logger,
		now:     time.Now,
	}
}

// Run блокируется до отмены ctx, проход выполняется ежедневно в заданный час
func (w *BookingArchiveWorker) Run(ctx context.Context) {
	for {
		wait := w.untilNextRun(w.now())
		w.logger.Info("BookingArchiveWorker: next run in %s", wait.Round(time.Second))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			w.logger.Info("BookingArchiveWorker: stopped")
			return
		case <-timer.C:
		}

		moved, err := w.RunOnce(ctx)
		if err != nil {
			w.logger.Error("BookingArchiveWorker: %v (moved %d before failure)", err, moved)
			continue
		}
		w.logger.Info("BookingArchiveWorker: %d booking(s) archived", moved)
	}
}

// RunOnce переносит все бронирования раньше сегодняшней даты пачками
func (w *BookingArchiveWorker) RunOnce(ctx context.Context) (moved int, err error) {
	ctx, span := tracing.Tracer().Start(ctx, "workers.archive_bookings")
	defer func() {
		span.SetAttributes(attribute.Int("bookings.moved", moved))
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	today := availability.StartOfDay(w.now())

	for {
		batch, err := w.source.ListBefore(ctx, today, archiveBatchSize)
		if err != nil {
			return moved, fmt.Errorf("list bookings: %w", err)
		}
		if len(batch) == 0 {
			return moved, nil
		}

		if err := w.archive.Store(ctx, batch); err != nil {
			return moved, fmt.Errorf("store in archive: %w", err)
		}

		ids := make([]int64, 0, len(batch))
		for _, b := range batch {
			ids = append(ids, b.ID)
		}
		if err := w.source.DeleteByIDs(ctx, ids); err != nil {
			return moved, fmt.Errorf("delete archived bookings: %w", err)
		}
		moved += len(batch)

		if len(batch) < archiveBatchSize {
			return moved, nil
		}
	}
}

func (w *BookingArchiveWorker) untilNextRun(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), w.hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
