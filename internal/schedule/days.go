package schedule

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	cancelDay "github.com/maxturnos/turnos-service/internal/api/handlers/cancel_day"
	"github.com/maxturnos/turnos-service/internal/availability"
)

// DayResult результат операции над датой
type DayResult struct {
	Date time.Time
	Err  error
}

// CancelSelected отменяет выбранные дни. Дни с бронированиями отклоняются
// до любого сетевого вызова. Частичные ошибки логируются и не откатывают успешные.
func (p *Page) CancelSelected(ctx context.Context, reason string) ([]DayResult, error) {
	p.mu.Lock()
	if !p.loaded {
		p.mu.Unlock()
		return nil, ErrNotLoaded
	}
	dates := p.selectedLocked()
	if len(dates) == 0 {
		p.mu.Unlock()
		return nil, ErrNoSelection
	}
	for _, d := range dates {
		if n := p.bookings[availability.FormatLocalDate(d)]; n > 0 {
			p.mu.Unlock()
			return nil, &DayHasBookingsError{Date: d, Count: n}
		}
	}
	p.mu.Unlock()

	if reason == "" {
		reason = defaultCancelReason
	}

	results := p.forEachDate(ctx, dates, func(ctx context.Context, d time.Time) error {
		_, err := p.api.CancelDay(ctx, cancelDay.CancelDayRequest{
			Establecimiento: p.code,
			Fecha:           availability.FormatLocalDate(d),
			Motivo:          &reason,
		})
		return err
	})

	p.mu.Lock()
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		key := availability.FormatLocalDate(r.Date)
		motivo := reason
		p.cancelled[key] = &motivo
		delete(p.restored, key)
	}
	p.mu.Unlock()

	return results, p.summarize("cancel day", results)
}

// RestoreSelected возвращает выбранные дни в работу. Воскресенье дополнительно
// попадает в локальный набор восстановленных, чтобы автозакрытие не скрыло его снова.
func (p *Page) RestoreSelected(ctx context.Context) ([]DayResult, error) {
	p.mu.Lock()
	if !p.loaded {
		p.mu.Unlock()
		return nil, ErrNotLoaded
	}
	dates := p.selectedLocked()
	p.mu.Unlock()
	if len(dates) == 0 {
		return nil, ErrNoSelection
	}

	results := p.forEachDate(ctx, dates, func(ctx context.Context, d time.Time) error {
		_, err := p.api.RestoreDay(ctx, p.code, d)
		return err
	})

	p.mu.Lock()
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		key := availability.FormatLocalDate(r.Date)
		delete(p.cancelled, key)
		if r.Date.Weekday() == time.Sunday {
			p.restored[key] = struct{}{}
		}
	}
	p.mu.Unlock()

	return results, p.summarize("restore day", results)
}

func (p *Page) forEachDate(ctx context.Context, dates []time.Time, fn func(context.Context, time.Time) error) []DayResult {
	results := make([]DayResult, len(dates))

	var g errgroup.Group
	g.SetLimit(fanOutLimit)
	for i, d := range dates {
		g.Go(func() error {
			results[i] = DayResult{Date: d, Err: fn(ctx, d)}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (p *Page) summarize(op string, results []DayResult) error {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			p.logger.Warn("schedule %s: %s %s: %v", p.code, op, availability.FormatLocalDate(r.Date), r.Err)
		}
	}
	if failed > 0 && failed == len(results) {
		return ErrAllRequestsFailed
	}
	return nil
}
