package schedule

import (
	"context"
	"time"

	cancelDayBookings "github.com/maxturnos/turnos-service/internal/api/handlers/cancel_day_bookings"
	"github.com/maxturnos/turnos-service/internal/availability"
)

// Projection ожидаемое состояние дня сразу после массовой отмены
type Projection struct {
	Date   time.Time
	Before int
	After  int
}

// Reconciliation фактический итог массовой отмены, сверенный с сервером
type Reconciliation struct {
	Date      time.Time
	Cancelled int
	Failed    int
	Remaining int  // активные бронирования по данным сервера после отмены
	Confirmed bool // Remaining совпал с проекцией
	Err       error
}

// CancelAllBookings отменяет все бронирования дня в две фазы: счетчик дня сразу
// обнуляется локально, а отмена и сверка со свежими данными сервера идут в фоне.
// Канал получает ровно одно значение и закрывается.
func (p *Page) CancelAllBookings(ctx context.Context, date time.Time, note string) (Projection, <-chan Reconciliation, error) {
	date = availability.StartOfDay(date)
	key := availability.FormatLocalDate(date)

	p.mu.Lock()
	if !p.loaded {
		p.mu.Unlock()
		return Projection{}, nil, ErrNotLoaded
	}
	projection := Projection{Date: date, Before: p.bookings[key], After: 0}
	p.bookings[key] = 0
	year, month := p.year, p.month
	p.mu.Unlock()

	var nota *string
	if note != "" {
		nota = &note
	}

	out := make(chan Reconciliation, 1)
	go func() {
		defer close(out)
		out <- p.reconcileCancelAll(ctx, projection, year, month, nota)
	}()

	return projection, out, nil
}

func (p *Page) reconcileCancelAll(ctx context.Context, projection Projection, year int, month time.Month, note *string) Reconciliation {
	key := availability.FormatLocalDate(projection.Date)
	rec := Reconciliation{Date: projection.Date}

	resp, err := p.api.CancelDayBookings(ctx, cancelDayBookings.CancelDayBookingsRequest{
		Establecimiento: p.code,
		Fecha:           key,
		Nota:            note,
	})
	if err != nil {
		p.logger.Error("schedule %s: cancel bookings %s: %v", p.code, key, err)
		rec.Err = err
	} else {
		rec.Cancelled, rec.Failed = resp.Canceladas, resp.Fallidas
		for _, r := range resp.Resultados {
			if !r.Cancelada {
				p.logger.Warn("schedule %s: booking %d on %s not cancelled: %s", p.code, r.ID, key, r.Error)
			}
		}
	}

	fresh, err := p.api.BookingsByMonth(ctx, p.code, year, month)
	if err != nil {
		p.logger.Error("schedule %s: reconcile %s: %v", p.code, key, err)
		// без свежих счетчиков: при неудачной отмене откатываем проекцию,
		// иначе остаются бронирования, которые сервер не смог отменить
		if rec.Err == nil {
			rec.Err = err
			rec.Remaining = rec.Failed
		} else {
			rec.Remaining = projection.Before
		}
		p.setBookingCount(year, month, key, rec.Remaining)
		return rec
	}

	rec.Remaining = fresh.ContadoresPorDia[key]
	rec.Confirmed = rec.Remaining == 0

	p.setBookingCount(year, month, key, rec.Remaining)

	if !rec.Confirmed {
		p.logger.Warn("schedule %s: %s still has %d booking(s) after cancel all", p.code, key, rec.Remaining)
	}
	return rec
}

// setBookingCount обновляет счетчик, если страница все еще показывает тот же месяц
func (p *Page) setBookingCount(year int, month time.Month, key string, n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.year == year && p.month == month {
		p.bookings[key] = n
	}
}
