package earnings

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/maxturnos/turnos-service/internal/domain"
	bookingModels "github.com/maxturnos/turnos-service/internal/service/bookings/models"
)

// MonthFetcher бронирования бизнеса за месяц
type MonthFetcher interface {
	BookingsByMonth(ctx context.Context, code string, year int, month time.Month) (*bookingModels.MonthResponse, error)
}

// Load строит отчет на клиенте: загружает каждый месяц диапазона и агрегирует
// бронирования. Записи, которые не удалось разобрать, пропускаются и
// возвращаются в skipped.
func Load(ctx context.Context, api MonthFetcher, code string, r Range) (report Report, skipped int, err error) {
	var (
		mu       sync.Mutex
		bookings []*domain.Booking
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, ym := range r.Months() {
		g.Go(func() error {
			resp, err := api.BookingsByMonth(gctx, code, ym[0], time.Month(ym[1]))
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			for _, b := range resp.Reservas {
				booking, convErr := bookingModels.ToDomainBooking(b)
				if convErr != nil {
					skipped++
					continue
				}
				bookings = append(bookings, booking)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, 0, err
	}

	return Aggregate(bookings, r), skipped, nil
}
