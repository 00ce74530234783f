package get_earnings

import (
	"context"
	"fmt"
	"time"

	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/internal/earnings"
)

// UseCase отчет о доходах для панели бизнеса
type UseCase struct {
	bookingRepo BookingRepository
	archive     Archive
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, archive Archive, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		archive:     archive,
		logger:      logger,
	}
}

// Execute суммирует цены подтвержденных бронирований по дням диапазона,
// включая перенесенные в архив
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetEarnings: business=%s, mode=%s", req.BusinessCode, req.Mode)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetEarnings: validation failed: %v", err)
		return nil, err
	}

	// 2. Диапазон
	rng := buildRange(req)
	first, last := rng.Dates[0], rng.Dates[len(rng.Dates)-1]

	// 3. Актуальные бронирования
	bookings, err := uc.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		BusinessCode: req.BusinessCode,
		StartDate:    &first,
		EndDate:      &last,
	})
	if err != nil {
		uc.logger.Error("GetEarnings: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Архив по месяцам диапазона
	seen := make(map[int64]struct{}, len(bookings))
	for _, b := range bookings {
		seen[b.ID] = struct{}{}
	}
	for _, ym := range rng.Months() {
		archived, err := uc.archive.ListMonth(ctx, req.BusinessCode, ym[0], time.Month(ym[1]))
		if err != nil {
			uc.logger.Warn("GetEarnings: failed to read archive %d-%02d: %v", ym[0], ym[1], err)
			continue
		}
		for _, b := range archived {
			if _, dup := seen[b.ID]; dup {
				continue
			}
			seen[b.ID] = struct{}{}
			bookings = append(bookings, b)
		}
	}

	// 5. Агрегация
	report := earnings.Aggregate(bookings, rng)
	uc.logger.Info("GetEarnings: business=%s, days=%d, bookings=%d, total=%s",
		req.BusinessCode, len(report.Days), report.Count, earnings.FormatAmount(report.Total))

	return &Response{Report: report}, nil
}
