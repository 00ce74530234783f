package restore_day

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/maxturnos/turnos-service/internal/availability"
	"github.com/maxturnos/turnos-service/internal/infra/cache"
	businessRepo "github.com/maxturnos/turnos-service/internal/infra/storage/business"
)

// UseCase восстановление отмененного дня
type UseCase struct {
	businessRepo BusinessRepository
	calendarRepo CalendarRepository
	txManager    TransactionManager
	cache        Cache
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	businessRepo BusinessRepository,
	calendarRepo CalendarRepository,
	txManager TransactionManager,
	cache Cache,
	logger Logger,
) *UseCase {
	return &UseCase{
		businessRepo: businessRepo,
		calendarRepo: calendarRepo,
		txManager:    txManager,
		cache:        cache,
		logger:       logger,
	}
}

// Execute удаляет запись об отмене. Воскресенье нерабочего бизнеса
// дополнительно сохраняется как восстановленное, иначе оно снова закроется автоматически.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	day := availability.StartOfDay(req.Date)
	uc.logger.Info("RestoreDay: business=%s, date=%s", req.BusinessCode, availability.FormatLocalDate(day))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RestoreDay: validation failed: %v", err)
		return nil, err
	}

	resp := &Response{Date: day}
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2. Бизнес
		business, err := uc.businessRepo.GetByCode(txCtx, req.BusinessCode)
		if err != nil {
			if errors.Is(err, businessRepo.ErrBusinessNotFound) {
				return ErrBusinessNotFound
			}
			return fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
		}

		// 3. Удаляем запись об отмене
		resp.Removed, err = uc.calendarRepo.RestoreDay(txCtx, req.BusinessCode, day)
		if err != nil {
			uc.logger.Error("RestoreDay: failed to delete cancelled day: %v", err)
			return fmt.Errorf("%w: failed to restore day: %v", ErrInternal, err)
		}

		// 4. Воскресенье
		if day.Weekday() == time.Sunday && !business.IsOpenWeekday(time.Sunday) {
			resp.SundayRestored, err = uc.calendarRepo.RestoreSunday(txCtx, req.BusinessCode, day)
			if err != nil {
				uc.logger.Error("RestoreDay: failed to restore sunday: %v", err)
				return fmt.Errorf("%w: failed to restore sunday: %v", ErrInternal, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Delete(ctx, cache.StorefrontKey(req.BusinessCode)); err != nil {
		uc.logger.Warn("RestoreDay: failed to invalidate storefront cache: %v", err)
	}

	uc.logger.Info("RestoreDay: %s restored (removed=%t, sunday=%t)",
		availability.FormatLocalDate(day), resp.Removed, resp.SundayRestored)
	return resp, nil
}
