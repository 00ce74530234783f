package cancel_day

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/maxturnos/turnos-service/internal/availability"
	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/internal/infra/cache"
	businessRepo "github.com/maxturnos/turnos-service/internal/infra/storage/business"
)

// UseCase отмена рабочего дня владельцем
type UseCase struct {
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	calendarRepo CalendarRepository
	txManager    TransactionManager
	cache        Cache
	events       EventPublisher
	metrics      Metrics
	logger       Logger
	timeProvider TimeProvider
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	calendarRepo CalendarRepository,
	txManager TransactionManager,
	cache Cache,
	events EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		calendarRepo: calendarRepo,
		txManager:    txManager,
		cache:        cache,
		events:       events,
		metrics:      metrics,
		logger:       logger,
		timeProvider: &RealTimeProvider{},
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute отменяет день. Повторная отмена не ошибка.
// День с активными бронированиями не отменяется: *DayHasBookingsError с их количеством.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	day := availability.StartOfDay(req.Date)
	uc.logger.Info("CancelDay: business=%s, date=%s", req.BusinessCode, availability.FormatLocalDate(day))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelDay: validation failed: %v", err)
		return nil, err
	}

	reason := domain.DefaultCancelDayReason
	if req.Reason != nil && strings.TrimSpace(*req.Reason) != "" {
		reason = strings.TrimSpace(*req.Reason)
	}

	var created bool
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Бизнес
		business, err := uc.businessRepo.GetByCode(txCtx, req.BusinessCode)
		if err != nil {
			if errors.Is(err, businessRepo.ErrBusinessNotFound) {
				return ErrBusinessNotFound
			}
			return fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
		}

		// 3. Активные бронирования
		counts, err := uc.bookingRepo.CountActiveByDay(txCtx, req.BusinessCode, day, day)
		if err != nil {
			uc.logger.Error("CancelDay: failed to count bookings: %v", err)
			return fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
		}
		if n := counts[availability.FormatLocalDate(day)]; n > 0 {
			uc.logger.Warn("CancelDay: %s has %d active bookings", availability.FormatLocalDate(day), n)
			return &DayHasBookingsError{Date: day, Count: n}
		}

		// 4. Восстановленное воскресенье снова закрывается
		if day.Weekday() == time.Sunday && !business.IsOpenWeekday(time.Sunday) {
			if _, err := uc.calendarRepo.UnrestoreSunday(txCtx, req.BusinessCode, day); err != nil {
				return fmt.Errorf("%w: failed to unrestore sunday: %v", ErrInternal, err)
			}
		}

		// 5. Запись об отмене
		created, err = uc.calendarRepo.CancelDay(txCtx, req.BusinessCode, day, &reason)
		if err != nil {
			uc.logger.Error("CancelDay: failed to cancel day: %v", err)
			return fmt.Errorf("%w: failed to cancel day: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !created {
		uc.logger.Info("CancelDay: %s already cancelled", availability.FormatLocalDate(day))
		return &Response{Date: day, Created: false}, nil
	}

	uc.metrics.IncDayCancelled(req.BusinessCode)
	if err := uc.cache.Delete(ctx, cache.StorefrontKey(req.BusinessCode)); err != nil {
		uc.logger.Warn("CancelDay: failed to invalidate storefront cache: %v", err)
	}
	event := domain.Event{
		Type:         domain.EventDayCancelled,
		BusinessCode: req.BusinessCode,
		AggregateID:  availability.FormatLocalDate(day),
		OccurredAt:   uc.timeProvider.Now(),
		Payload:      map[string]interface{}{"fecha": availability.FormatLocalDate(day), "motivo": reason},
	}
	if err := uc.events.Publish(ctx, event); err != nil {
		uc.logger.Warn("CancelDay: failed to publish %s: %v", event.Type, err)
	}

	uc.logger.Info("CancelDay: %s cancelled for business=%s", availability.FormatLocalDate(day), req.BusinessCode)
	return &Response{Date: day, Created: true}, nil
}
