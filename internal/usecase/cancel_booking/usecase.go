package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/maxturnos/turnos-service/internal/domain"
	bookingRepo "github.com/maxturnos/turnos-service/internal/infra/storage/booking"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	events       EventPublisher
	metrics      Metrics
	logger       Logger
	timeProvider TimeProvider
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	events EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
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

// Execute мягко отменяет бронирование. Клиент может отменить свое бронирование,
// администратор любое бронирование своего бизнеса.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, actor=%s", req.BookingID, req.Actor.Email)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	note := normalizeNote(req.Note)
	var cancelled *domain.Booking

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2. Получаем бронирование
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 3. Проверяем права
		if !req.Actor.CanManage(booking.BusinessCode) && booking.CustomerEmail != req.Actor.Email {
			uc.logger.Warn("CancelBooking: access denied for %s to booking id=%d", req.Actor.Email, req.BookingID)
			return ErrAccessDenied
		}

		// 4. Проверяем статус
		if !booking.CanBeCancelled() {
			uc.logger.Warn("CancelBooking: booking id=%d already %s", req.BookingID, booking.Status)
			return ErrCannotCancel
		}

		// 5. Отменяем
		if err := uc.bookingRepo.Cancel(txCtx, booking.ID, note); err != nil {
			if errors.Is(err, bookingRepo.ErrCannotCancel) {
				return ErrCannotCancel
			}
			uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusCancelled
		booking.CancellationNote = note
		cancelled = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: booking id=%d cancelled", cancelled.ID)
	uc.metrics.IncBookingCancelled(cancelled.BusinessCode, 1)
	uc.publishCancelled(ctx, uc.events, uc.logger, cancelled)

	return &Response{Booking: cancelled}, nil
}

func normalizeNote(note *string) *string {
	if note == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*note)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (uc *UseCase) publishCancelled(ctx context.Context, events EventPublisher, logger Logger, b *domain.Booking) {
	payload := map[string]interface{}{
		"fecha":       b.BookingDate.Format(domain.DateFormat),
		"hora":        b.StartTime.String(),
		"profesional": b.StaffName,
		"email":       b.CustomerEmail,
	}
	if b.CancellationNote != nil {
		payload["nota"] = *b.CancellationNote
	}
	event := domain.Event{
		Type:         domain.EventBookingCancelled,
		BusinessCode: b.BusinessCode,
		AggregateID:  strconv.FormatInt(b.ID, 10),
		OccurredAt:   uc.timeProvider.Now(),
		Payload:      payload,
	}
	if err := events.Publish(ctx, event); err != nil {
		logger.Warn("CancelBooking: failed to publish %s for booking id=%d: %v", event.Type, b.ID, err)
	}
}
