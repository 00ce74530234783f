package cancel_day_bookings

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/maxturnos/turnos-service/internal/domain"
)

// UseCase отмена всех бронирований дня из панели бизнеса
type UseCase struct {
	bookingRepo  BookingRepository
	events       EventPublisher
	metrics      Metrics
	logger       Logger
	timeProvider TimeProvider
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, events EventPublisher, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
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

// Execute отменяет каждое активное бронирование даты отдельно.
// Ошибка одного бронирования не прерывает остальные.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelDayBookings: business=%s, date=%s", req.BusinessCode, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelDayBookings: validation failed: %v", err)
		return nil, err
	}

	// 2. Активные бронирования даты
	bookings, err := uc.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		BusinessCode: req.BusinessCode,
		StartDate:    &req.Date,
		EndDate:      &req.Date,
	})
	if err != nil {
		uc.logger.Error("CancelDayBookings: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	var note *string
	if req.Note != nil && strings.TrimSpace(*req.Note) != "" {
		trimmed := strings.TrimSpace(*req.Note)
		note = &trimmed
	}

	// 3. Отменяем по одному
	resp := &Response{Results: make([]Result, 0, len(bookings))}
	for _, b := range bookings {
		if !b.CanBeCancelled() {
			continue
		}
		if err := uc.bookingRepo.Cancel(ctx, b.ID, note); err != nil {
			uc.logger.Warn("CancelDayBookings: failed to cancel booking id=%d: %v", b.ID, err)
			resp.Results = append(resp.Results, Result{BookingID: b.ID, Error: err.Error()})
			resp.Failed++
			continue
		}
		resp.Results = append(resp.Results, Result{BookingID: b.ID, Cancelled: true})
		resp.Cancelled++

		event := domain.Event{
			Type:         domain.EventBookingCancelled,
			BusinessCode: b.BusinessCode,
			AggregateID:  strconv.FormatInt(b.ID, 10),
			OccurredAt:   uc.timeProvider.Now(),
			Payload: map[string]interface{}{
				"fecha": b.BookingDate.Format(domain.DateFormat),
				"hora":  b.StartTime.String(),
				"email": b.CustomerEmail,
			},
		}
		if err := uc.events.Publish(ctx, event); err != nil {
			uc.logger.Warn("CancelDayBookings: failed to publish %s for booking id=%d: %v", event.Type, b.ID, err)
		}
	}

	uc.metrics.IncBookingCancelled(req.BusinessCode, resp.Cancelled)
	uc.logger.Info("CancelDayBookings: business=%s, date=%s, cancelled=%d, failed=%d",
		req.BusinessCode, req.Date.Format(domain.DateFormat), resp.Cancelled, resp.Failed)

	return resp, nil
}
