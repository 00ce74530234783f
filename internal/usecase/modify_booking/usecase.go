package modify_booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/maxturnos/turnos-service/internal/availability"
	"github.com/maxturnos/turnos-service/internal/domain"
	bookingRepo "github.com/maxturnos/turnos-service/internal/infra/storage/booking"
	catalogRepo "github.com/maxturnos/turnos-service/internal/infra/storage/catalog"
)

// UseCase use case для переноса бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	staffRepo    StaffRepository
	calendarRepo CalendarRepository
	txManager    TransactionManager
	events       EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	staffRepo StaffRepository,
	calendarRepo CalendarRepository,
	txManager TransactionManager,
	events EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		staffRepo:    staffRepo,
		calendarRepo: calendarRepo,
		txManager:    txManager,
		events:       events,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute переносит бронирование на другую дату, время или сотрудника
// с теми же проверками, что и при создании
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ModifyBooking: booking=%d, actor=%s", req.BookingID, req.Actor.Email)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ModifyBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Получаем бронирование (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ModifyBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ModifyBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 3. Права и статус
		if err := checkAccess(req.Actor, booking); err != nil {
			uc.logger.Warn("ModifyBooking: access denied for %s to booking id=%d", req.Actor.Email, req.BookingID)
			return err
		}
		if !booking.CanBeUpdated() {
			uc.logger.Warn("ModifyBooking: booking id=%d has status %s", req.BookingID, booking.Status)
			return ErrCannotModify
		}

		// 4. Новые значения
		date := booking.BookingDate
		if req.Date != nil {
			date = *req.Date
		}
		start := booking.StartTime
		if req.StartTime != nil {
			start = *req.StartTime
		}
		staffID, staffName := booking.StaffID, booking.StaffName
		if req.StaffID != nil && *req.StaffID != booking.StaffID {
			staff, err := uc.staffRepo.GetByID(txCtx, booking.BusinessCode, *req.StaffID)
			if err != nil {
				if errors.Is(err, catalogRepo.ErrStaffNotFound) {
					uc.logger.Warn("ModifyBooking: staff id=%d not found", *req.StaffID)
					return ErrStaffNotFound
				}
				uc.logger.Error("ModifyBooking: failed to get staff id=%d: %v", *req.StaffID, err)
				return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
			}
			staffID, staffName = staff.ID, staff.Name
		}

		// 5. Проверяем новое время
		if err := uc.checkTarget(txCtx, booking, date, start.String(), staffID, now); err != nil {
			return err
		}

		// 6. Сохраняем
		if err := uc.bookingRepo.Reschedule(txCtx, booking.ID, date, start, staffID, staffName); err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("ModifyBooking: concurrent booking took slot %s for staff=%d", start, staffID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("ModifyBooking: failed to reschedule booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to reschedule: %v", ErrInternal, err)
		}

		booking.BookingDate = date
		booking.StartTime = start
		booking.StaffID = staffID
		booking.StaffName = staffName
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ModifyBooking: booking id=%d moved to %s %s (staff=%d)",
		result.ID, result.BookingDate.Format(domain.DateFormat), result.StartTime, result.StaffID)

	event := domain.Event{
		Type:         domain.EventBookingModified,
		BusinessCode: result.BusinessCode,
		AggregateID:  strconv.FormatInt(result.ID, 10),
		OccurredAt:   now,
		Payload: map[string]interface{}{
			"fecha":       result.BookingDate.Format(domain.DateFormat),
			"hora":        result.StartTime.String(),
			"profesional": result.StaffName,
		},
	}
	if err := uc.events.Publish(ctx, event); err != nil {
		uc.logger.Warn("ModifyBooking: failed to publish %s for booking id=%d: %v", event.Type, result.ID, err)
	}

	return &Response{Booking: result}, nil
}

// checkTarget проверяет дату и время для переноса, не считая само бронирование занятым
func (uc *UseCase) checkTarget(ctx context.Context, booking *domain.Booking, date time.Time, start string, staffID int64, now time.Time) error {
	business, err := uc.businessRepo.GetByCode(ctx, booking.BusinessCode)
	if err != nil {
		uc.logger.Error("ModifyBooking: failed to get business %s: %v", booking.BusinessCode, err)
		return fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	cancelled, err := uc.calendarRepo.ListCancelledDays(ctx, booking.BusinessCode, date, date)
	if err != nil {
		return fmt.Errorf("%w: failed to get cancelled days: %v", ErrInternal, err)
	}
	restored, err := uc.calendarRepo.ListRestoredSundays(ctx, booking.BusinessCode)
	if err != nil {
		return fmt.Errorf("%w: failed to get restored sundays: %v", ErrInternal, err)
	}

	engine := availability.ForBusiness(business, cancelled, restored, func() time.Time { return now })
	if engine.IsPast(date) {
		uc.logger.Warn("ModifyBooking: date %s is in the past", date.Format(domain.DateFormat))
		return ErrInvalidDate
	}
	if !engine.IsBusinessOpenOn(date) {
		uc.logger.Warn("ModifyBooking: business %s is closed on %s", booking.BusinessCode, date.Format(domain.DateFormat))
		return ErrBusinessClosed
	}

	bookings, err := uc.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		BusinessCode: booking.BusinessCode,
		StaffID:      &staffID,
		StartDate:    &date,
		EndDate:      &date,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}
	blocked, err := uc.calendarRepo.ListBlockedSlots(ctx, booking.BusinessCode, date, &staffID)
	if err != nil {
		return fmt.Errorf("%w: failed to get blocked slots: %v", ErrInternal, err)
	}

	booked := make([]availability.BookedInterval, 0, len(bookings))
	for _, b := range bookings {
		if b.ID == booking.ID || !b.IsActive() {
			continue
		}
		booked = append(booked, availability.BookedInterval{Start: b.StartTime.String(), DurationMinutes: b.DurationMinutes})
	}
	blockedTimes := make([]string, 0, len(blocked))
	for _, s := range blocked {
		blockedTimes = append(blockedTimes, s.StartTime.String())
	}

	verdict := availability.CheckSlot(start, availability.DayInput{
		Date:            date,
		Opening:         engine.OpeningTime(),
		Closing:         engine.EffectiveClosingTime(date),
		IntervalMinutes: business.SlotIntervalMinutes,
		ServiceMinutes:  booking.DurationMinutes,
		Blocked:         blockedTimes,
		Booked:          booked,
		Now:             now,
	})
	switch verdict {
	case availability.SlotFree:
		return nil
	case availability.SlotTaken:
		uc.logger.Warn("ModifyBooking: slot %s on %s is taken for staff=%d", start, date.Format(domain.DateFormat), staffID)
		return ErrSlotNotAvailable
	default:
		uc.logger.Warn("ModifyBooking: slot %s on %s is not bookable", start, date.Format(domain.DateFormat))
		return ErrInvalidTimeSlot
	}
}
