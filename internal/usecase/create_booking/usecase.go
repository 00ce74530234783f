package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/maxturnos/turnos-service/internal/availability"
	"github.com/maxturnos/turnos-service/internal/domain"
	bookingRepo "github.com/maxturnos/turnos-service/internal/infra/storage/booking"
	businessRepo "github.com/maxturnos/turnos-service/internal/infra/storage/business"
	catalogRepo "github.com/maxturnos/turnos-service/internal/infra/storage/catalog"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	serviceRepo  ServiceRepository
	staffRepo    StaffRepository
	calendarRepo CalendarRepository
	txManager    TransactionManager
	events       EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	horizonDays  int
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	serviceRepo ServiceRepository,
	staffRepo StaffRepository,
	calendarRepo CalendarRepository,
	txManager TransactionManager,
	events EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		serviceRepo:  serviceRepo,
		staffRepo:    staffRepo,
		calendarRepo: calendarRepo,
		txManager:    txManager,
		events:       events,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		horizonDays:  domain.DefaultBookingHorizonDays,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования.
// Проверка свободного времени и вставка выполняются в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%s, business=%s, service=%d, staff=%d, date=%s, time=%s",
		req.Actor.Email, req.BusinessCode, req.ServiceID, req.StaffID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бизнес
	business, err := uc.businessRepo.GetByCode(ctx, req.BusinessCode)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("CreateBooking: business %s not found", req.BusinessCode)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateBooking: failed to get business %s: %v", req.BusinessCode, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}
	if !business.Active {
		uc.logger.Warn("CreateBooking: business %s is inactive", req.BusinessCode)
		return nil, ErrBusinessNotFound
	}

	// 3. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.BusinessCode, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Получаем сотрудника
	staff, err := uc.staffRepo.GetByID(ctx, req.BusinessCode, req.StaffID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			uc.logger.Warn("CreateBooking: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateBooking: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	durationMinutes := availability.ParseDurationMinutes(service.Duration, business.SlotIntervalMinutes)
	now := uc.timeProvider.Now()

	var result *domain.Booking

	// 5. Проверка и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Календарь бизнеса
		cancelled, err := uc.calendarRepo.ListCancelledDays(txCtx, req.BusinessCode, req.Date, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get cancelled days: %v", err)
			return fmt.Errorf("%w: failed to get cancelled days: %v", ErrInternal, err)
		}
		restored, err := uc.calendarRepo.ListRestoredSundays(txCtx, req.BusinessCode)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get restored sundays: %v", err)
			return fmt.Errorf("%w: failed to get restored sundays: %v", ErrInternal, err)
		}
		engine := availability.ForBusiness(business, cancelled, restored, func() time.Time { return now })

		// 5.2. Дата
		if err := validateDate(engine, req.Date, uc.horizonDays); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return err
		}

		// 5.3. Сегодняшнее время должно быть в будущем
		if !engine.IsBookableSlot(req.Date, req.StartTime.String()) {
			uc.logger.Warn("CreateBooking: slot %s on %s already passed", req.StartTime, req.Date.Format(domain.DateFormat))
			return ErrTooLateToBook
		}

		// 5.4. Бронирования сотрудника на дату (FOR UPDATE внутри транзакции) и блокировки
		staffID := req.StaffID
		bookings, err := uc.bookingRepo.GetWithFilter(txCtx, domain.BookingsFilter{
			BusinessCode: req.BusinessCode,
			StaffID:      &staffID,
			StartDate:    &req.Date,
			EndDate:      &req.Date,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}
		blocked, err := uc.calendarRepo.ListBlockedSlots(txCtx, req.BusinessCode, req.Date, &staffID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get blocked slots: %v", err)
			return fmt.Errorf("%w: failed to get blocked slots: %v", ErrInternal, err)
		}

		// 5.5. Время должно входить в свободные слоты сотрудника
		err = checkSlot(req.StartTime, availability.DayInput{
			Date:            req.Date,
			Opening:         engine.OpeningTime(),
			Closing:         engine.EffectiveClosingTime(req.Date),
			IntervalMinutes: business.SlotIntervalMinutes,
			ServiceMinutes:  durationMinutes,
			Blocked:         blockedStarts(blocked),
			Booked:          activeIntervals(bookings),
			Now:             now,
		})
		if err != nil {
			uc.logger.Warn("CreateBooking: slot %s on %s rejected for staff=%d: %v",
				req.StartTime, req.Date.Format(domain.DateFormat), req.StaffID, err)
			return err
		}

		// 5.6. Создаем бронирование со снимком услуги и сотрудника
		booking := &domain.Booking{
			BusinessCode:    req.BusinessCode,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			Status:          domain.StatusConfirmed,
			ServiceID:       service.ID,
			ServiceName:     service.Name,
			ServiceDuration: service.Duration,
			ServicePrice:    service.Price,
			DurationMinutes: durationMinutes,
			StaffID:         staff.ID,
			StaffName:       staff.Name,
			CustomerEmail:   req.Actor.Email,
			Note:            req.Note,
		}
		if req.Actor.Name != "" {
			name := req.Actor.Name
			booking.CustomerName = &name
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateBooking: concurrent booking took slot %s for staff=%d", req.StartTime, req.StaffID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 6. Метрики и событие после коммита
	uc.metrics.IncBookingCreated(result.BusinessCode)
	uc.publish(ctx, result)

	return &Response{Booking: result}, nil
}

func (uc *UseCase) publish(ctx context.Context, b *domain.Booking) {
	event := domain.Event{
		Type:         domain.EventBookingCreated,
		BusinessCode: b.BusinessCode,
		AggregateID:  strconv.FormatInt(b.ID, 10),
		OccurredAt:   uc.timeProvider.Now(),
		Payload: map[string]interface{}{
			"fecha":       b.BookingDate.Format(domain.DateFormat),
			"hora":        b.StartTime.String(),
			"profesional": b.StaffName,
			"servicio":    b.ServiceName,
			"email":       b.CustomerEmail,
		},
	}
	if err := uc.events.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish %s for booking id=%d: %v", event.Type, b.ID, err)
	}
}

func activeIntervals(bookings []*domain.Booking) []availability.BookedInterval {
	out := make([]availability.BookedInterval, 0, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		out = append(out, availability.BookedInterval{Start: b.StartTime.String(), DurationMinutes: b.DurationMinutes})
	}
	return out
}

func blockedStarts(slots []*domain.BlockedSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.StartTime.String())
	}
	return out
}
