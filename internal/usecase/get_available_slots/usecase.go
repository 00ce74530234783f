package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/maxturnos/turnos-service/internal/availability"
	"github.com/maxturnos/turnos-service/internal/domain"
	businessRepo "github.com/maxturnos/turnos-service/internal/infra/storage/business"
	catalogRepo "github.com/maxturnos/turnos-service/internal/infra/storage/catalog"
	"github.com/maxturnos/turnos-service/pkg/types"
)

// UseCase use case для получения свободного времени сотрудника
type UseCase struct {
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	serviceRepo  ServiceRepository
	staffRepo    StaffRepository
	calendarRepo CalendarRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	serviceRepo ServiceRepository,
	staffRepo StaffRepository,
	calendarRepo CalendarRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		serviceRepo:  serviceRepo,
		staffRepo:    staffRepo,
		calendarRepo: calendarRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute вычисляет свободное время сотрудника на дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%s, staff=%d, date=%s",
		req.BusinessCode, req.StaffID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бизнес
	business, err := uc.businessRepo.GetByCode(ctx, req.BusinessCode)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("GetAvailableSlots: business %s not found", req.BusinessCode)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get business %s: %v", req.BusinessCode, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 3. Проверяем сотрудника
	if _, err := uc.staffRepo.GetByID(ctx, req.BusinessCode, req.StaffID); err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			uc.logger.Warn("GetAvailableSlots: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	// 4. Длительность услуги
	serviceMinutes := business.SlotIntervalMinutes
	if req.ServiceID != nil {
		service, err := uc.serviceRepo.GetByID(ctx, req.BusinessCode, *req.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				uc.logger.Warn("GetAvailableSlots: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		serviceMinutes = availability.ParseDurationMinutes(service.Duration, business.SlotIntervalMinutes)
	}

	response := &Response{
		Date:      req.Date,
		StaffID:   req.StaffID,
		Available: []types.TimeString{},
		Blocked:   []types.TimeString{},
	}

	// 5. Закрытые дни не имеют слотов
	cancelled, err := uc.calendarRepo.ListCancelledDays(ctx, req.BusinessCode, req.Date, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get cancelled days: %v", err)
		return nil, fmt.Errorf("%w: failed to get cancelled days: %v", ErrInternal, err)
	}
	restored, err := uc.calendarRepo.ListRestoredSundays(ctx, req.BusinessCode)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get restored sundays: %v", err)
		return nil, fmt.Errorf("%w: failed to get restored sundays: %v", ErrInternal, err)
	}

	engine := availability.ForBusiness(business, cancelled, restored, uc.timeProvider.Now)
	if !engine.IsBusinessOpenOn(req.Date) {
		uc.logger.Info("GetAvailableSlots: business %s is closed on %s", req.BusinessCode, req.Date.Format(domain.DateFormat))
		response.Closed = true
		return response, nil
	}

	// 6. Бронирования и блокировки сотрудника
	staffID := req.StaffID
	bookings, err := uc.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		BusinessCode: req.BusinessCode,
		StaffID:      &staffID,
		StartDate:    &req.Date,
		EndDate:      &req.Date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	blocked, err := uc.calendarRepo.ListBlockedSlots(ctx, req.BusinessCode, req.Date, &staffID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked slots: %v", ErrInternal, err)
	}

	// 7. Вычисляем свободные слоты
	day := availability.FreeSlots(availability.DayInput{
		Date:            req.Date,
		Opening:         engine.OpeningTime(),
		Closing:         engine.EffectiveClosingTime(req.Date),
		IntervalMinutes: business.SlotIntervalMinutes,
		ServiceMinutes:  serviceMinutes,
		Blocked:         blockedTimes(blocked),
		Booked:          bookedIntervals(bookings, req.StaffID),
		Now:             uc.timeProvider.Now(),
	})

	response.Available = toTimeStrings(day.Available)
	response.Blocked = toTimeStrings(day.Blocked)

	uc.logger.Info("GetAvailableSlots: %d available, %d blocked for staff=%d on %s",
		len(response.Available), len(response.Blocked), req.StaffID, req.Date.Format(domain.DateFormat))
	return response, nil
}
