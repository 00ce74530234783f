package bookings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/maxturnos/turnos-service/internal/availability"
	"github.com/maxturnos/turnos-service/internal/domain"
	bookingRepo "github.com/maxturnos/turnos-service/internal/infra/storage/booking"
	businessRepo "github.com/maxturnos/turnos-service/internal/infra/storage/business"
	"github.com/maxturnos/turnos-service/internal/service/bookings/models"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	archive      Archive
	render       ReceiptRenderer
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	archive Archive,
	render ReceiptRenderer,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		archive:      archive,
		render:       render,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Клиент видит только свои бронирования, владелец - бронирования своего бизнеса
func (s *Service) GetByID(ctx context.Context, actor domain.Principal, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for %s", id, actor.Email)

	booking, err := s.getAccessible(ctx, "GetByID", actor, id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// ListMine бронирования текущего клиента во всех бизнесах
func (s *Service) ListMine(ctx context.Context, actor domain.Principal) ([]models.BookingResponse, error) {
	if actor.Email == "" {
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.GetByCustomer(ctx, actor.Email)
	if err != nil {
		s.logger.Error("ListMine: repository error for %s: %v", actor.Email, err)
		return nil, fmt.Errorf("%w: ListMine - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListMine: fetched %d bookings for %s", len(bookings), actor.Email)
	return models.FromDomainBookingList(bookings), nil
}

// List бронирования бизнеса, опционально на дату и по сотруднику (панель бизнеса)
func (s *Service) List(ctx context.Context, actor domain.Principal, code string, day *time.Time, staffID *int64) ([]models.BookingResponse, error) {
	s.logger.Info("List: business=%s, date=%v, staff=%v", code, day, staffID)

	if !actor.CanManage(code) {
		s.logger.Warn("List: %s cannot manage business=%s", actor.Email, code)
		return nil, ErrAccessDenied
	}

	filter := domain.BookingsFilter{BusinessCode: code, StaffID: staffID}
	if day != nil {
		filter.StartDate = day
		filter.EndDate = day
	}
	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for business=%s: %v", code, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainBookingList(bookings), nil
}

// ByMonth бронирования бизнеса за месяц вместе с архивными и счетчики активных по дням
func (s *Service) ByMonth(ctx context.Context, actor domain.Principal, code string, year int, month time.Month) (*models.MonthResponse, error) {
	s.logger.Info("ByMonth: business=%s, period=%04d-%02d", code, year, int(month))

	if !actor.CanManage(code) {
		s.logger.Warn("ByMonth: %s cannot manage business=%s", actor.Email, code)
		return nil, ErrAccessDenied
	}
	if month < time.January || month > time.December || year < 2000 || year > 2100 {
		return nil, fmt.Errorf("%w: invalid month %d/%d", ErrInvalidInput, int(month), year)
	}

	dates := availability.MonthDates(year, month, time.Local)
	from, to := dates[0], dates[len(dates)-1]

	// 1. Текущие бронирования из БД
	bookings, err := s.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		BusinessCode:    code,
		StartDate:       &from,
		EndDate:         &to,
		IncludeInactive: true,
	})
	if err != nil {
		s.logger.Error("ByMonth: repository error for business=%s: %v", code, err)
		return nil, fmt.Errorf("%w: ByMonth - repository error: %v", ErrInternal, err)
	}

	// 2. Архив; ошибка архива не прерывает ответ
	seen := make(map[int64]struct{}, len(bookings))
	for _, b := range bookings {
		seen[b.ID] = struct{}{}
	}
	archived, err := s.archive.ListMonth(ctx, code, year, month)
	if err != nil {
		s.logger.Warn("ByMonth: archive unavailable for business=%s: %v", code, err)
	}
	for _, b := range archived {
		if _, dup := seen[b.ID]; dup {
			continue
		}
		bookings = append(bookings, b)
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		di, dj := bookings[i].BookingDate, bookings[j].BookingDate
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return bookings[i].StartTime.Minutes() < bookings[j].StartTime.Minutes()
	})

	// 3. Счетчики только по активным бронированиям
	counters := make(map[string]int)
	total := 0
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		counters[b.BookingDate.Format(domain.DateFormat)]++
		total++
	}

	s.logger.Info("ByMonth: business=%s, %d bookings (%d active)", code, len(bookings), total)
	return &models.MonthResponse{
		ContadoresPorDia: counters,
		TotalReservas:    total,
		Reservas:         models.FromDomainBookingList(bookings),
	}, nil
}

// Receipt пишет PDF подтверждения бронирования в w
func (s *Service) Receipt(ctx context.Context, actor domain.Principal, id int64, w io.Writer) error {
	booking, err := s.getAccessible(ctx, "Receipt", actor, id)
	if err != nil {
		return err
	}

	business, err := s.businessRepo.GetByCode(ctx, booking.BusinessCode)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return ErrBusinessNotFound
		}
		return fmt.Errorf("%w: Receipt - get business: %v", ErrInternal, err)
	}

	if err := s.render(w, business, booking); err != nil {
		s.logger.Error("Receipt: render failed for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Receipt - render: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) getAccessible(ctx context.Context, op string, actor domain.Principal, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if actor.CanManage(booking.BusinessCode) {
		return booking, nil
	}
	if actor.Email != "" && actor.Email == booking.CustomerEmail {
		return booking, nil
	}

	s.logger.Warn("%s: access denied for %s to booking id=%d", op, actor.Email, id)
	return nil, ErrAccessDenied
}
