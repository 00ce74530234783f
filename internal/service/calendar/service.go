package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/maxturnos/turnos-service/internal/availability"
	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/internal/service/calendar/models"
)

// maxRangeDays ограничение на диапазон одного запроса отмененных дней
const maxRangeDays = 366

// Service чтение календаря бизнеса. Публичный: клиенту нужны эти данные для расчета доступных дат
type Service struct {
	calendarRepo CalendarRepository
	logger       Logger
	now          func() time.Time
}

// NewService создает новый экземпляр сервиса календаря
func NewService(calendarRepo CalendarRepository, logger Logger) *Service {
	return &Service{calendarRepo: calendarRepo, logger: logger, now: time.Now}
}

// ListDays отмененные дни в диапазоне [from, to] и все открытые воскресенья.
// Без from берется сегодня, без to - горизонт бронирования.
func (s *Service) ListDays(ctx context.Context, code string, from, to *time.Time) (*models.DaysResponse, error) {
	start := availability.StartOfDay(s.now())
	if from != nil {
		start = availability.StartOfDay(*from)
	}
	end := availability.AddDays(start, domain.DefaultBookingHorizonDays)
	if to != nil {
		end = availability.StartOfDay(*to)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: hasta is before desde", ErrInvalidRange)
	}
	if end.Sub(start) > maxRangeDays*24*time.Hour {
		return nil, fmt.Errorf("%w: range exceeds %d days", ErrInvalidRange, maxRangeDays)
	}

	cancelled, err := s.calendarRepo.ListCancelledDays(ctx, code, start, end)
	if err != nil {
		s.logger.Error("ListDays: cancelled days for %s: %v", code, err)
		return nil, fmt.Errorf("%w: ListDays - cancelled days: %v", ErrInternal, err)
	}
	restored, err := s.calendarRepo.ListRestoredSundays(ctx, code)
	if err != nil {
		s.logger.Error("ListDays: restored sundays for %s: %v", code, err)
		return nil, fmt.Errorf("%w: ListDays - restored sundays: %v", ErrInternal, err)
	}

	resp := &models.DaysResponse{
		DiasCancelados:      make([]models.CancelledDayResponse, 0, len(cancelled)),
		DomingosRestaurados: make([]string, 0, len(restored)),
	}
	for _, c := range cancelled {
		resp.DiasCancelados = append(resp.DiasCancelados, models.CancelledDayResponse{
			Fecha:  availability.FormatLocalDate(c.Day),
			Motivo: c.Reason,
		})
	}
	for _, d := range restored {
		resp.DomingosRestaurados = append(resp.DomingosRestaurados, availability.FormatLocalDate(d))
	}

	s.logger.Info("ListDays: business=%s, %d cancelled, %d restored sundays", code, len(cancelled), len(restored))
	return resp, nil
}

// ListBlocked заблокированное время на дату (всех сотрудников или одного)
func (s *Service) ListBlocked(ctx context.Context, code string, day time.Time, staffID *int64) ([]models.BlockedSlotResponse, error) {
	slots, err := s.calendarRepo.ListBlockedSlots(ctx, code, day, staffID)
	if err != nil {
		s.logger.Error("ListBlocked: business=%s, date=%s: %v", code, availability.FormatLocalDate(day), err)
		return nil, fmt.Errorf("%w: ListBlocked - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainBlockedSlots(slots), nil
}
