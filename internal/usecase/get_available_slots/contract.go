package get_available_slots

import (
	"context"
	"time"

	"github.com/maxturnos/turnos-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Business, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, businessCode string, id int64) (*domain.Service, error)
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetByID(ctx context.Context, businessCode string, id int64) (*domain.Staff, error)
}

// CalendarRepository отмененные дни, восстановленные воскресенья и блокировки
type CalendarRepository interface {
	ListCancelledDays(ctx context.Context, businessCode string, from, to time.Time) ([]*domain.CancelledDay, error)
	ListRestoredSundays(ctx context.Context, businessCode string) ([]time.Time, error)
	ListBlockedSlots(ctx context.Context, businessCode string, day time.Time, staffID *int64) ([]*domain.BlockedSlot, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
