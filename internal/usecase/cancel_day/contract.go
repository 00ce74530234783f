package cancel_day

import (
	"context"
	"time"

	"github.com/maxturnos/turnos-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountActiveByDay(ctx context.Context, businessCode string, from, to time.Time) (map[string]int, error)
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Business, error)
}

// CalendarRepository отмененные дни и восстановленные воскресенья
type CalendarRepository interface {
	CancelDay(ctx context.Context, businessCode string, day time.Time, reason *string) (bool, error)
	UnrestoreSunday(ctx context.Context, businessCode string, day time.Time) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Cache кэш витрины
type Cache interface {
	Delete(ctx context.Context, keys ...string) error
}

// EventPublisher публикация доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// Metrics доменные счетчики
type Metrics interface {
	IncDayCancelled(business string)
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
