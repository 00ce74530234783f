package restore_day

import (
	"context"
	"time"

	"github.com/maxturnos/turnos-service/internal/domain"
)

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Business, error)
}

// CalendarRepository отмененные дни и восстановленные воскресенья
type CalendarRepository interface {
	RestoreDay(ctx context.Context, businessCode string, day time.Time) (bool, error)
	RestoreSunday(ctx context.Context, businessCode string, day time.Time) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Cache кэш витрины
type Cache interface {
	Delete(ctx context.Context, keys ...string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
