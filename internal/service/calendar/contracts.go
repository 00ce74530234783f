package calendar

import (
	"context"
	"time"

	"github.com/maxturnos/turnos-service/internal/domain"
)

// CalendarRepository отмененные дни, открытые воскресенья и блокировки
type CalendarRepository interface {
	ListCancelledDays(ctx context.Context, businessCode string, from, to time.Time) ([]*domain.CancelledDay, error)
	ListRestoredSundays(ctx context.Context, businessCode string) ([]time.Time, error)
	ListBlockedSlots(ctx context.Context, businessCode string, day time.Time, staffID *int64) ([]*domain.BlockedSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
