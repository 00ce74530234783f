package unblock_slots

import (
	"context"
	"time"

	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/pkg/types"
)

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	List(ctx context.Context, businessCode string) ([]*domain.Staff, error)
}

// CalendarRepository блокировки времени
type CalendarRepository interface {
	UnblockSlot(ctx context.Context, businessCode string, day time.Time, start types.TimeString, staffID int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
