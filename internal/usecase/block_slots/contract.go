package block_slots

import (
	"context"

	"github.com/maxturnos/turnos-service/internal/domain"
)

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	List(ctx context.Context, businessCode string) ([]*domain.Staff, error)
}

// CalendarRepository блокировки времени
type CalendarRepository interface {
	BlockSlot(ctx context.Context, slot *domain.BlockedSlot) (bool, error)
}

// Metrics доменные счетчики
type Metrics interface {
	IncSlotsBlocked(business string, n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
