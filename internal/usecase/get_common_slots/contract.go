package get_common_slots

import (
	"context"

	"github.com/maxturnos/turnos-service/internal/domain"
	getAvailableSlots "github.com/maxturnos/turnos-service/internal/usecase/get_available_slots"
)

// AvailableSlotsUseCase свободное время одного сотрудника на одну дату
type AvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Business, error)
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	List(ctx context.Context, businessCode string) ([]*domain.Staff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
