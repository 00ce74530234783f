package catalog

import (
	"context"

	"github.com/maxturnos/turnos-service/internal/domain"
)

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Business, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	List(ctx context.Context, businessCode string) ([]*domain.Service, error)
	GetByID(ctx context.Context, businessCode string, id int64) (*domain.Service, error)
	Create(ctx context.Context, s *domain.Service) (*domain.Service, error)
	Update(ctx context.Context, s *domain.Service) error
	Delete(ctx context.Context, businessCode string, id int64) error
	Reorder(ctx context.Context, businessCode string, ids []int64) error
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	List(ctx context.Context, businessCode string) ([]*domain.Staff, error)
	GetByID(ctx context.Context, businessCode string, id int64) (*domain.Staff, error)
	Create(ctx context.Context, s *domain.Staff) (*domain.Staff, error)
	Update(ctx context.Context, s *domain.Staff) error
	Delete(ctx context.Context, businessCode string, id int64) error
	Reorder(ctx context.Context, businessCode string, ids []int64) error
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
