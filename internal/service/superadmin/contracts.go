package superadmin

import (
	"context"

	"github.com/maxturnos/turnos-service/internal/domain"
)

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	Create(ctx context.Context, b *domain.Business) (*domain.Business, error)
	GetByCode(ctx context.Context, code string) (*domain.Business, error)
	List(ctx context.Context) ([]*domain.Business, error)
	UpdateProfile(ctx context.Context, b *domain.Business) error
	Delete(ctx context.Context, code string) error
}

// ServiceRepository создание стартовых услуг
type ServiceRepository interface {
	Create(ctx context.Context, s *domain.Service) (*domain.Service, error)
}

// StaffRepository создание стартовых сотрудников
type StaffRepository interface {
	Create(ctx context.Context, s *domain.Staff) (*domain.Staff, error)
}

// UserRepository привязка владельца к бизнесу
type UserRepository interface {
	AttachBusiness(ctx context.Context, email, businessCode, businessName string) error
}

// Template стартовый каталог нового бизнеса
type Template interface {
	ApplyTo(b *domain.Business)
	ServicesFor(businessCode string) []*domain.Service
	StaffFor(businessCode string) []*domain.Staff
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
