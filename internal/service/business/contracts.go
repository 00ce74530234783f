package business

import (
	"context"

	"github.com/maxturnos/turnos-service/internal/domain"
)

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Business, error)
	UpdateSchedule(ctx context.Context, b *domain.Business) error
	UpdateCategories(ctx context.Context, code string, categories []string) error
	UpdateReviewOrder(ctx context.Context, code string, order domain.ReviewOrder) error
}

// ServiceRepository услуги бизнеса
type ServiceRepository interface {
	List(ctx context.Context, businessCode string) ([]*domain.Service, error)
}

// StaffRepository сотрудники бизнеса
type StaffRepository interface {
	List(ctx context.Context, businessCode string) ([]*domain.Staff, error)
}

// ReviewRepository отзывы бизнеса
type ReviewRepository interface {
	List(ctx context.Context, businessCode string, order domain.ReviewOrder, onlyApproved bool) ([]*domain.Review, error)
}

// Cache кэш витрины
type Cache interface {
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, keys ...string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
