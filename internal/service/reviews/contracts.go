package reviews

import (
	"context"
	"time"

	"github.com/maxturnos/turnos-service/internal/domain"
)

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	List(ctx context.Context, businessCode string, order domain.ReviewOrder, onlyApproved bool) ([]*domain.Review, error)
	Moderate(ctx context.Context, businessCode string, id int64, approved *bool) error
	Delete(ctx context.Context, businessCode string, id int64) error
	PurgeRejected(ctx context.Context, before time.Time) (int64, error)
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Business, error)
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
