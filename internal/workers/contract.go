package workers

import (
	"context"
	"time"

	"github.com/maxturnos/turnos-service/internal/domain"
)

// ReviewPurger удаление отклоненных отзывов
type ReviewPurger interface {
	PurgeRejected(ctx context.Context, now time.Time) (int64, error)
}

// BookingSource прошедшие бронирования в основной БД
type BookingSource interface {
	ListBefore(ctx context.Context, day time.Time, limit int) ([]*domain.Booking, error)
	DeleteByIDs(ctx context.Context, ids []int64) error
}

// Archive долговременное хранилище прошедших бронирований
type Archive interface {
	Store(ctx context.Context, bookings []*domain.Booking) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
