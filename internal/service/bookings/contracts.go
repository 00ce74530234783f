package bookings

import (
	"context"
	"io"
	"time"

	"github.com/maxturnos/turnos-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	GetByCustomer(ctx context.Context, email string) ([]*domain.Booking, error)
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Business, error)
}

// Archive архив прошедших бронирований
type Archive interface {
	ListMonth(ctx context.Context, businessCode string, year int, month time.Month) ([]*domain.Booking, error)
}

// ReceiptRenderer формирует PDF подтверждения брони
type ReceiptRenderer func(w io.Writer, business *domain.Business, b *domain.Booking) error

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
