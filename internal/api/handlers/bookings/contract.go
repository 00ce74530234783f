package bookings

import (
	"context"
	"io"
	"time"

	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/internal/service/bookings/models"
)

type BookingsService interface {
	GetByID(ctx context.Context, actor domain.Principal, id int64) (*models.BookingResponse, error)
	ListMine(ctx context.Context, actor domain.Principal) ([]models.BookingResponse, error)
	List(ctx context.Context, actor domain.Principal, code string, day *time.Time, staffID *int64) ([]models.BookingResponse, error)
	ByMonth(ctx context.Context, actor domain.Principal, code string, year int, month time.Month) (*models.MonthResponse, error)
	Receipt(ctx context.Context, actor domain.Principal, id int64, w io.Writer) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
