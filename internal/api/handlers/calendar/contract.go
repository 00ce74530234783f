package calendar

import (
	"context"
	"time"

	"github.com/maxturnos/turnos-service/internal/service/calendar/models"
)

type CalendarService interface {
	ListDays(ctx context.Context, code string, from, to *time.Time) (*models.DaysResponse, error)
	ListBlocked(ctx context.Context, code string, day time.Time, staffID *int64) ([]models.BlockedSlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
