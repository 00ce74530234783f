package cancel_day_bookings

import (
	"context"

	cancelDayBookings "github.com/maxturnos/turnos-service/internal/usecase/cancel_day_bookings"
)

type CancelDayBookingsUseCase interface {
	Execute(ctx context.Context, req *cancelDayBookings.Request) (*cancelDayBookings.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
