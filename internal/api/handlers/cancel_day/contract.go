package cancel_day

import (
	"context"

	cancelDay "github.com/maxturnos/turnos-service/internal/usecase/cancel_day"
)

type CancelDayUseCase interface {
	Execute(ctx context.Context, req *cancelDay.Request) (*cancelDay.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
