package restore_day

import (
	"context"

	restoreDay "github.com/maxturnos/turnos-service/internal/usecase/restore_day"
)

type RestoreDayUseCase interface {
	Execute(ctx context.Context, req *restoreDay.Request) (*restoreDay.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
