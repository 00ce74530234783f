package get_earnings

import (
	"context"

	getEarnings "github.com/maxturnos/turnos-service/internal/usecase/get_earnings"
)

type GetEarningsUseCase interface {
	Execute(ctx context.Context, req *getEarnings.Request) (*getEarnings.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
