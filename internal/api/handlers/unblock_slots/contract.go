package unblock_slots

import (
	"context"

	unblockSlots "github.com/maxturnos/turnos-service/internal/usecase/unblock_slots"
)

type UnblockSlotsUseCase interface {
	Execute(ctx context.Context, req *unblockSlots.Request) (*unblockSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
