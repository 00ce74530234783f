package block_slots

import (
	"context"

	blockSlots "github.com/maxturnos/turnos-service/internal/usecase/block_slots"
)

type BlockSlotsUseCase interface {
	Execute(ctx context.Context, req *blockSlots.Request) (*blockSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
