package domain

import (
	"time"

	"github.com/maxturnos/turnos-service/pkg/types"
)

// CancelledDay день, отменённый владельцем
type CancelledDay struct {
	ID           int64
	BusinessCode string
	Day          time.Time
	Reason       *string
	CreatedAt    time.Time
}

// BlockedSlot заблокированное время конкретного сотрудника
type BlockedSlot struct {
	ID           int64
	BusinessCode string
	Day          time.Time
	StartTime    types.TimeString
	StaffID      int64
	Reason       *string
	CreatedAt    time.Time
}
