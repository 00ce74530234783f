package unblock_slots

import (
	"time"

	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/pkg/types"
)

// Request снятие блокировки времени на одной или нескольких датах
type Request struct {
	Actor        domain.Principal
	BusinessCode string
	Dates        []time.Time
	StartTime    types.TimeString
	StaffID      *int64 // nil = все сотрудники (General)
}

// Result итог по одной паре (дата, сотрудник)
type Result struct {
	Date    time.Time
	StaffID int64
	Removed bool // false, если блокировки не было
	Error   string
}

// Response частичный успех допустим
type Response struct {
	Results   []Result
	Succeeded int
	Failed    int
}
