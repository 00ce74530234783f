package block_slots

import (
	"time"

	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/pkg/types"
)

// Request блокировка одного времени на одну или несколько дат
type Request struct {
	Actor        domain.Principal
	BusinessCode string
	Dates        []time.Time
	StartTime    types.TimeString
	StaffID      *int64 // nil = все сотрудники (General)
	Reason       *string
}

// Result итог по одной паре (дата, сотрудник)
type Result struct {
	Date    time.Time
	StaffID int64
	Created bool // false, если время уже было заблокировано
	Error   string
}

// Response частичный успех допустим: неудачные пары перечислены в Results
type Response struct {
	Results   []Result
	Succeeded int
	Failed    int
}
