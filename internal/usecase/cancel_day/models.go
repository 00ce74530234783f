package cancel_day

import (
	"time"

	"github.com/maxturnos/turnos-service/internal/domain"
)

// Request отмена рабочего дня
type Request struct {
	Actor        domain.Principal
	BusinessCode string
	Date         time.Time
	Reason       *string
}

// Response Created=false, если день уже был отменен
type Response struct {
	Date    time.Time
	Created bool
}
