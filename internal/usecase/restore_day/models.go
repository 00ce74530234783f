package restore_day

import (
	"time"

	"github.com/maxturnos/turnos-service/internal/domain"
)

// Request восстановление отмененного дня
type Request struct {
	Actor        domain.Principal
	BusinessCode string
	Date         time.Time
}

// Response что именно изменилось
type Response struct {
	Date           time.Time
	Removed        bool // удалена запись об отмене
	SundayRestored bool // воскресенье открыто явно
}
