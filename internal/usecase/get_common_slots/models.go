package get_common_slots

import (
	"time"

	"github.com/maxturnos/turnos-service/pkg/types"
)

// Request общее свободное время по нескольким датам и/или всем сотрудникам
type Request struct {
	BusinessCode string
	Dates        []time.Time
	StaffID      *int64 // nil = режим General (все сотрудники)
	ServiceID    *int64
	MinOpening   *types.TimeString // нижняя граница окна; по умолчанию время открытия бизнеса
}

// Response пересечение свободного времени
type Response struct {
	General   bool
	Available []types.TimeString
	Blocked   []types.TimeString // в режиме General не заполняется
	Failed    int                // запросы (сотрудник, дата), завершившиеся ошибкой и пропущенные
}
