package get_available_slots

import (
	"time"

	"github.com/maxturnos/turnos-service/pkg/types"
)

// Request запрос свободного времени одного сотрудника на одну дату
type Request struct {
	BusinessCode string
	Date         time.Time // Дата (без времени)
	StaffID      int64
	ServiceID    *int64 // Длительность услуги; без услуги берется шаг сетки
}

// Response свободное и занятое время
type Response struct {
	Date      time.Time
	StaffID   int64
	Closed    bool               // бизнес не работает в эту дату
	Available []types.TimeString // свободные начала
	Blocked   []types.TimeString // начала бронирований и заблокированное владельцем время
}
