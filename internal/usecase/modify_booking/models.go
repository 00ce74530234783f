package modify_booking

import (
	"time"

	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/pkg/types"
)

// Request перенос бронирования; незаданные поля остаются прежними
type Request struct {
	Actor     domain.Principal
	BookingID int64
	Date      *time.Time
	StartTime *types.TimeString
	StaffID   *int64
}

// Response бронирование после переноса
type Response struct {
	Booking *domain.Booking
}
