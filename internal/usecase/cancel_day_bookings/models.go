package cancel_day_bookings

import (
	"time"

	"github.com/maxturnos/turnos-service/internal/domain"
)

// Request отмена всех активных бронирований даты
type Request struct {
	Actor        domain.Principal
	BusinessCode string
	Date         time.Time
	Note         *string
}

// Result итог по одному бронированию
type Result struct {
	BookingID int64
	Cancelled bool
	Error     string
}

// Response результаты по каждому бронированию
type Response struct {
	Results   []Result
	Cancelled int
	Failed    int
}
