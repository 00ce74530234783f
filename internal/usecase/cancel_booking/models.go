package cancel_booking

import "github.com/maxturnos/turnos-service/internal/domain"

// Request отмена бронирования
type Request struct {
	Actor     domain.Principal
	BookingID int64
	Note      *string // причина отмены, видна клиенту
}

// Response результат отмены
type Response struct {
	Booking *domain.Booking
}
