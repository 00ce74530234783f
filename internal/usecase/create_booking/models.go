package create_booking

import (
	"time"

	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Actor        domain.Principal // Клиент из токена
	BusinessCode string
	ServiceID    int64
	StaffID      int64
	Date         time.Time        // Дата бронирования (без времени)
	StartTime    types.TimeString // Время начала (например, "10:00")
	Note         *string          // Комментарий клиента, до 250 символов
}

// Response созданное бронирование
type Response struct {
	Booking *domain.Booking
}
