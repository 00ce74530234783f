package domain

import (
	"time"

	"github.com/maxturnos/turnos-service/pkg/types"
)

// BookingStatus статус бронирования (reserva)
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking бронирование клиента.
// Данные услуги и сотрудника копируются в момент бронирования, а не join-ятся при чтении.
type Booking struct {
	ID           int64
	BusinessCode string
	BookingDate  time.Time
	StartTime    types.TimeString
	Status       BookingStatus

	// Снимок услуги
	ServiceID       int64
	ServiceName     string
	ServiceDuration string // "30 min", "1:30"
	ServicePrice    string // "$2500"
	DurationMinutes int

	// Снимок сотрудника
	StaffID   int64
	StaffName string

	CustomerEmail string
	CustomerName  *string
	Note          *string

	CancellationNote *string
	CancelledAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// CanBeUpdated returns true if the booking date/time can be changed
func (b *Booking) CanBeUpdated() bool {
	return b.Status == StatusConfirmed
}

// EndTime время окончания бронирования
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// BookingsFilter фильтр для получения бронирований бизнеса
type BookingsFilter struct {
	BusinessCode    string     // Обязательный параметр
	StaffID         *int64     // Фильтр по сотруднику (опционально)
	StartDate       *time.Time // Начало периода (опционально)
	EndDate         *time.Time // Конец периода (опционально)
	CustomerEmail   *string    // Бронирования конкретного клиента (опционально)
	IncludeInactive bool       // Включать ли отменённые бронирования
}
