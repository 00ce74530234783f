package wizard

import (
	"context"
	"time"

	createBooking "github.com/maxturnos/turnos-service/internal/api/handlers/create_booking"
	getAvailableSlots "github.com/maxturnos/turnos-service/internal/api/handlers/get_available_slots"
	"github.com/maxturnos/turnos-service/internal/integrations/turnosapi"
	bookingModels "github.com/maxturnos/turnos-service/internal/service/bookings/models"
	businessModels "github.com/maxturnos/turnos-service/internal/service/business/models"
	calendarModels "github.com/maxturnos/turnos-service/internal/service/calendar/models"
	catalogModels "github.com/maxturnos/turnos-service/internal/service/catalog/models"
	"github.com/maxturnos/turnos-service/internal/session"
)

// Catalog данные витрины, обычно из storefront.Cache
type Catalog interface {
	Business(ctx context.Context, code string) (*businessModels.BusinessResponse, error)
	Services(ctx context.Context, code string) ([]catalogModels.ServiceResponse, error)
	Staff(ctx context.Context, code string) ([]catalogModels.StaffResponse, error)
}

// API вызовы REST без кеша
type API interface {
	CancelledDays(ctx context.Context, code string, from, to time.Time) (*calendarModels.DaysResponse, error)
	AvailableSlots(ctx context.Context, q turnosapi.SlotsQuery) (*getAvailableSlots.SlotsResponse, error)
	CreateBooking(ctx context.Context, req createBooking.CreateBookingRequest) (*bookingModels.BookingResponse, error)
}

// Sessions источник текущего пользователя
type Sessions interface {
	Load() (*session.Session, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
