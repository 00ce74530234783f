package schedule

import (
	"context"
	"time"

	blockSlots "github.com/maxturnos/turnos-service/internal/api/handlers/block_slots"
	cancelDay "github.com/maxturnos/turnos-service/internal/api/handlers/cancel_day"
	cancelDayBookings "github.com/maxturnos/turnos-service/internal/api/handlers/cancel_day_bookings"
	getAvailableSlots "github.com/maxturnos/turnos-service/internal/api/handlers/get_available_slots"
	restoreDay "github.com/maxturnos/turnos-service/internal/api/handlers/restore_day"
	unblockSlots "github.com/maxturnos/turnos-service/internal/api/handlers/unblock_slots"
	"github.com/maxturnos/turnos-service/internal/integrations/turnosapi"
	bookingModels "github.com/maxturnos/turnos-service/internal/service/bookings/models"
	businessModels "github.com/maxturnos/turnos-service/internal/service/business/models"
	calendarModels "github.com/maxturnos/turnos-service/internal/service/calendar/models"
	catalogModels "github.com/maxturnos/turnos-service/internal/service/catalog/models"
)

// API вызовы REST, которые нужны странице расписания
type API interface {
	Business(ctx context.Context, code string) (*businessModels.BusinessResponse, error)
	UpdateSchedule(ctx context.Context, code string, req businessModels.UpdateScheduleRequest) (*businessModels.BusinessResponse, error)
	Staff(ctx context.Context, code string) ([]catalogModels.StaffResponse, error)
	CancelledDays(ctx context.Context, code string, from, to time.Time) (*calendarModels.DaysResponse, error)
	BookingsByMonth(ctx context.Context, code string, year int, month time.Month) (*bookingModels.MonthResponse, error)
	AvailableSlots(ctx context.Context, q turnosapi.SlotsQuery) (*getAvailableSlots.SlotsResponse, error)
	CancelDay(ctx context.Context, req cancelDay.CancelDayRequest) (*cancelDay.CancelDayResponse, error)
	RestoreDay(ctx context.Context, code string, day time.Time) (*restoreDay.RestoreDayResponse, error)
	BlockSlots(ctx context.Context, req blockSlots.SlotsRequest) (*blockSlots.SlotsResponse, error)
	UnblockSlots(ctx context.Context, req unblockSlots.SlotsRequest) (*unblockSlots.SlotsResponse, error)
	CancelDayBookings(ctx context.Context, req cancelDayBookings.CancelDayBookingsRequest) (*cancelDayBookings.CancelDayBookingsResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
