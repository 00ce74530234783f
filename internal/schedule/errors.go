package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/maxturnos/turnos-service/internal/availability"
)

var (
	ErrNotLoaded         = errors.New("schedule: page is not loaded")
	ErrNoSelection       = errors.New("schedule: no dates selected")
	ErrTooManyDates      = errors.New("schedule: too many dates selected")
	ErrIncompatibleDay   = errors.New("schedule: cannot mix cancelled and available days")
	ErrMonthHasBookings  = errors.New("schedule: month already has bookings")
	ErrSelectionLocked   = errors.New("schedule: whole month is selected")
	ErrUnknownStaff      = errors.New("schedule: unknown staff member")
	ErrInvalidTime       = errors.New("schedule: invalid time")
	ErrStaleSelection    = errors.New("schedule: selection changed while loading")
	ErrAllRequestsFailed = errors.New("schedule: every request failed")
	ErrSuperseded        = errors.New("schedule: superseded by a newer value")
	ErrNotConfirmed      = errors.New("schedule: server did not confirm the change")
)

// DayHasBookingsError отмена дня с активными бронированиями
type DayHasBookingsError struct {
	Date  time.Time
	Count int
}

func (e *DayHasBookingsError) Error() string {
	return fmt.Sprintf(
		"No se puede cancelar el %s porque tiene %d reserva(s). Cancelá primero las reservas desde la página de Reservas.",
		availability.SpanishLongDate(e.Date), e.Count,
	)
}
