package create_booking

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/maxturnos/turnos-service/internal/availability"
	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Actor.Email == "" {
		return ErrLoginRequired
	}

	if req.BusinessCode == "" {
		return fmt.Errorf("%w: business code is required", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}

	if req.Note != nil && utf8.RuneCountInString(*req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	return nil
}

// validateDate дата не в прошлом и не дальше горизонта
func validateDate(engine *availability.Engine, date time.Time, horizonDays int) error {
	if engine.IsPast(date) {
		return ErrInvalidDate
	}

	maxDate := availability.AddDays(availability.StartOfDay(engine.Now()), horizonDays)
	if availability.StartOfDay(date).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, horizonDays)
	}

	if !engine.IsBusinessOpenOn(date) {
		return ErrBusinessClosed
	}

	return nil
}

// checkSlot проверяет, что start входит в свободное время сотрудника
func checkSlot(start types.TimeString, in availability.DayInput) error {
	switch availability.CheckSlot(start.String(), in) {
	case availability.SlotFree:
		return nil
	case availability.SlotTaken:
		return ErrSlotNotAvailable
	default:
		return ErrInvalidTimeSlot
	}
}
