package wizard

import "errors"

// ErrLoginRequired показывается пользователю как есть
var ErrLoginRequired = errors.New("Debes iniciar sesión para realizar una reserva")

var (
	ErrNotStarted       = errors.New("wizard: not started")
	ErrWrongStep        = errors.New("wizard: action not allowed in current step")
	ErrUnknownService   = errors.New("wizard: unknown service")
	ErrUnknownStaff     = errors.New("wizard: unknown staff member")
	ErrDateNotBookable  = errors.New("wizard: date is not bookable")
	ErrSlotNotAvailable = errors.New("wizard: time is not available")
	ErrNotesTooLong     = errors.New("wizard: notes are too long")
)
