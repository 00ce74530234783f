package cancel_day_bookings

import "errors"

var (
	// ErrForbidden возвращается, когда пользователь не управляет бизнесом
	ErrForbidden = errors.New("cancel_day_bookings: forbidden")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_day_bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_day_bookings: internal error")
)
