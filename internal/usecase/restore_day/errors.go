package restore_day

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("restore_day: business not found")

	// ErrForbidden возвращается, когда пользователь не управляет бизнесом
	ErrForbidden = errors.New("restore_day: forbidden")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("restore_day: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("restore_day: internal error")
)
