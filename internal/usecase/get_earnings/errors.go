package get_earnings

import "errors"

var (
	// ErrForbidden возвращается, когда пользователь не управляет бизнесом
	ErrForbidden = errors.New("get_earnings: forbidden")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_earnings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_earnings: internal error")
)
