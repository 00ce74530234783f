package calendar

import "errors"

var (
	// ErrInvalidRange возвращается при некорректном диапазоне дат
	ErrInvalidRange = errors.New("calendar: invalid date range")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("calendar: internal error")
)
