package superadmin

import "errors"

var (
	// ErrForbidden возвращается, когда пользователь не суперадмин
	ErrForbidden = errors.New("superadmin: forbidden")

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("superadmin: business not found")

	// ErrDuplicateCode возвращается, когда бизнес с таким кодом уже есть
	ErrDuplicateCode = errors.New("superadmin: business code already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("superadmin: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("superadmin: internal error")
)
