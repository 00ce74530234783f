package catalog

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("catalog: business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("catalog: service not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("catalog: staff not found")

	// ErrUnknownCategory возвращается, когда категории нет в списке бизнеса
	ErrUnknownCategory = errors.New("catalog: category does not belong to business")

	// ErrInvalidAvatar возвращается, когда аватар не удалось декодировать
	ErrInvalidAvatar = errors.New("catalog: invalid avatar image")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("catalog: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("catalog: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
