package reviews

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("reviews: business not found")

	// ErrReviewNotFound возвращается, когда отзыв не найден
	ErrReviewNotFound = errors.New("reviews: review not found")

	// ErrLoginRequired возвращается, когда отзыв оставляет аноним
	ErrLoginRequired = errors.New("reviews: login required")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("reviews: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reviews: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reviews: internal error")
)
