package auth

import "errors"

var (
	// ErrEmailTaken возвращается при регистрации занятого email
	ErrEmailTaken = errors.New("auth: email already registered")

	// ErrInvalidCredentials возвращается при неверном email или пароле
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrBusinessNotFound администратор без существующего бизнеса
	ErrBusinessNotFound = errors.New("auth: business not found for admin")

	// ErrInvalidToken возвращается при невалидном или просроченном токене
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("auth: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("auth: internal error")
)
