package turnosapi

import (
	"errors"
	"fmt"
)

var (
	// ErrBackendUnreachable сервер не ответил (соединение, DNS, таймаут)
	ErrBackendUnreachable = errors.New("turnosapi: backend unreachable")

	// ErrBusinessNotFound администратор вошел, но его бизнес не создан
	ErrBusinessNotFound = errors.New("turnosapi: business not found for admin")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("turnosapi: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервера
	ErrInvalidResponse = errors.New("turnosapi: invalid response")
)

// UnreachableError сообщение для пользователя указывает адрес API из конфигурации
type UnreachableError struct {
	BaseURL string
	Err     error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("No se pudo conectar al servidor. Verificá que el backend esté corriendo en %s", e.BaseURL)
}

func (e *UnreachableError) Unwrap() []error { return []error{ErrBackendUnreachable, e.Err} }

// APIError ошибка, о которой сообщил сервер; Message показывается пользователю как есть
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// BusinessNotFoundError ответ входа администратора без бизнеса
type BusinessNotFoundError struct {
	Message      string
	Email        string
	BusinessName string
}

func (e *BusinessNotFoundError) Error() string { return e.Message }

func (e *BusinessNotFoundError) Unwrap() error { return ErrBusinessNotFound }

// StatusOf HTTP статус ошибки сервера; 0, если ошибка не от сервера
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
