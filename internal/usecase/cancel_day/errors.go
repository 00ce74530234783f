package cancel_day

import (
	"errors"
	"fmt"
	"time"

	"github.com/maxturnos/turnos-service/internal/domain"
)

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("cancel_day: business not found")

	// ErrForbidden возвращается, когда пользователь не управляет бизнесом
	ErrForbidden = errors.New("cancel_day: forbidden")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_day: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_day: internal error")
)

// DayHasBookingsError день нельзя отменить, пока в нем есть активные бронирования
type DayHasBookingsError struct {
	Date  time.Time
	Count int
}

func (e *DayHasBookingsError) Error() string {
	return fmt.Sprintf("No se puede cancelar el %s: tiene %d reserva(s) activa(s). Cancelá primero las reservas desde la sección Reservas.",
		e.Date.Format(domain.DateFormat), e.Count)
}
