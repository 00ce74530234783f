package cancel_booking

import (
	"fmt"
	"unicode/utf8"

	"github.com/maxturnos/turnos-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.Note != nil && utf8.RuneCountInString(*req.Note) > domain.MaxCancellationNoteLen {
		return fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, domain.MaxCancellationNoteLen)
	}
	return nil
}
