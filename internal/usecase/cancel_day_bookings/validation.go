package cancel_day_bookings

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/maxturnos/turnos-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.BusinessCode) == "" {
		return fmt.Errorf("%w: businessCode is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.Note != nil && utf8.RuneCountInString(*req.Note) > domain.MaxCancellationNoteLen {
		return fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, domain.MaxCancellationNoteLen)
	}
	if !req.Actor.CanManage(req.BusinessCode) {
		return ErrForbidden
	}
	return nil
}
