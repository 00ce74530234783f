package modify_booking

import (
	"fmt"

	"github.com/maxturnos/turnos-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.Date == nil && req.StartTime == nil && req.StaffID == nil {
		return fmt.Errorf("%w: nothing to change", ErrInvalidInput)
	}

	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
		}
	}

	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	return nil
}

// checkAccess клиент меняет свое бронирование, администратор любое бронирование своего бизнеса
func checkAccess(actor domain.Principal, booking *domain.Booking) error {
	if actor.CanManage(booking.BusinessCode) {
		return nil
	}
	if actor.Email != "" && actor.Email == booking.CustomerEmail {
		return nil
	}
	return ErrAccessDenied
}
