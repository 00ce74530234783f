package get_common_slots

import (
	"fmt"

	"github.com/maxturnos/turnos-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BusinessCode == "" {
		return fmt.Errorf("%w: business code is required", ErrInvalidInput)
	}

	if len(req.Dates) == 0 {
		return fmt.Errorf("%w: at least one date is required", ErrInvalidInput)
	}

	if len(req.Dates) > domain.MaxBulkDays {
		return fmt.Errorf("%w: at most %d dates", ErrInvalidInput, domain.MaxBulkDays)
	}

	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	return nil
}
