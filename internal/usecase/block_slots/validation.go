package block_slots

import (
	"fmt"
	"strings"

	"github.com/maxturnos/turnos-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.BusinessCode) == "" {
		return fmt.Errorf("%w: businessCode is required", ErrInvalidInput)
	}
	if len(req.Dates) == 0 {
		return fmt.Errorf("%w: at least one date is required", ErrInvalidInput)
	}
	if len(req.Dates) > domain.MaxBulkDays {
		return fmt.Errorf("%w: at most %d dates", ErrInvalidInput, domain.MaxBulkDays)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}
	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}
	if !req.Actor.CanManage(req.BusinessCode) {
		return ErrForbidden
	}
	return nil
}
