package restore_day

import (
	"fmt"
	"strings"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.BusinessCode) == "" {
		return fmt.Errorf("%w: businessCode is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !req.Actor.CanManage(req.BusinessCode) {
		return ErrForbidden
	}
	return nil
}
