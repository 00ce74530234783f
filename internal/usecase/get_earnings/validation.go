package get_earnings

import (
	"fmt"
	"strings"

	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/internal/earnings"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.BusinessCode) == "" {
		return fmt.Errorf("%w: businessCode is required", ErrInvalidInput)
	}
	if !req.Mode.IsValid() {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, req.Mode)
	}
	if req.Mode == earnings.ModeDays {
		if len(req.Dates) == 0 || len(req.Dates) > domain.MaxBulkDays {
			return fmt.Errorf("%w: between 1 and %d dates required", ErrInvalidInput, domain.MaxBulkDays)
		}
	} else if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !req.Actor.CanManage(req.BusinessCode) {
		return ErrForbidden
	}
	return nil
}

// buildRange диапазон дат по режиму
func buildRange(req *Request) earnings.Range {
	switch req.Mode {
	case earnings.ModeDays:
		return earnings.Days(req.Dates)
	case earnings.ModeWeek:
		return earnings.Week(req.Date)
	case earnings.ModeMonth:
		return earnings.Month(req.Date.Year(), req.Date.Month(), req.Date.Location())
	default:
		return earnings.Day(req.Date)
	}
}
