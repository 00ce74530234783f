package create_booking

import (
	"fmt"

	"github.com/maxturnos/turnos-service/internal/api/handlers"
	"github.com/maxturnos/turnos-service/internal/domain"
	createBooking "github.com/maxturnos/turnos-service/internal/usecase/create_booking"
	"github.com/maxturnos/turnos-service/pkg/types"
)

// RefDTO ссылка на услугу или сотрудника; снимок названий делает сервер
type RefDTO struct {
	ID int64 `json:"id"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Establecimiento string  `json:"establecimiento"`
	Fecha           string  `json:"fecha"` // "2025-11-05"
	Hora            string  `json:"hora"`  // "10:00"
	Servicio        RefDTO  `json:"servicio"`
	Profesional     RefDTO  `json:"profesional"`
	Notas           *string `json:"notas,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Principal) (*createBooking.Request, error) {
	if r.Establecimiento == "" {
		return nil, fmt.Errorf("establecimiento is required")
	}
	date, err := handlers.ParseDate(r.Fecha)
	if err != nil {
		return nil, err
	}
	start, err := types.NewTimeStringFromString(r.Hora)
	if err != nil {
		return nil, err
	}
	return &createBooking.Request{
		Actor:        actor,
		BusinessCode: r.Establecimiento,
		ServiceID:    r.Servicio.ID,
		StaffID:      r.Profesional.ID,
		Date:         date,
		StartTime:    start,
		Note:         r.Notas,
	}, nil
}
