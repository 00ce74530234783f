package modify_booking

import (
	"fmt"

	"github.com/maxturnos/turnos-service/internal/api/handlers"
	"github.com/maxturnos/turnos-service/internal/domain"
	modifyBooking "github.com/maxturnos/turnos-service/internal/usecase/modify_booking"
	"github.com/maxturnos/turnos-service/pkg/types"
)

type StaffRef struct {
	ID int64 `json:"id"`
}

// ModifyBookingRequest перенос на новую дату/время, сотрудник опционален
type ModifyBookingRequest struct {
	Fecha       string    `json:"fecha"`
	Hora        string    `json:"hora"`
	Profesional *StaffRef `json:"profesional,omitempty"`
}

func (r *ModifyBookingRequest) ToUseCaseRequest(actor domain.Principal, id int64) (*modifyBooking.Request, error) {
	if r.Fecha == "" || r.Hora == "" {
		return nil, fmt.Errorf("fecha and hora are required")
	}
	date, err := handlers.ParseDate(r.Fecha)
	if err != nil {
		return nil, err
	}
	start, err := types.NewTimeStringFromString(r.Hora)
	if err != nil {
		return nil, err
	}

	req := &modifyBooking.Request{
		Actor:     actor,
		BookingID: id,
		Date:      &date,
		StartTime: &start,
	}
	if r.Profesional != nil && r.Profesional.ID > 0 {
		req.StaffID = &r.Profesional.ID
	}
	return req, nil
}
