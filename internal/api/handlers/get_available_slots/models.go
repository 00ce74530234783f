package get_available_slots

import (
	"github.com/maxturnos/turnos-service/internal/domain"
	getAvailableSlots "github.com/maxturnos/turnos-service/internal/usecase/get_available_slots"
	"github.com/maxturnos/turnos-service/pkg/types"
)

// SlotsResponse свободное и занятое время сотрудника на дату
type SlotsResponse struct {
	Fecha               string   `json:"fecha"`
	ProfesionalID       int64    `json:"profesionalId"`
	Cerrado             bool     `json:"cerrado"`
	HorariosDisponibles []string `json:"horariosDisponibles"`
	HorariosBloqueados  []string `json:"horariosBloqueados"`
}

func FromUseCaseResponse(resp *getAvailableSlots.Response) SlotsResponse {
	return SlotsResponse{
		Fecha:               resp.Date.Format(domain.DateFormat),
		ProfesionalID:       resp.StaffID,
		Cerrado:             resp.Closed,
		HorariosDisponibles: toStrings(resp.Available),
		HorariosBloqueados:  toStrings(resp.Blocked),
	}
}

func toStrings(slots []types.TimeString) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out
}
