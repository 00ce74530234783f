package unblock_slots

import (
	"fmt"
	"time"

	"github.com/maxturnos/turnos-service/internal/api/handlers"
	"github.com/maxturnos/turnos-service/internal/domain"
	unblockSlots "github.com/maxturnos/turnos-service/internal/usecase/unblock_slots"
	"github.com/maxturnos/turnos-service/pkg/types"
)

// SlotsRequest без profesionalId действие применяется ко всем сотрудникам
type SlotsRequest struct {
	Establecimiento string   `json:"establecimiento"`
	Fechas          []string `json:"fechas"`
	Hora            string   `json:"hora"`
	ProfesionalID   *int64   `json:"profesionalId,omitempty"`
}

func (r *SlotsRequest) ToUseCaseRequest(actor domain.Principal) (*unblockSlots.Request, error) {
	if r.Establecimiento == "" || len(r.Fechas) == 0 {
		return nil, fmt.Errorf("establecimiento and fechas are required")
	}
	dates := make([]time.Time, 0, len(r.Fechas))
	for _, raw := range r.Fechas {
		d, err := handlers.ParseDate(raw)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	start, err := types.NewTimeStringFromString(r.Hora)
	if err != nil {
		return nil, err
	}
	return &unblockSlots.Request{
		Actor:        actor,
		BusinessCode: r.Establecimiento,
		Dates:        dates,
		StartTime:    start,
		StaffID:      r.ProfesionalID,
	}, nil
}

type ResultDTO struct {
	Fecha         string `json:"fecha"`
	ProfesionalID int64  `json:"profesionalId"`
	Eliminado     bool   `json:"eliminado"`
	Error         string `json:"error,omitempty"`
}

type SlotsResponse struct {
	Exitosos   int         `json:"exitosos"`
	Fallidos   int         `json:"fallidos"`
	Resultados []ResultDTO `json:"resultados"`
}

func FromUseCaseResponse(resp *unblockSlots.Response) SlotsResponse {
	out := SlotsResponse{
		Exitosos:   resp.Succeeded,
		Fallidos:   resp.Failed,
		Resultados: make([]ResultDTO, 0, len(resp.Results)),
	}
	for _, r := range resp.Results {
		out.Resultados = append(out.Resultados, ResultDTO{
			Fecha:         r.Date.Format(domain.DateFormat),
			ProfesionalID: r.StaffID,
			Eliminado:     r.Removed,
			Error:         r.Error,
		})
	}
	return out
}
