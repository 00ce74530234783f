package get_common_slots

import (
	getCommonSlots "github.com/maxturnos/turnos-service/internal/usecase/get_common_slots"
	"github.com/maxturnos/turnos-service/pkg/types"
)

// CommonSlotsResponse пересечение свободного времени по датам/сотрудникам
type CommonSlotsResponse struct {
	General             bool     `json:"general"`
	HorariosDisponibles []string `json:"horariosDisponibles"`
	HorariosBloqueados  []string `json:"horariosBloqueados"`
	Fallidos            int      `json:"fallidos,omitempty"`
}

func FromUseCaseResponse(resp *getCommonSlots.Response) CommonSlotsResponse {
	return CommonSlotsResponse{
		General:             resp.General,
		HorariosDisponibles: toStrings(resp.Available),
		HorariosBloqueados:  toStrings(resp.Blocked),
		Fallidos:            resp.Failed,
	}
}

func toStrings(slots []types.TimeString) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out
}
