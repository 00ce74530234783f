package cancel_day_bookings

import cancelDayBookings "github.com/maxturnos/turnos-service/internal/usecase/cancel_day_bookings"

type CancelDayBookingsRequest struct {
	Establecimiento string  `json:"establecimiento"`
	Fecha           string  `json:"fecha"`
	Nota            *string `json:"nota,omitempty"`
}

type ResultDTO struct {
	ID        int64  `json:"id"`
	Cancelada bool   `json:"cancelada"`
	Error     string `json:"error,omitempty"`
}

type CancelDayBookingsResponse struct {
	Canceladas int         `json:"canceladas"`
	Fallidas   int         `json:"fallidas"`
	Resultados []ResultDTO `json:"resultados"`
}

func FromUseCaseResponse(resp *cancelDayBookings.Response) CancelDayBookingsResponse {
	out := CancelDayBookingsResponse{
		Canceladas: resp.Cancelled,
		Fallidas:   resp.Failed,
		Resultados: make([]ResultDTO, 0, len(resp.Results)),
	}
	for _, r := range resp.Results {
		out.Resultados = append(out.Resultados, ResultDTO{ID: r.BookingID, Cancelada: r.Cancelled, Error: r.Error})
	}
	return out
}
