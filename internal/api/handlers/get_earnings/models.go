package get_earnings

import (
	"github.com/maxturnos/turnos-service/internal/earnings"
)

type DayDTO struct {
	Fecha    string  `json:"fecha"`
	Total    float64 `json:"total"`
	Reservas int     `json:"reservas"`
}

// EarningsResponse отчет о доходах; дни без бронирований присутствуют с нулем
type EarningsResponse struct {
	Modo            string   `json:"modo"`
	Total           float64  `json:"total"`
	TotalFormateado string   `json:"totalFormateado"`
	Reservas        int      `json:"reservas"`
	Dias            []DayDTO `json:"dias"`
	Detalle         []string `json:"detalle"`
}

func FromReport(report earnings.Report) EarningsResponse {
	resp := EarningsResponse{
		Modo:            string(report.Mode),
		Total:           report.Total,
		TotalFormateado: "$" + earnings.FormatAmount(report.Total),
		Reservas:        report.Count,
		Dias:            make([]DayDTO, 0, len(report.Days)),
		Detalle:         earnings.Breakdown(report),
	}
	for _, d := range report.Days {
		resp.Dias = append(resp.Dias, DayDTO{Fecha: d.Key, Total: d.Total, Reservas: d.Bookings})
	}
	return resp
}
