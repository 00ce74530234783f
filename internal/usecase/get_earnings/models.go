package get_earnings

import (
	"time"

	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/internal/earnings"
)

// Request отчет о доходах
type Request struct {
	Actor        domain.Principal
	BusinessCode string
	Mode         earnings.Mode
	Date         time.Time   // день, начало недели или любой день месяца
	Dates        []time.Time // только для режима "dias"
}

// Response отчет с нулями для дней без бронирований
type Response struct {
	Report earnings.Report
}
