package models

import (
	"fmt"
	"time"

	"github.com/maxturnos/turnos-service/internal/availability"
	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/pkg/types"
)

// ServiceSnapshot данные услуги на момент бронирования
type ServiceSnapshot struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Duration string `json:"duration"`
	Price    string `json:"price"`
}

// StaffSnapshot данные сотрудника на момент бронирования
type StaffSnapshot struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID               int64           `json:"id"`
	Establecimiento  string          `json:"establecimiento"`
	Fecha            string          `json:"fecha"` // "2025-11-05"
	Hora             string          `json:"hora"`  // "10:00"
	Servicio         ServiceSnapshot `json:"servicio"`
	Profesional      StaffSnapshot   `json:"profesional"`
	DuracionMinutos  int             `json:"duracionMinutos"`
	Notas            *string         `json:"notas,omitempty"`
	UsuarioEmail     string          `json:"usuarioEmail"`
	UsuarioNombre    *string         `json:"usuarioNombre,omitempty"`
	Estado           string          `json:"estado"`
	NotaCancelacion  *string         `json:"notaCancelacion,omitempty"`
	FechaCancelacion *string         `json:"fechaCancelacion,omitempty"` // ISO 8601
	FechaCreacion    time.Time       `json:"fechaCreacion"`
}

// MonthResponse бронирования бизнеса за месяц
type MonthResponse struct {
	ContadoresPorDia map[string]int    `json:"contadoresPorDia"`
	TotalReservas    int               `json:"totalReservas"`
	Reservas         []BookingResponse `json:"reservas"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		Establecimiento: b.BusinessCode,
		Fecha:           b.BookingDate.Format(domain.DateFormat),
		Hora:            b.StartTime.String(),
		Servicio: ServiceSnapshot{
			ID:       b.ServiceID,
			Name:     b.ServiceName,
			Duration: b.ServiceDuration,
			Price:    b.ServicePrice,
		},
		Profesional:     StaffSnapshot{ID: b.StaffID, Name: b.StaffName},
		DuracionMinutos: b.DurationMinutes,
		Notas:           b.Note,
		UsuarioEmail:    b.CustomerEmail,
		UsuarioNombre:   b.CustomerName,
		Estado:          string(b.Status),
		NotaCancelacion: b.CancellationNote,
		FechaCreacion:   b.CreatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.FechaCancelacion = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) []BookingResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		if resp := FromDomainBooking(b); resp != nil {
			result = append(result, *resp)
		}
	}
	return result
}

// ToDomainBooking обратная конвертация ответа сервера (клиентские отчеты)
func ToDomainBooking(r BookingResponse) (*domain.Booking, error) {
	day, ok := availability.ParseLocalDate(r.Fecha)
	if !ok {
		return nil, fmt.Errorf("booking %d: invalid fecha %q", r.ID, r.Fecha)
	}
	start, err := types.NewTimeStringFromString(r.Hora)
	if err != nil {
		return nil, fmt.Errorf("booking %d: %w", r.ID, err)
	}
	return &domain.Booking{
		ID:               r.ID,
		BusinessCode:     r.Establecimiento,
		BookingDate:      day,
		StartTime:        start,
		Status:           domain.BookingStatus(r.Estado),
		ServiceID:        r.Servicio.ID,
		ServiceName:      r.Servicio.Name,
		ServiceDuration:  r.Servicio.Duration,
		ServicePrice:     r.Servicio.Price,
		DurationMinutes:  r.DuracionMinutos,
		StaffID:          r.Profesional.ID,
		StaffName:        r.Profesional.Name,
		CustomerEmail:    r.UsuarioEmail,
		CustomerName:     r.UsuarioNombre,
		Note:             r.Notas,
		CancellationNote: r.NotaCancelacion,
		CreatedAt:        r.FechaCreacion,
	}, nil
}
