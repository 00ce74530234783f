package models

import "github.com/maxturnos/turnos-service/internal/domain"

// CancelledDayResponse отмененный день
type CancelledDayResponse struct {
	Fecha  string  `json:"fecha"`
	Motivo *string `json:"motivo,omitempty"`
}

// DaysResponse отмененные дни и воскресенья, открытые владельцем
type DaysResponse struct {
	DiasCancelados      []CancelledDayResponse `json:"diasCancelados"`
	DomingosRestaurados []string               `json:"domingosRestaurados"`
}

// BlockedSlotResponse заблокированное время сотрудника
type BlockedSlotResponse struct {
	Fecha         string  `json:"fecha"`
	Hora          string  `json:"hora"`
	ProfesionalID int64   `json:"profesionalId"`
	Motivo        *string `json:"motivo,omitempty"`
}

// FromDomainBlockedSlots конвертирует блокировки в ответ
func FromDomainBlockedSlots(list []*domain.BlockedSlot) []BlockedSlotResponse {
	result := make([]BlockedSlotResponse, 0, len(list))
	for _, s := range list {
		result = append(result, BlockedSlotResponse{
			Fecha:         s.Day.Format(domain.DateFormat),
			Hora:          s.StartTime.String(),
			ProfesionalID: s.StaffID,
			Motivo:        s.Reason,
		})
	}
	return result
}
