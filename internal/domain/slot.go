package domain

import "github.com/maxturnos/turnos-service/pkg/types"

// DaySlots свободное и занятое время сотрудника на дату
type DaySlots struct {
	Available []types.TimeString
	Blocked   []types.TimeString // занятые бронированиями и заблокированные владельцем
}

// IsEmpty true, если свободного времени нет
func (s *DaySlots) IsEmpty() bool {
	return len(s.Available) == 0
}

// Contains проверяет, что время свободно
func (s *DaySlots) Contains(t types.TimeString) bool {
	for _, a := range s.Available {
		if a.Equal(t) {
			return true
		}
	}
	return false
}
