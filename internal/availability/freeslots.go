package availability

import (
	"time"

	"github.com/maxturnos/turnos-service/pkg/types"
)

// BookedInterval занятое бронированием время сотрудника
type BookedInterval struct {
	Start           string
	DurationMinutes int
}

// DayInput данные для расчёта свободного времени одного сотрудника на одну дату
type DayInput struct {
	Date            time.Time
	Opening         string
	Closing         string
	IntervalMinutes int
	ServiceMinutes  int      // длительность выбранной услуги, 0 = длина интервала
	Blocked         []string // время, заблокированное владельцем для этого сотрудника
	Booked          []BookedInterval
	Now             time.Time // нулевое значение отключает фильтр прошедшего времени
}

// DayResult свободное время и занятые отметки на дату
type DayResult struct {
	Available []string
	Blocked   []string // начала бронирований и заблокированное время
}

// FreeSlots генерирует слоты от открытия до закрытия включительно с шагом интервала
// и отбрасывает заблокированные, не помещающиеся до закрытия, пересекающиеся с
// бронированиями этого же сотрудника и уже прошедшие сегодня.
func FreeSlots(in DayInput) DayResult {
	result := DayResult{Available: []string{}, Blocked: []string{}}

	open, okOpen := TimeToMinutes(in.Opening)
	closing, okClose := TimeToMinutes(in.Closing)
	if !okOpen || !okClose || closing < open {
		return result
	}

	step := in.IntervalMinutes
	if step <= 0 {
		step = 30
	}
	duration := in.ServiceMinutes
	if duration <= 0 {
		duration = step
	}

	blocked := make(map[int]struct{}, len(in.Blocked))
	for _, b := range in.Blocked {
		if m, ok := TimeToMinutes(b); ok {
			blocked[m] = struct{}{}
		}
	}

	type interval struct{ start, end int }
	booked := make([]interval, 0, len(in.Booked))
	bookedStarts := make([]string, 0, len(in.Booked))
	for _, b := range in.Booked {
		m, ok := TimeToMinutes(b.Start)
		if !ok {
			continue
		}
		d := b.DurationMinutes
		if d <= 0 {
			d = step
		}
		booked = append(booked, interval{start: m, end: m + d})
		bookedStarts = append(bookedStarts, b.Start)
	}

	nowMinutes := -1
	if !in.Now.IsZero() {
		if StartOfDay(in.Date).Before(StartOfDay(in.Now)) {
			return result
		}
		if SameDay(in.Date, in.Now) {
			nowMinutes = in.Now.Hour()*60 + in.Now.Minute()
		}
	}

	for m := open; m <= closing; m += step {
		if _, isBlocked := blocked[m]; isBlocked {
			continue
		}
		end := m + duration
		if end > closing {
			continue
		}
		if m <= nowMinutes {
			continue
		}
		overlaps := false
		for _, b := range booked {
			// Полуоткрытые интервалы: касание границ не считается пересечением
			if m < b.end && end > b.start {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}
		result.Available = append(result.Available, types.FromMinutes(m).String())
	}

	result.Blocked = UnionSorted([][]string{bookedStarts, in.Blocked})
	return result
}

// SlotVerdict результат проверки конкретного времени
type SlotVerdict int

const (
	SlotFree    SlotVerdict = iota
	SlotTaken               // пересекается с бронированием или заблокировано
	SlotInvalid             // вне сетки, прошло или не помещается до закрытия
)

// CheckSlot проверяет, входит ли start в свободное время дня
func CheckSlot(start string, in DayInput) SlotVerdict {
	m, ok := TimeToMinutes(start)
	if !ok {
		return SlotInvalid
	}
	for _, s := range FreeSlots(in).Available {
		if sm, _ := TimeToMinutes(s); sm == m {
			return SlotFree
		}
	}

	duration := in.ServiceMinutes
	if duration <= 0 {
		duration = in.IntervalMinutes
	}
	for _, b := range in.Blocked {
		if bm, ok := TimeToMinutes(b); ok && bm == m {
			return SlotTaken
		}
	}
	for _, b := range in.Booked {
		bm, ok := TimeToMinutes(b.Start)
		if ok && m < bm+b.DurationMinutes && m+duration > bm {
			return SlotTaken
		}
	}
	return SlotInvalid
}
