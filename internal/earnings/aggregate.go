package earnings

import (
	"sort"
	"time"

	"github.com/maxturnos/turnos-service/internal/availability"
	"github.com/maxturnos/turnos-service/internal/domain"
)

// Mode режим агрегации
type Mode string

const (
	ModeDay   Mode = "dia"
	ModeDays  Mode = "dias"
	ModeWeek  Mode = "semana"
	ModeMonth Mode = "mes"
)

// IsValid проверяет режим
func (m Mode) IsValid() bool {
	switch m {
	case ModeDay, ModeDays, ModeWeek, ModeMonth:
		return true
	}
	return false
}

// Range набор календарных дат, по которым строится отчет
type Range struct {
	Mode  Mode
	Dates []time.Time // отсортированы по возрастанию, без повторов
}

// Day отчет за один день
func Day(d time.Time) Range {
	return Range{Mode: ModeDay, Dates: []time.Time{availability.StartOfDay(d)}}
}

// Days отчет по произвольному набору дней
func Days(dates []time.Time) Range {
	seen := make(map[string]struct{}, len(dates))
	result := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		key := availability.FormatLocalDate(d)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, availability.StartOfDay(d))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Before(result[j]) })
	return Range{Mode: ModeDays, Dates: result}
}

// Week семь последовательных дней начиная с d
func Week(d time.Time) Range {
	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = availability.AddDays(d, i)
	}
	return Range{Mode: ModeWeek, Dates: dates}
}

// Month все дни месяца
func Month(year int, month time.Month, loc *time.Location) Range {
	return Range{Mode: ModeMonth, Dates: availability.MonthDates(year, month, loc)}
}

// Months месяцы, которые покрывает диапазон (для загрузки бронирований помесячно)
func (r Range) Months() [][2]int {
	seen := make(map[[2]int]struct{})
	var result [][2]int
	for _, d := range r.Dates {
		key := [2]int{d.Year(), int(d.Month())}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, key)
	}
	return result
}

// DayTotal сумма за календарную дату
type DayTotal struct {
	Date     time.Time
	Key      string
	Total    float64
	Bookings int
}

// Report результат агрегации
type Report struct {
	Mode  Mode
	Days  []DayTotal
	Total float64
	Count int
}

// Aggregate суммирует цены подтвержденных бронирований по датам диапазона.
// Каждая дата диапазона присутствует в отчете, даже если сумма нулевая.
func Aggregate(bookings []*domain.Booking, r Range) Report {
	index := make(map[string]int, len(r.Dates))
	report := Report{Mode: r.Mode, Days: make([]DayTotal, len(r.Dates))}
	for i, d := range r.Dates {
		key := availability.FormatLocalDate(d)
		index[key] = i
		report.Days[i] = DayTotal{Date: d, Key: key}
	}

	for _, b := range bookings {
		if b == nil || b.Status != domain.StatusConfirmed {
			continue
		}
		i, ok := index[availability.FormatLocalDate(b.BookingDate)]
		if !ok {
			continue
		}
		price := ParsePrice(b.ServicePrice)
		report.Days[i].Total += price
		report.Days[i].Bookings++
		report.Total += price
		report.Count++
	}
	return report
}
