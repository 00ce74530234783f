package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/maxturnos/turnos-service/pkg/types"
)

// FormatLocalDate форматирует дату как "YYYY-MM-DD" по локальным полям календаря.
// Никогда не проходит через UTC, иначе при отрицательном смещении дата уезжает на день.
func FormatLocalDate(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// ParseLocalDate разбирает "YYYY-MM-DD" в начало дня локального календаря.
// Допускается суффикс времени ISO ("2025-11-03T00:00:00.000Z" или "2025-11-03 10:00"),
// из него берется только дата. Для некорректной строки возвращает ok=false.
func ParseLocalDate(s string) (time.Time, bool) {
	return ParseDateIn(s, time.Local)
}

// ParseDateIn то же, что ParseLocalDate, но в указанной зоне
func ParseDateIn(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "T "); i >= 0 {
		s = s[:i]
	}

	parts := strings.Split(s, "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) == 0 || len(parts[1]) > 2 ||
		len(parts[2]) == 0 || len(parts[2]) > 2 {
		return time.Time{}, false
	}

	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	day, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	if month < 1 || month > 12 || day < 1 || day > DaysInMonth(year, time.Month(month)) {
		return time.Time{}, false
	}

	return types.DayStart(year, time.Month(month), day, loc), true
}

// TimeToMinutes переводит "HH:MM" в минуты от полуночи
func TimeToMinutes(s string) (int, bool) {
	m := types.TimeString(s).Minutes()
	return m, m >= 0
}

// MinutesToTime переводит минуты от полуночи в "HH:MM"
func MinutesToTime(m int) string {
	return types.FromMinutes(m).String()
}

// StartOfDay начало того же календарного дня (полночь, либо первый час после перехода DST)
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return types.DayStart(y, m, d, t.Location())
}

// AddDays сдвигает дату на n календарных дней (без 24h арифметики, безопасно для DST)
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return types.DayStart(y, m, d+n, t.Location())
}

// SameDay сравнивает календарные даты
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DaysInMonth количество дней в месяце
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthDates все даты месяца
func MonthDates(year int, month time.Month, loc *time.Location) []time.Time {
	n := DaysInMonth(year, month)
	dates := make([]time.Time, 0, n)
	for d := 1; d <= n; d++ {
		dates = append(dates, types.DayStart(year, month, d, loc))
	}
	return dates
}

var (
	spanishWeekdays = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}
	spanishMonths   = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio",
		"agosto", "septiembre", "octubre", "noviembre", "diciembre"}
)

// SpanishLongDate подпись даты для выбора дня: "lunes, 3 de noviembre de 2025"
func SpanishLongDate(t time.Time) string {
	return fmt.Sprintf("%s, %d de %s de %d",
		spanishWeekdays[t.Weekday()], t.Day(), spanishMonths[t.Month()-1], t.Year())
}

// SpanishMonth название месяца
func SpanishMonth(m time.Month) string {
	return spanishMonths[m-1]
}

// SpanishWeekday название дня недели
func SpanishWeekday(wd time.Weekday) string {
	return spanishWeekdays[wd]
}
