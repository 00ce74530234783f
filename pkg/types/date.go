package types

import "time"

// DayStart первый момент календарного дня y-m-d в зоне loc.
// Если полночь выпадает на переход DST (America/Sao_Paulo, 2018-11-04), time.Date
// откатывает ее на предыдущий день; тогда берется первый существующий час этого дня.
// Переполнение дня и месяца нормализуется как в time.Date.
func DayStart(y int, m time.Month, d int, loc *time.Location) time.Time {
	y, m, d = time.Date(y, m, d, 12, 0, 0, 0, time.UTC).Date()

	t := time.Date(y, m, d, 0, 0, 0, 0, loc)
	for {
		ty, tm, td := t.Date()
		if ty == y && tm == m && td == d {
			break
		}
		t = t.Add(time.Hour)
	}
	return t
}

// LocalDate переносит календарную дату t (по её собственной зоне) на начало дня в time.Local.
// Драйвер отдаёт колонки DATE как полночь UTC, а вся арифметика дат ведется в локальной зоне.
func LocalDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return DayStart(y, m, d, time.Local)
}
