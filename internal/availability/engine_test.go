package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func monToSat() []int { return []int{1, 2, 3, 4, 5, 6} }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestEngine_EffectiveClosingTime(t *testing.T) {
	e := NewEngine(Config{OpenDays: monToSat(), ClosingTime: "20:00", SaturdayClosingTime: "18:00"})

	assert.Equal(t, "18:00", e.EffectiveClosingTime(date(2025, 11, 8))) // sábado
	assert.Equal(t, "20:00", e.EffectiveClosingTime(date(2025, 11, 7))) // viernes
	assert.Equal(t, "20:00", e.EffectiveClosingTime(date(2025, 11, 9))) // domingo
}

func TestEngine_IsBusinessOpenOn(t *testing.T) {
	e := NewEngine(Config{
		OpenDays:       monToSat(),
		ClosingTime:    "20:00",
		CancelledDates: []time.Time{time.Date(2025, 11, 5, 15, 30, 0, 0, time.Local)},
	})

	assert.True(t, e.IsBusinessOpenOn(date(2025, 11, 4)))
	assert.False(t, e.IsBusinessOpenOn(date(2025, 11, 5)), "cancelled day matches by calendar date")
	assert.False(t, e.IsBusinessOpenOn(date(2025, 11, 9)), "sunday is not an open weekday")
	assert.True(t, e.IsAutoClosed(date(2025, 11, 9)))
}

func TestEngine_IsTodayPastClosing(t *testing.T) {
	cfg := Config{OpenDays: monToSat(), ClosingTime: "20:00", SaturdayClosingTime: "18:00"}

	cfg.Now = fixedNow(time.Date(2025, 11, 8, 17, 59, 0, 0, time.Local))
	assert.False(t, NewEngine(cfg).IsTodayPastClosing())

	cfg.Now = fixedNow(time.Date(2025, 11, 8, 18, 0, 0, 0, time.Local))
	assert.True(t, NewEngine(cfg).IsTodayPastClosing())

	cfg.Now = fixedNow(time.Date(2025, 11, 7, 19, 0, 0, 0, time.Local))
	assert.False(t, NewEngine(cfg).IsTodayPastClosing())
}

func TestEngine_GenerateBookableDates_RespectsOpenDaysAndCancelled(t *testing.T) {
	cancelled := []time.Time{date(2025, 11, 12), date(2025, 11, 20)}
	e := NewEngine(Config{
		OpenDays:            []int{2, 3, 4},
		ClosingTime:         "20:00",
		SaturdayClosingTime: "18:00",
		CancelledDates:      cancelled,
		Now:                 fixedNow(time.Date(2025, 11, 3, 10, 0, 0, 0, time.Local)),
	})

	dates := e.GenerateBookableDates(30)
	require.NotEmpty(t, dates)

	for _, d := range dates {
		wd := d.Date.Weekday()
		assert.Contains(t, []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday}, wd, d.Key)
		assert.NotEqual(t, "2025-11-12", d.Key)
		assert.NotEqual(t, "2025-11-20", d.Key)
		assert.Equal(t, SpanishLongDate(d.Date), d.Label)
	}

	// Горизонт включительный: 2025-12-03 (среда) = сегодня + 30
	assert.Equal(t, "2025-12-03", dates[len(dates)-1].Key)
}

func TestEngine_GenerateBookableDates_SkipsTodayAfterClosing(t *testing.T) {
	now := time.Date(2025, 11, 5, 20, 15, 0, 0, time.Local) // miércoles
	e := NewEngine(Config{OpenDays: monToSat(), ClosingTime: "20:00", SaturdayClosingTime: "18:00", Now: fixedNow(now)})

	require.True(t, e.IsTodayPastClosing())
	dates := e.GenerateBookableDates(30)
	require.NotEmpty(t, dates)
	assert.True(t, dates[0].Date.After(StartOfDay(now)))
	assert.Equal(t, "2025-11-06", dates[0].Key)
}

func TestEngine_SaturdayEveningNextDateIsMonday(t *testing.T) {
	now := time.Date(2025, 11, 8, 19, 0, 0, 0, time.Local) // sábado 19:00
	e := NewEngine(Config{OpenDays: monToSat(), ClosingTime: "20:00", SaturdayClosingTime: "18:00", Now: fixedNow(now)})

	dates := e.GenerateBookableDates(30)
	require.NotEmpty(t, dates)
	assert.Equal(t, "2025-11-10", dates[0].Key)
	assert.Equal(t, time.Monday, dates[0].Date.Weekday())
}

func TestEngine_RestoredSundayReappears(t *testing.T) {
	now := time.Date(2025, 11, 3, 10, 0, 0, 0, time.Local)
	sunday := date(2025, 11, 9)
	cfg := Config{OpenDays: monToSat(), ClosingTime: "20:00", SaturdayClosingTime: "18:00", Now: fixedNow(now)}

	before := NewEngine(cfg).GenerateBookableDates(30)
	assert.NotContains(t, keys(before), "2025-11-09")

	cfg.RestoredDates = []time.Time{sunday}
	after := NewEngine(cfg).GenerateBookableDates(30)
	assert.Contains(t, keys(after), "2025-11-09")
}

func TestEngine_GenerateBookableDates_IsRestartable(t *testing.T) {
	e := NewEngine(Config{OpenDays: monToSat(), ClosingTime: "20:00", Now: fixedNow(time.Date(2025, 11, 3, 9, 0, 0, 0, time.Local))})
	assert.Equal(t, e.GenerateBookableDates(30), e.GenerateBookableDates(30))
}

func TestEngine_IsBookableSlot(t *testing.T) {
	now := time.Date(2025, 11, 4, 10, 0, 0, 0, time.Local)
	e := NewEngine(Config{OpenDays: monToSat(), ClosingTime: "20:00", Now: fixedNow(now)})

	assert.False(t, e.IsBookableSlot(date(2025, 11, 4), "10:00"))
	assert.True(t, e.IsBookableSlot(date(2025, 11, 4), "10:30"))
	assert.False(t, e.IsBookableSlot(date(2025, 11, 3), "12:00"))
	assert.False(t, e.IsBookableSlot(date(2025, 11, 9), "12:00"))
}

func keys(dates []BookableDate) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Key
	}
	return out
}

func TestEngine_GenerateBookableDates_AcrossSkippedMidnight(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	e := NewEngine(Config{
		OpenDays:            []int{0, 1, 2, 3, 4, 5, 6},
		ClosingTime:         "20:00",
		SaturdayClosingTime: "20:00",
		Now:                 fixedNow(time.Date(2018, time.November, 3, 10, 0, 0, 0, loc)),
	})

	var keys []string
	for _, d := range e.GenerateBookableDates(3) {
		keys = append(keys, d.Key)
	}
	assert.Equal(t, []string{"2018-11-03", "2018-11-04", "2018-11-05", "2018-11-06"}, keys)
}
