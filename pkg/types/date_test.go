package types

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayStart_MidnightSkippedByDST(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	// 2018-11-04 00:00 не существует: часы переводятся сразу на 01:00
	got := DayStart(2018, time.November, 4, loc)
	y, m, d := got.Date()
	assert.Equal(t, 2018, y)
	assert.Equal(t, time.November, m)
	assert.Equal(t, 4, d)
	assert.Equal(t, 1, got.Hour())

	prev := DayStart(2018, time.November, 3, loc)
	assert.Equal(t, 0, prev.Hour())
	assert.True(t, prev.Before(got))
}

func TestDayStart_NormalizesOverflow(t *testing.T) {
	got := DayStart(2025, time.December, 32, time.UTC)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestLocalDate(t *testing.T) {
	assert.True(t, LocalDate(time.Time{}).IsZero())

	got := LocalDate(time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC))
	y, m, d := got.Date()
	assert.Equal(t, []int{2025, 11, 3}, []int{y, int(m), d})
}
