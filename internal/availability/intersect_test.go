package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntersectAcross(t *testing.T) {
	tests := []struct {
		name  string
		lists [][]string
		want  []string
	}{
		{name: "overlap", lists: [][]string{{"09:00", "10:00"}, {"10:00", "11:00"}}, want: []string{"10:00"}},
		{name: "empty list short-circuits", lists: [][]string{{}, {"10:00"}}, want: []string{}},
		{name: "identity", lists: [][]string{{"09:00"}}, want: []string{"09:00"}},
		{name: "no lists", lists: nil, want: []string{}},
		{name: "sorted by minutes", lists: [][]string{{"18:00", "9:00", "10:00"}, {"10:00", "09:00", "18:00"}}, want: []string{"09:00", "10:00", "18:00"}},
		{name: "duplicates inside a list", lists: [][]string{{"09:00", "09:00"}, {"10:00"}}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntersectAcross(tt.lists))
		})
	}
}

func TestIntersectAcross_GeneralModeTwoStaff(t *testing.T) {
	day := date(2025, 11, 4)
	staffA := FreeSlots(DayInput{Date: day, Opening: "09:00", Closing: "12:30", IntervalMinutes: 30, ServiceMinutes: 30})
	staffB := FreeSlots(DayInput{Date: day, Opening: "11:00", Closing: "14:30", IntervalMinutes: 30, ServiceMinutes: 30})

	// A свободен 09:00-12:00 (последний старт 12:00), B 11:00-14:00
	got := IntersectAcross([][]string{staffA.Available, staffB.Available})
	assert.Equal(t, []string{"11:00", "11:30", "12:00"}, got)
}

func TestFilterWindow(t *testing.T) {
	slots := []string{"07:30", "08:00", "12:00", "18:00", "18:30"}
	assert.Equal(t, []string{"08:00", "12:00", "18:00"}, FilterWindow(slots, "08:00", "18:00"))
}

func TestReferenceDate(t *testing.T) {
	ref, ok := ReferenceDate([]time.Time{date(2025, 11, 10), date(2025, 11, 8), date(2025, 11, 12)})
	assert.True(t, ok)
	assert.Equal(t, "2025-11-08", FormatLocalDate(ref))

	_, ok = ReferenceDate(nil)
	assert.False(t, ok)
}

func TestUnionSorted(t *testing.T) {
	assert.Equal(t, []string{"09:00", "10:00", "11:30"}, UnionSorted([][]string{{"10:00", "9:00"}, {"11:30", "10:00"}}))
}
