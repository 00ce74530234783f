package get_available_slots

import (
	"github.com/maxturnos/turnos-service/internal/availability"
	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/pkg/types"
)

// bookedIntervals активные бронирования сотрудника как интервалы
func bookedIntervals(bookings []*domain.Booking, staffID int64) []availability.BookedInterval {
	out := make([]availability.BookedInterval, 0, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() || b.StaffID != staffID {
			continue
		}
		out = append(out, availability.BookedInterval{
			Start:           b.StartTime.String(),
			DurationMinutes: b.DurationMinutes,
		})
	}
	return out
}

func blockedTimes(slots []*domain.BlockedSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.StartTime.String())
	}
	return out
}

func toTimeStrings(values []string) []types.TimeString {
	out := make([]types.TimeString, 0, len(values))
	for _, v := range values {
		ts, err := types.NewTimeStringFromString(v)
		if err != nil {
			continue
		}
		out = append(out, ts)
	}
	return out
}
