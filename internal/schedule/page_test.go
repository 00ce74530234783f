package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxturnos/turnos-service/internal/availability"
	"github.com/maxturnos/turnos-service/pkg/logger"
)

// суббота, 1 ноября 2025, 10:00
var testNow = time.Date(2025, 11, 1, 10, 0, 0, 0, time.Local)

func day(d int) time.Time {
	return time.Date(2025, 11, d, 0, 0, 0, 0, time.Local)
}

func loadedPage(t *testing.T, api *fakeAPI) *Page {
	t.Helper()
	p := New(api, "barberia", logger.Nop()).WithClock(func() time.Time { return testNow })
	p.debounce = 0
	p.confirmEvery = 0
	require.NoError(t, p.Load(context.Background(), 2025, time.November))
	return p
}

func TestLoad_BuildsMonthView(t *testing.T) {
	api := newFakeAPI()
	reason := "Feriado"
	api.cancelled["2025-11-05"] = &reason
	api.counts["2025-11-04"] = 2

	p := loadedPage(t, api)
	view := p.MonthView()
	require.Len(t, view, 30)

	assert.True(t, view[1].AutoClosed, "2 de noviembre es domingo")
	assert.False(t, view[1].Open)
	assert.Equal(t, 2, view[3].Bookings)
	assert.True(t, view[4].Cancelled)
	assert.Equal(t, "Feriado", *view[4].Reason)
	assert.False(t, view[4].Open)
	assert.True(t, view[2].Open)
	assert.Equal(t, "09:00", p.MinOpeningTime())
}

func TestCancelSelected_RejectsDayWithBookingsBeforeAnyCall(t *testing.T) {
	api := newFakeAPI()
	api.counts["2025-11-05"] = 2
	p := loadedPage(t, api)

	require.NoError(t, p.Select(day(5)))
	_, err := p.CancelSelected(context.Background(), "")

	var dayErr *DayHasBookingsError
	require.ErrorAs(t, err, &dayErr)
	assert.Equal(t, 2, dayErr.Count)
	assert.Contains(t, err.Error(), "tiene 2 reserva(s)")
	assert.Contains(t, err.Error(), "5 de noviembre")
	assert.Zero(t, api.cancelDayCalls)
}

func TestCancelSelected_MarksDayCancelled(t *testing.T) {
	api := newFakeAPI()
	p := loadedPage(t, api)

	require.NoError(t, p.Select(day(6)))
	results, err := p.CancelSelected(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, 1, api.cancelDayCalls)
	assert.Equal(t, defaultCancelReason, *api.cancelled["2025-11-06"])
	assert.True(t, p.Engine().IsCancelled(day(6)))
}

func TestCancelSelected_AllFailed(t *testing.T) {
	api := newFakeAPI()
	api.cancelErr = errors.New("boom")
	p := loadedPage(t, api)

	require.NoError(t, p.SetMode(ModeMultiDay))
	require.NoError(t, p.Select(day(6)))
	require.NoError(t, p.Select(day(7)))

	_, err := p.CancelSelected(context.Background(), "Vacaciones")
	assert.ErrorIs(t, err, ErrAllRequestsFailed)
	assert.False(t, p.Engine().IsCancelled(day(6)))
}

func TestRestoreSelected_SundayBecomesBookable(t *testing.T) {
	api := newFakeAPI()
	reason := "Cerrado"
	api.cancelled["2025-11-09"] = &reason
	p := loadedPage(t, api)

	keys := func() []string {
		var out []string
		for _, d := range p.Engine().GenerateBookableDates(14) {
			out = append(out, d.Key)
		}
		return out
	}
	assert.NotContains(t, keys(), "2025-11-09")

	require.NoError(t, p.Select(day(9)))
	_, err := p.RestoreSelected(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-11-09"}, api.restoreCalls)
	assert.Contains(t, keys(), "2025-11-09")
	assert.NotContains(t, keys(), "2025-11-02")

	// после перезагрузки месяца восстановленное воскресенье остается открытым
	require.NoError(t, p.Load(context.Background(), 2025, time.November))
	assert.Contains(t, keys(), "2025-11-09")
}

func TestSelect_MultiDayRules(t *testing.T) {
	p := loadedPage(t, newFakeAPI())
	require.NoError(t, p.SetMode(ModeMultiDay))

	require.NoError(t, p.Select(day(3)))
	require.NoError(t, p.Select(day(4)))
	assert.ErrorIs(t, p.Select(day(9)), ErrIncompatibleDay)

	// повторный выбор снимает дату
	require.NoError(t, p.Select(day(3)))
	assert.Equal(t, []time.Time{day(4)}, p.Selected())

	d := day(5)
	for len(p.Selected()) < MaxMultiDay {
		if d.Weekday() != time.Sunday {
			require.NoError(t, p.Select(d))
		}
		d = availability.AddDays(d, 1)
	}
	if d.Weekday() == time.Sunday {
		d = availability.AddDays(d, 1)
	}
	assert.ErrorIs(t, p.Select(d), ErrTooManyDates)
}

func TestSelect_SingleDayReplacesSelection(t *testing.T) {
	p := loadedPage(t, newFakeAPI())

	require.NoError(t, p.Select(day(3)))
	require.NoError(t, p.Select(day(9)))
	assert.Equal(t, []time.Time{day(9)}, p.Selected())
}

func TestSetMode_WholeMonth(t *testing.T) {
	t.Run("blocked by bookings", func(t *testing.T) {
		api := newFakeAPI()
		api.counts["2025-11-20"] = 1
		p := loadedPage(t, api)

		assert.ErrorIs(t, p.SetMode(ModeWholeMonth), ErrMonthHasBookings)
		assert.Equal(t, ModeSingleDay, p.Mode())
	})

	t.Run("selects every day", func(t *testing.T) {
		p := loadedPage(t, newFakeAPI())

		require.NoError(t, p.SetMode(ModeWholeMonth))
		assert.Len(t, p.Selected(), 30)
		assert.ErrorIs(t, p.Select(day(3)), ErrSelectionLocked)

		require.NoError(t, p.SetMode(ModeSingleDay))
		assert.Empty(t, p.Selected())
	})
}

func TestSelectStaff_Unknown(t *testing.T) {
	p := loadedPage(t, newFakeAPI())
	id := int64(99)
	assert.ErrorIs(t, p.SelectStaff(&id), ErrUnknownStaff)
}

func TestSlots_GeneralIntersectsAllStaff(t *testing.T) {
	api := newFakeAPI()
	api.slots[1] = []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}
	api.slots[2] = []string{"11:00", "11:30", "12:00", "12:30", "13:00", "13:30"}
	api.blocked[1] = []string{"12:00"}
	p := loadedPage(t, api)

	require.NoError(t, p.Select(day(5)))
	view, err := p.Slots(context.Background())
	require.NoError(t, err)

	assert.True(t, view.General)
	assert.Equal(t, []string{"11:00", "11:30"}, view.Available)
	assert.Empty(t, view.Blocked)
	assert.Equal(t, 2, view.Requests)
}

func TestSlots_SingleStaffAcrossDates(t *testing.T) {
	api := newFakeAPI()
	api.slots[1] = []string{"09:00", "17:30", "18:00", "19:00"}
	api.blocked[1] = []string{"12:00", "10:00"}
	p := loadedPage(t, api)

	id := int64(1)
	require.NoError(t, p.SelectStaff(&id))
	require.NoError(t, p.SetMode(ModeMultiDay))
	// суббота 8 идет первой, поэтому закрытие берется субботнее
	require.NoError(t, p.Select(day(10)))
	require.NoError(t, p.Select(day(8)))

	view, err := p.Slots(context.Background())
	require.NoError(t, err)
	assert.False(t, view.General)
	assert.Equal(t, []string{"09:00", "17:30", "18:00"}, view.Available)
	assert.Equal(t, []string{"10:00", "12:00"}, view.Blocked)
	assert.Equal(t, 2, view.Requests)
}

func TestSlots_PartialFailureTolerated(t *testing.T) {
	api := newFakeAPI()
	api.slots[1] = []string{"09:00", "09:30"}
	api.slotsErr[2] = errors.New("timeout")
	p := loadedPage(t, api)

	require.NoError(t, p.Select(day(5)))
	view, err := p.Slots(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, view.Failed)
	assert.Equal(t, []string{"09:00", "09:30"}, view.Available)

	api.slotsErr[1] = errors.New("timeout")
	_, err = p.Slots(context.Background())
	assert.ErrorIs(t, err, ErrAllRequestsFailed)
}

func TestSlots_StaleSelection(t *testing.T) {
	api := newFakeAPI()
	api.slots[1] = []string{"09:00"}
	api.slots[2] = []string{"09:00"}
	p := loadedPage(t, api)
	require.NoError(t, p.Select(day(5)))

	api.onSlots = func() { _ = p.SelectStaff(nil) }
	_, err := p.Slots(context.Background())
	assert.ErrorIs(t, err, ErrStaleSelection)
}

func TestBlockSlot_GeneralFansOutPerStaff(t *testing.T) {
	api := newFakeAPI()
	p := loadedPage(t, api)

	require.NoError(t, p.SetMode(ModeMultiDay))
	require.NoError(t, p.Select(day(5)))
	require.NoError(t, p.Select(day(6)))

	res, err := p.BlockSlot(context.Background(), "10:00", "")
	require.NoError(t, err)
	assert.Equal(t, 4, res.Succeeded)

	reqs := api.blockRequests()
	require.Len(t, reqs, 2)
	seen := map[int64]bool{}
	for _, r := range reqs {
		seen[*r.ProfesionalID] = true
		assert.Equal(t, []string{"2025-11-05", "2025-11-06"}, r.Fechas)
		assert.Equal(t, "10:00", r.Hora)
		assert.Equal(t, defaultBlockReason+" (General)", *r.Motivo)
	}
	assert.Equal(t, map[int64]bool{1: true, 2: true}, seen)
}

func TestBlockSlot_PartialFailure(t *testing.T) {
	api := newFakeAPI()
	api.slotsErr[2] = errors.New("boom")
	p := loadedPage(t, api)
	require.NoError(t, p.Select(day(5)))

	res, err := p.BlockSlot(context.Background(), "10:00", "Almuerzo")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Succeeded)
}

func TestUnblockSlot_SingleStaff(t *testing.T) {
	api := newFakeAPI()
	p := loadedPage(t, api)
	id := int64(2)
	require.NoError(t, p.SelectStaff(&id))
	require.NoError(t, p.Select(day(5)))

	_, err := p.UnblockSlot(context.Background(), "10:00")
	require.NoError(t, err)
	require.Len(t, api.unblockReqs, 1)
	assert.Equal(t, int64(2), *api.unblockReqs[0].ProfesionalID)

	_, err = p.UnblockSlot(context.Background(), "25:00")
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestCancelAllBookings_ProjectsThenReconciles(t *testing.T) {
	api := newFakeAPI()
	api.counts["2025-11-05"] = 3
	api.leftAfterCancelAll = 1
	p := loadedPage(t, api)

	proj, done, err := p.CancelAllBookings(context.Background(), day(5), "Corte de luz")
	require.NoError(t, err)
	assert.Equal(t, 3, proj.Before)
	assert.Zero(t, proj.After)

	select {
	case rec := <-done:
		require.NoError(t, rec.Err)
		assert.Equal(t, 2, rec.Cancelled)
		assert.Equal(t, 1, rec.Failed)
		assert.Equal(t, 1, rec.Remaining)
		assert.False(t, rec.Confirmed)
	case <-time.After(time.Second):
		t.Fatal("reconciliation did not finish")
	}
	assert.Equal(t, 1, p.BookingCount(day(5)))
}

func TestCancelAllBookings_Confirmed(t *testing.T) {
	api := newFakeAPI()
	api.counts["2025-11-05"] = 2
	p := loadedPage(t, api)

	_, done, err := p.CancelAllBookings(context.Background(), day(5), "")
	require.NoError(t, err)
	rec := <-done
	assert.True(t, rec.Confirmed)
	assert.Zero(t, p.BookingCount(day(5)))
}

func TestCancelAllBookings_RollsBackWhenNothingConfirms(t *testing.T) {
	api := newFakeAPI()
	api.counts["2025-11-05"] = 3
	p := loadedPage(t, api)
	api.cancelAllErr = errors.New("backend down")
	api.monthErr = errors.New("backend down")

	proj, done, err := p.CancelAllBookings(context.Background(), day(5), "")
	require.NoError(t, err)
	assert.Zero(t, proj.After)

	rec := <-done
	assert.Error(t, rec.Err)
	assert.False(t, rec.Confirmed)
	assert.Equal(t, 3, rec.Remaining)
	assert.Equal(t, 3, p.BookingCount(day(5)))
}

func TestCancelAllBookings_RefetchFailsAfterCancel(t *testing.T) {
	api := newFakeAPI()
	api.counts["2025-11-05"] = 3
	api.leftAfterCancelAll = 1
	p := loadedPage(t, api)
	api.monthErr = errors.New("timeout")

	_, done, err := p.CancelAllBookings(context.Background(), day(5), "")
	require.NoError(t, err)

	rec := <-done
	assert.Error(t, rec.Err)
	assert.Equal(t, 2, rec.Cancelled)
	assert.Equal(t, 1, rec.Remaining)
	assert.False(t, rec.Confirmed)
	assert.Equal(t, 1, p.BookingCount(day(5)))
}

func TestSetMinOpeningTime_WaitsForConfirmation(t *testing.T) {
	api := newFakeAPI()
	api.slots[1] = []string{"09:00", "09:30", "10:00", "10:30"}
	api.slots[2] = []string{"09:00", "09:30", "10:00", "10:30"}
	api.confirmLag = 2
	p := loadedPage(t, api)
	require.NoError(t, p.Select(day(5)))

	view, err := p.SetMinOpeningTime(context.Background(), "10:00")
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, []string{"10:00", "10:30"}, view.Available)
	assert.Equal(t, 1, api.updateCalls)
	assert.Equal(t, "10:00", api.business.Horarios.Inicio)
	assert.Equal(t, "10:00", p.Engine().OpeningTime())
}

func TestSetMinOpeningTime_HourWithoutLeadingZero(t *testing.T) {
	api := newFakeAPI()
	api.confirmLag = 1
	p := loadedPage(t, api)

	view, err := p.SetMinOpeningTime(context.Background(), "9:30")
	require.NoError(t, err)
	assert.Nil(t, view, "sin fechas seleccionadas no se recalculan horarios")
	assert.Equal(t, "09:30", api.business.Horarios.Inicio)
	assert.Equal(t, "09:30", p.MinOpeningTime())
}

func TestSetMinOpeningTime_ComparesMinutes(t *testing.T) {
	api := newFakeAPI()
	api.withSeconds = true
	p := loadedPage(t, api)
	p.confirmRetries = 2

	_, err := p.SetMinOpeningTime(context.Background(), "10:00")
	require.NoError(t, err)
	assert.Equal(t, "10:00:00", api.business.Horarios.Inicio)
}

func TestSetMinOpeningTime_NotConfirmed(t *testing.T) {
	api := newFakeAPI()
	api.confirmLag = 1000
	p := loadedPage(t, api)
	p.confirmRetries = 3

	_, err := p.SetMinOpeningTime(context.Background(), "10:00")
	assert.ErrorIs(t, err, ErrNotConfirmed)
}

func TestSetMinOpeningTime_Debounced(t *testing.T) {
	api := newFakeAPI()
	p := loadedPage(t, api)
	p.debounce = 100 * time.Millisecond

	first := make(chan error, 1)
	go func() {
		_, err := p.SetMinOpeningTime(context.Background(), "09:30")
		first <- err
	}()
	time.Sleep(20 * time.Millisecond)

	_, err := p.SetMinOpeningTime(context.Background(), "10:00")
	require.NoError(t, err)
	assert.ErrorIs(t, <-first, ErrSuperseded)
	assert.Equal(t, 1, api.updateCalls)
	assert.Equal(t, "10:00", p.MinOpeningTime())
}

func TestOperations_RequireLoad(t *testing.T) {
	p := New(newFakeAPI(), "barberia", logger.Nop())

	assert.ErrorIs(t, p.Select(day(3)), ErrNotLoaded)
	_, err := p.Slots(context.Background())
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = p.CancelSelected(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.Nil(t, p.MonthView())
}
