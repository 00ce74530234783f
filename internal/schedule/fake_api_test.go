package schedule

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	blockSlots "github.com/maxturnos/turnos-service/internal/api/handlers/block_slots"
	cancelDay "github.com/maxturnos/turnos-service/internal/api/handlers/cancel_day"
	cancelDayBookings "github.com/maxturnos/turnos-service/internal/api/handlers/cancel_day_bookings"
	getAvailableSlots "github.com/maxturnos/turnos-service/internal/api/handlers/get_available_slots"
	restoreDay "github.com/maxturnos/turnos-service/internal/api/handlers/restore_day"
	unblockSlots "github.com/maxturnos/turnos-service/internal/api/handlers/unblock_slots"
	"github.com/maxturnos/turnos-service/internal/availability"
	"github.com/maxturnos/turnos-service/internal/integrations/turnosapi"
	bookingModels "github.com/maxturnos/turnos-service/internal/service/bookings/models"
	businessModels "github.com/maxturnos/turnos-service/internal/service/business/models"
	calendarModels "github.com/maxturnos/turnos-service/internal/service/calendar/models"
	catalogModels "github.com/maxturnos/turnos-service/internal/service/catalog/models"
	"github.com/maxturnos/turnos-service/pkg/types"
)

// fakeAPI сервер в памяти
type fakeAPI struct {
	mu sync.Mutex

	business  businessModels.BusinessResponse
	staff     []catalogModels.StaffResponse
	cancelled map[string]*string
	restored  []string
	counts    map[string]int

	slots        map[int64][]string // свободное время сотрудника, одинаковое для всех дат
	blocked      map[int64][]string
	slotsErr     map[int64]error
	onSlots      func()
	cancelErr    error
	cancelAllErr error
	monthErr     error

	// сколько бронирований остается после массовой отмены
	leftAfterCancelAll int

	// сколько чтений Business нужно, чтобы запись расписания стала видна
	confirmLag    int
	pendingInicio *string
	readsPending  int
	// сервер отдает время с секундами ("09:30:00")
	withSeconds bool

	cancelDayCalls int
	restoreCalls   []string
	slotsCalls     int
	updateCalls    int
	blockReqs      []blockSlots.SlotsRequest
	unblockReqs    []unblockSlots.SlotsRequest
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		business: businessModels.BusinessResponse{
			Codigo:          "barberia",
			Nombre:          "Barberia Clasica",
			Horarios:        businessModels.Horarios{Inicio: "09:00", Fin: "20:00", FinSabado: "18:00", Intervalo: 30},
			DiasDisponibles: []int{1, 2, 3, 4, 5, 6},
			Activo:          true,
		},
		staff: []catalogModels.StaffResponse{
			{ID: 1, Nombre: "Carlos Mendoza"},
			{ID: 2, Nombre: "Lucia Perez"},
		},
		cancelled: map[string]*string{},
		counts:    map[string]int{},
		slots:     map[int64][]string{},
		blocked:   map[int64][]string{},
		slotsErr:  map[int64]error{},
	}
}

func (f *fakeAPI) Business(_ context.Context, code string) (*businessModels.BusinessResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pendingInicio != nil {
		if f.readsPending >= f.confirmLag {
			f.business.Horarios.Inicio = *f.pendingInicio
			f.pendingInicio = nil
		}
		f.readsPending++
	}
	b := f.business
	return &b, nil
}

func (f *fakeAPI) UpdateSchedule(_ context.Context, code string, req businessModels.UpdateScheduleRequest) (*businessModels.BusinessResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	// сервер хранит время в каноническом виде, как business.applySchedule
	normalized, err := types.NewTimeStringFromString(req.Horarios.Inicio)
	if err != nil {
		return nil, fmt.Errorf("inicio: %w", err)
	}
	inicio := normalized.String()
	if f.withSeconds {
		inicio += ":00"
	}
	f.pendingInicio = &inicio
	f.readsPending = 0
	b := f.business
	return &b, nil
}

func (f *fakeAPI) Staff(_ context.Context, code string) ([]catalogModels.StaffResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]catalogModels.StaffResponse(nil), f.staff...), nil
}

func (f *fakeAPI) CancelledDays(_ context.Context, code string, from, to time.Time) (*calendarModels.DaysResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	resp := &calendarModels.DaysResponse{DomingosRestaurados: append([]string(nil), f.restored...)}
	for key, reason := range f.cancelled {
		resp.DiasCancelados = append(resp.DiasCancelados, calendarModels.CancelledDayResponse{Fecha: key, Motivo: reason})
	}
	sort.Slice(resp.DiasCancelados, func(i, j int) bool { return resp.DiasCancelados[i].Fecha < resp.DiasCancelados[j].Fecha })
	return resp, nil
}

func (f *fakeAPI) BookingsByMonth(_ context.Context, code string, year int, month time.Month) (*bookingModels.MonthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.monthErr != nil {
		return nil, f.monthErr
	}
	resp := &bookingModels.MonthResponse{ContadoresPorDia: map[string]int{}}
	for key, n := range f.counts {
		resp.ContadoresPorDia[key] = n
		resp.TotalReservas += n
	}
	return resp, nil
}

func (f *fakeAPI) AvailableSlots(_ context.Context, q turnosapi.SlotsQuery) (*getAvailableSlots.SlotsResponse, error) {
	f.mu.Lock()
	f.slotsCalls++
	hook := f.onSlots
	err := f.slotsErr[q.StaffID]
	free := append([]string(nil), f.slots[q.StaffID]...)
	blocked := append([]string(nil), f.blocked[q.StaffID]...)
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	if err != nil {
		return nil, err
	}
	return &getAvailableSlots.SlotsResponse{
		Fecha:               availability.FormatLocalDate(q.Date),
		ProfesionalID:       q.StaffID,
		HorariosDisponibles: free,
		HorariosBloqueados:  blocked,
	}, nil
}

func (f *fakeAPI) CancelDay(_ context.Context, req cancelDay.CancelDayRequest) (*cancelDay.CancelDayResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelDayCalls++
	if f.cancelErr != nil {
		return nil, f.cancelErr
	}
	f.cancelled[req.Fecha] = req.Motivo
	return &cancelDay.CancelDayResponse{Fecha: req.Fecha, Creado: true}, nil
}

func (f *fakeAPI) RestoreDay(_ context.Context, code string, day time.Time) (*restoreDay.RestoreDayResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := availability.FormatLocalDate(day)
	f.restoreCalls = append(f.restoreCalls, key)
	_, existed := f.cancelled[key]
	delete(f.cancelled, key)
	sunday := day.Weekday() == time.Sunday
	if sunday {
		f.restored = append(f.restored, key)
	}
	return &restoreDay.RestoreDayResponse{Fecha: key, Eliminado: existed, DomingoRestaurado: sunday}, nil
}

func (f *fakeAPI) BlockSlots(_ context.Context, req blockSlots.SlotsRequest) (*blockSlots.SlotsResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blockReqs = append(f.blockReqs, req)
	if err := f.slotsErr[*req.ProfesionalID]; err != nil {
		return nil, err
	}
	return &blockSlots.SlotsResponse{Exitosos: len(req.Fechas)}, nil
}

func (f *fakeAPI) UnblockSlots(_ context.Context, req unblockSlots.SlotsRequest) (*unblockSlots.SlotsResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unblockReqs = append(f.unblockReqs, req)
	return &unblockSlots.SlotsResponse{Exitosos: len(req.Fechas)}, nil
}

func (f *fakeAPI) CancelDayBookings(_ context.Context, req cancelDayBookings.CancelDayBookingsRequest) (*cancelDayBookings.CancelDayBookingsResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancelAllErr != nil {
		return nil, f.cancelAllErr
	}
	before := f.counts[req.Fecha]
	left := f.leftAfterCancelAll
	f.counts[req.Fecha] = left

	resp := &cancelDayBookings.CancelDayBookingsResponse{Canceladas: before - left, Fallidas: left}
	for i := 0; i < left; i++ {
		resp.Resultados = append(resp.Resultados, cancelDayBookings.ResultDTO{ID: int64(100 + i), Error: fmt.Sprintf("booking %d locked", 100+i)})
	}
	return resp, nil
}

func (f *fakeAPI) blockRequests() []blockSlots.SlotsRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]blockSlots.SlotsRequest(nil), f.blockReqs...)
}
