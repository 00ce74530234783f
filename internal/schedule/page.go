package schedule

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/maxturnos/turnos-service/internal/availability"
	bookingModels "github.com/maxturnos/turnos-service/internal/service/bookings/models"
	businessModels "github.com/maxturnos/turnos-service/internal/service/business/models"
	calendarModels "github.com/maxturnos/turnos-service/internal/service/calendar/models"
	catalogModels "github.com/maxturnos/turnos-service/internal/service/catalog/models"
)

// Mode режим выбора дат
type Mode string

const (
	ModeSingleDay  Mode = "single-day"
	ModeMultiDay   Mode = "multi-day"
	ModeWholeMonth Mode = "whole-month"
)

const (
	// MaxMultiDay предел дат в режиме multi-day
	MaxMultiDay = 31

	defaultCancelReason = "Día cancelado desde panel de negocio"
	defaultBlockReason  = "Bloqueado desde panel de negocio"

	defaultDebounce       = time.Second
	defaultConfirmEvery   = 250 * time.Millisecond
	defaultConfirmRetries = 8
	fanOutLimit           = 8
)

// Page состояние страницы расписания владельца за один месяц
type Page struct {
	api    API
	code   string
	logger Logger
	now    func() time.Time

	debounce       time.Duration
	confirmEvery   time.Duration
	confirmRetries int

	mu         sync.Mutex
	loaded     bool
	business   *businessModels.BusinessResponse
	staff      []catalogModels.StaffResponse
	year       int
	month      time.Month
	cancelled  map[string]*string  // явно отмененные дни и причина
	restored   map[string]struct{} // воскресенья, открытые владельцем
	bookings   map[string]int      // активные бронирования по дням
	mode       Mode
	selected   map[string]time.Time
	staffID    *int64 // nil = General, все сотрудники
	minOpening string
	generation uint64 // растет при каждом изменении выбора
	openingSeq uint64
}

// New страница расписания бизнеса code
func New(api API, code string, logger Logger) *Page {
	return &Page{
		api:            api,
		code:           code,
		logger:         logger,
		now:            time.Now,
		debounce:       defaultDebounce,
		confirmEvery:   defaultConfirmEvery,
		confirmRetries: defaultConfirmRetries,
		mode:           ModeSingleDay,
		selected:       map[string]time.Time{},
	}
}

// WithClock подменяет источник времени
func (p *Page) WithClock(now func() time.Time) *Page {
	p.now = now
	return p
}

// Load загружает месяц: настройки бизнеса, сотрудников, отмененные дни и счетчики бронирований
func (p *Page) Load(ctx context.Context, year int, month time.Month) error {
	dates := availability.MonthDates(year, month, time.Local)
	from, to := dates[0], dates[len(dates)-1]

	var (
		business *businessModels.BusinessResponse
		staff    []catalogModels.StaffResponse
		days     *calendarModels.DaysResponse
		counts   *bookingModels.MonthResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		business, err = p.api.Business(gctx, p.code)
		return err
	})
	g.Go(func() (err error) {
		staff, err = p.api.Staff(gctx, p.code)
		return err
	})
	g.Go(func() (err error) {
		days, err = p.api.CancelledDays(gctx, p.code, from, to)
		return err
	})
	g.Go(func() (err error) {
		counts, err = p.api.BookingsByMonth(gctx, p.code, year, month)
		return err
	})
	if err := g.Wait(); err != nil {
		p.logger.Error("schedule %s: load %04d-%02d: %v", p.code, year, int(month), err)
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.business = business
	p.staff = staff
	p.year, p.month = year, month
	p.minOpening = business.Horarios.Inicio

	p.cancelled = make(map[string]*string, len(days.DiasCancelados))
	for _, d := range days.DiasCancelados {
		p.cancelled[d.Fecha] = d.Motivo
	}
	// локальные восстановления сохраняются между перезагрузками месяца
	if p.restored == nil {
		p.restored = make(map[string]struct{}, len(days.DomingosRestaurados))
	}
	for _, key := range days.DomingosRestaurados {
		p.restored[key] = struct{}{}
	}
	p.bookings = make(map[string]int, len(counts.ContadoresPorDia))
	for key, n := range counts.ContadoresPorDia {
		p.bookings[key] = n
	}

	if p.staffID != nil && !p.hasStaffLocked(*p.staffID) {
		p.staffID = nil
	}
	p.mode = ModeSingleDay
	p.clearSelectionLocked()
	p.loaded = true

	p.logger.Info("schedule %s: loaded %04d-%02d (%d cancelled, %d staff)",
		p.code, year, int(month), len(p.cancelled), len(staff))
	return nil
}

// Engine движок доступности по текущему состоянию страницы
func (p *Page) Engine() *availability.Engine {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.engineLocked()
}

func (p *Page) engineLocked() *availability.Engine {
	cfg := availability.Config{Now: p.now}
	if p.business != nil {
		cfg.OpenDays = p.business.DiasDisponibles
		cfg.OpeningTime = p.business.Horarios.Inicio
		cfg.ClosingTime = p.business.Horarios.Fin
		cfg.SaturdayClosingTime = p.business.Horarios.FinSabado
	}
	for key := range p.cancelled {
		if d, ok := availability.ParseLocalDate(key); ok {
			cfg.CancelledDates = append(cfg.CancelledDates, d)
		}
	}
	for key := range p.restored {
		if d, ok := availability.ParseLocalDate(key); ok {
			cfg.RestoredDates = append(cfg.RestoredDates, d)
		}
	}
	return availability.NewEngine(cfg)
}

// DayView день календаря месяца
type DayView struct {
	Date       time.Time
	Key        string
	Open       bool
	Cancelled  bool // отменен явно
	AutoClosed bool // воскресенье, закрытое по умолчанию
	Restored   bool
	Reason     *string
	Bookings   int
	Selected   bool
}

// MonthView все дни загруженного месяца
func (p *Page) MonthView() []DayView {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.loaded {
		return nil
	}
	engine := p.engineLocked()
	dates := availability.MonthDates(p.year, p.month, time.Local)
	view := make([]DayView, 0, len(dates))
	for _, d := range dates {
		key := availability.FormatLocalDate(d)
		reason, cancelled := p.cancelled[key]
		_, selected := p.selected[key]
		_, restored := p.restored[key]
		view = append(view, DayView{
			Date:       d,
			Key:        key,
			Open:       engine.IsBusinessOpenOn(d),
			Cancelled:  cancelled,
			AutoClosed: engine.IsAutoClosed(d),
			Restored:   restored,
			Reason:     reason,
			Bookings:   p.bookings[key],
			Selected:   selected,
		})
	}
	return view
}

// BookingCount активные бронирования в дату
func (p *Page) BookingCount(date time.Time) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bookings[availability.FormatLocalDate(date)]
}

// Staff сотрудники бизнеса
func (p *Page) Staff() []catalogModels.StaffResponse {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]catalogModels.StaffResponse(nil), p.staff...)
}

// Mode текущий режим выбора
func (p *Page) Mode() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

// SetMode переключает режим и сбрасывает выбор. whole-month выбирает весь месяц,
// но только если в нем нет бронирований.
func (p *Page) SetMode(mode Mode) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.loaded {
		return ErrNotLoaded
	}

	if mode == ModeWholeMonth {
		for _, n := range p.bookings {
			if n > 0 {
				return ErrMonthHasBookings
			}
		}
		p.mode = mode
		p.clearSelectionLocked()
		for _, d := range availability.MonthDates(p.year, p.month, time.Local) {
			p.selected[availability.FormatLocalDate(d)] = d
		}
		return nil
	}

	p.mode = mode
	p.clearSelectionLocked()
	return nil
}

// Select выбирает дату. В multi-day повторный выбор снимает дату.
func (p *Page) Select(date time.Time) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.loaded {
		return ErrNotLoaded
	}
	date = availability.StartOfDay(date)
	key := availability.FormatLocalDate(date)

	switch p.mode {
	case ModeWholeMonth:
		return ErrSelectionLocked

	case ModeMultiDay:
		if _, ok := p.selected[key]; ok {
			delete(p.selected, key)
			p.generation++
			return nil
		}
		if len(p.selected) >= MaxMultiDay {
			return ErrTooManyDates
		}
		// все выбранные дни либо рабочие, либо отмененные
		if len(p.selected) > 0 {
			engine := p.engineLocked()
			if engine.IsBusinessOpenOn(p.selectedLocked()[0]) != engine.IsBusinessOpenOn(date) {
				return ErrIncompatibleDay
			}
		}
		p.selected[key] = date
		p.generation++
		return nil

	default:
		p.clearSelectionLocked()
		p.selected[key] = date
		return nil
	}
}

// Selected выбранные даты по возрастанию
func (p *Page) Selected() []time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selectedLocked()
}

func (p *Page) selectedLocked() []time.Time {
	dates := make([]time.Time, 0, len(p.selected))
	for _, d := range p.selected {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// SelectStaff выбирает сотрудника; nil переключает в режим General
func (p *Page) SelectStaff(staffID *int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if staffID != nil && !p.hasStaffLocked(*staffID) {
		return ErrUnknownStaff
	}
	p.staffID = staffID
	p.generation++
	return nil
}

// MinOpeningTime минимальное время начала слотов
func (p *Page) MinOpeningTime() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.minOpening
}

func (p *Page) hasStaffLocked(id int64) bool {
	for _, s := range p.staff {
		if s.ID == id {
			return true
		}
	}
	return false
}

func (p *Page) clearSelectionLocked() {
	p.selected = map[string]time.Time{}
	p.generation++
}
