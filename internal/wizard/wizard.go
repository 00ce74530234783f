package wizard

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	createBooking "github.com/maxturnos/turnos-service/internal/api/handlers/create_booking"
	"github.com/maxturnos/turnos-service/internal/availability"
	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/internal/integrations/turnosapi"
	businessModels "github.com/maxturnos/turnos-service/internal/service/business/models"
	calendarModels "github.com/maxturnos/turnos-service/internal/service/calendar/models"
	catalogModels "github.com/maxturnos/turnos-service/internal/service/catalog/models"
)

// MaxNotesLength предел длины заметки к бронированию в символах
const MaxNotesLength = 250

// Step шаг мастера бронирования
type Step int

const (
	StepChooseService Step = iota + 1
	StepChooseDate
	StepChooseStaff
	StepChooseTime
	StepEnterNotes
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepChooseService:
		return "ChooseService"
	case StepChooseDate:
		return "ChooseDate"
	case StepChooseStaff:
		return "ChooseStaff"
	case StepChooseTime:
		return "ChooseTime"
	case StepEnterNotes:
		return "EnterNotes"
	case StepSubmitted:
		return "Submitted"
	default:
		return "Unknown"
	}
}

// Confirmation итог успешного бронирования
type Confirmation struct {
	BookingID int64
	Service   string
	Price     string
	Date      time.Time
	DateLabel string
	Time      string
	Staff     string
}

// Wizard мастер бронирования клиента: услуга, дата, сотрудник, время, заметка
type Wizard struct {
	code     string
	catalog  Catalog
	api      API
	sessions Sessions
	logger   Logger
	now      func() time.Time
	horizon  int

	mu       sync.Mutex
	started  bool
	business *businessModels.BusinessResponse
	services []catalogModels.ServiceResponse
	staff    []catalogModels.StaffResponse
	engine   *availability.Engine
	dates    []availability.BookableDate

	step         Step
	service      *catalogModels.ServiceResponse
	date         *availability.BookableDate
	member       *catalogModels.StaffResponse
	slots        []string
	slot         string
	notes        string
	confirmation *Confirmation
}

// New создает мастер для бизнеса code
func New(code string, catalog Catalog, api API, sessions Sessions, logger Logger) *Wizard {
	return &Wizard{
		code:     code,
		catalog:  catalog,
		api:      api,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
		horizon:  domain.DefaultBookingHorizonDays,
		step:     StepChooseService,
	}
}

// WithClock подменяет источник времени
func (w *Wizard) WithClock(now func() time.Time) *Wizard {
	w.now = now
	return w
}

// Start загружает услуги, сотрудников, настройки бизнеса и отмененные дни
func (w *Wizard) Start(ctx context.Context) error {
	today := availability.StartOfDay(w.now())

	var (
		business *businessModels.BusinessResponse
		services []catalogModels.ServiceResponse
		staff    []catalogModels.StaffResponse
		days     *calendarModels.DaysResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		business, err = w.catalog.Business(gctx, w.code)
		return err
	})
	g.Go(func() (err error) {
		services, err = w.catalog.Services(gctx, w.code)
		return err
	})
	g.Go(func() (err error) {
		staff, err = w.catalog.Staff(gctx, w.code)
		return err
	})
	g.Go(func() (err error) {
		days, err = w.api.CancelledDays(gctx, w.code, today, availability.AddDays(today, w.horizon))
		return err
	})
	if err := g.Wait(); err != nil {
		w.logger.Error("wizard %s: start: %v", w.code, err)
		return err
	}

	cfg := availability.Config{
		OpenDays:            business.DiasDisponibles,
		OpeningTime:         business.Horarios.Inicio,
		ClosingTime:         business.Horarios.Fin,
		SaturdayClosingTime: business.Horarios.FinSabado,
		Now:                 w.now,
	}
	for _, d := range days.DiasCancelados {
		if t, ok := availability.ParseLocalDate(d.Fecha); ok {
			cfg.CancelledDates = append(cfg.CancelledDates, t)
		}
	}
	for _, key := range days.DomingosRestaurados {
		if t, ok := availability.ParseLocalDate(key); ok {
			cfg.RestoredDates = append(cfg.RestoredDates, t)
		}
	}
	engine := availability.NewEngine(cfg)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.business = business
	w.services = services
	w.staff = staff
	w.engine = engine
	w.dates = engine.GenerateBookableDates(w.horizon)
	w.started = true
	w.resetLocked()
	return nil
}

// Step текущий шаг
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Business настройки бизнеса, загруженные при старте
func (w *Wizard) Business() *businessModels.BusinessResponse {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.business
}

// Services услуги бизнеса
func (w *Wizard) Services() []catalogModels.ServiceResponse {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]catalogModels.ServiceResponse(nil), w.services...)
}

// Staff сотрудники бизнеса
func (w *Wizard) Staff() []catalogModels.StaffResponse {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]catalogModels.StaffResponse(nil), w.staff...)
}

// Dates даты, доступные для бронирования
func (w *Wizard) Dates() []availability.BookableDate {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]availability.BookableDate(nil), w.dates...)
}

// Slots свободное время выбранного сотрудника в выбранную дату
func (w *Wizard) Slots() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.slots...)
}

// Notes текущая заметка
func (w *Wizard) Notes() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.notes
}

// Confirmation итог после успешной отправки, иначе nil
func (w *Wizard) Confirmation() *Confirmation {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.confirmation
}

// ChooseService выбирает услугу и переходит к выбору даты
func (w *Wizard) ChooseService(id int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.expectLocked(StepChooseService); err != nil {
		return err
	}
	for i := range w.services {
		if w.services[i].ID == id {
			s := w.services[i]
			w.service = &s
			w.step = StepChooseDate
			return nil
		}
	}
	return ErrUnknownService
}

// ChooseDate выбирает дату. Ранее загруженное время сбрасывается.
func (w *Wizard) ChooseDate(date time.Time) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.expectLocked(StepChooseDate); err != nil {
		return err
	}
	key := availability.FormatLocalDate(date)
	for i := range w.dates {
		if w.dates[i].Key == key {
			d := w.dates[i]
			w.date = &d
			w.slots = nil
			w.slot = ""
			w.step = StepChooseStaff
			return nil
		}
	}
	return ErrDateNotBookable
}

// ChooseStaff выбирает сотрудника и загружает его свободное время
func (w *Wizard) ChooseStaff(ctx context.Context, id int64) error {
	w.mu.Lock()
	if err := w.expectLocked(StepChooseStaff); err != nil {
		w.mu.Unlock()
		return err
	}
	var member *catalogModels.StaffResponse
	for i := range w.staff {
		if w.staff[i].ID == id {
			m := w.staff[i]
			member = &m
			break
		}
	}
	if member == nil {
		w.mu.Unlock()
		return ErrUnknownStaff
	}
	date := w.date.Date
	serviceID := w.service.ID
	engine := w.engine
	w.mu.Unlock()

	resp, err := w.api.AvailableSlots(ctx, turnosapi.SlotsQuery{
		BusinessCode: w.code,
		Date:         date,
		StaffID:      id,
		ServiceID:    &serviceID,
	})
	if err != nil {
		w.logger.Warn("wizard %s: slots staff=%d date=%s: %v", w.code, id, availability.FormatLocalDate(date), err)
		return err
	}

	slots := make([]string, 0, len(resp.HorariosDisponibles))
	for _, s := range resp.HorariosDisponibles {
		if engine.IsBookableSlot(date, s) {
			slots = append(slots, s)
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	// пока шел запрос, пользователь мог вернуться назад
	if w.step != StepChooseStaff || w.date == nil || !availability.SameDay(w.date.Date, date) {
		return ErrWrongStep
	}
	w.member = member
	w.slots = slots
	w.slot = ""
	w.step = StepChooseTime
	return nil
}

// ChooseTime выбирает время из загруженного списка
func (w *Wizard) ChooseTime(hhmm string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.expectLocked(StepChooseTime); err != nil {
		return err
	}
	for _, s := range w.slots {
		if s == hhmm {
			w.slot = hhmm
			w.step = StepEnterNotes
			return nil
		}
	}
	return ErrSlotNotAvailable
}

// SetNotes сохраняет заметку к бронированию
func (w *Wizard) SetNotes(notes string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.expectLocked(StepEnterNotes); err != nil {
		return err
	}
	if utf8.RuneCountInString(notes) > MaxNotesLength {
		return ErrNotesTooLong
	}
	w.notes = notes
	return nil
}

// Submit создает бронирование. Без вошедшего пользователя возвращает
// ErrLoginRequired и оставляет выбор нетронутым.
func (w *Wizard) Submit(ctx context.Context) (*Confirmation, error) {
	w.mu.Lock()
	if err := w.expectLocked(StepEnterNotes); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	service, date, member, hhmm, notes := *w.service, *w.date, *w.member, w.slot, w.notes
	w.mu.Unlock()

	sess, err := w.sessions.Load()
	if err != nil {
		return nil, err
	}
	if !sess.LoggedIn() || sess.Email() == "" {
		return nil, ErrLoginRequired
	}

	req := createBooking.CreateBookingRequest{
		Establecimiento: w.code,
		Fecha:           date.Key,
		Hora:            hhmm,
		Servicio:        createBooking.RefDTO{ID: service.ID},
		Profesional:     createBooking.RefDTO{ID: member.ID},
	}
	if notes != "" {
		req.Notas = &notes
	}

	booking, err := w.api.CreateBooking(ctx, req)
	if err != nil {
		w.logger.Warn("wizard %s: create booking %s %s: %v", w.code, date.Key, hhmm, err)
		return nil, err
	}

	conf := &Confirmation{
		BookingID: booking.ID,
		Service:   service.Nombre,
		Price:     service.Precio,
		Date:      date.Date,
		DateLabel: date.Label,
		Time:      hhmm,
		Staff:     member.Nombre,
	}

	w.mu.Lock()
	w.confirmation = conf
	w.step = StepSubmitted
	w.mu.Unlock()

	w.logger.Info("wizard %s: booking %d created for %s", w.code, booking.ID, sess.Email())
	return conf, nil
}

// Back возвращает на предыдущий шаг. Выбор сохраняется; с первого и последнего шага перехода нет.
func (w *Wizard) Back() Step {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step > StepChooseService && w.step < StepSubmitted {
		w.step--
	}
	return w.step
}

// BookAnother сбрасывает мастер к выбору услуги
func (w *Wizard) BookAnother() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resetLocked()
}

func (w *Wizard) expectLocked(step Step) error {
	if !w.started {
		return ErrNotStarted
	}
	if w.step != step {
		return ErrWrongStep
	}
	return nil
}

func (w *Wizard) resetLocked() {
	w.step = StepChooseService
	w.service = nil
	w.date = nil
	w.member = nil
	w.slots = nil
	w.slot = ""
	w.notes = ""
	w.confirmation = nil
}
