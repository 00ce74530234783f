package availability

import (
	"time"

	"github.com/maxturnos/turnos-service/internal/domain"
)

// ClosingRule время закрытия по умолчанию и переопределения по дням недели
type ClosingRule struct {
	Default   string
	Overrides map[time.Weekday]string
}

// NewClosingRule правило с отдельным временем закрытия в субботу
func NewClosingRule(defaultClosing, saturdayClosing string) ClosingRule {
	rule := ClosingRule{Default: defaultClosing, Overrides: map[time.Weekday]string{}}
	if saturdayClosing != "" {
		rule.Overrides[time.Saturday] = saturdayClosing
	}
	return rule
}

// For время закрытия для дня недели
func (r ClosingRule) For(wd time.Weekday) string {
	if c, ok := r.Overrides[wd]; ok {
		return c
	}
	return r.Default
}

// Config входные данные движка доступности
type Config struct {
	OpenDays            []int // 0 = воскресенье ... 6 = суббота
	OpeningTime         string
	ClosingTime         string
	SaturdayClosingTime string
	CancelledDates      []time.Time
	RestoredDates       []time.Time // открытые владельцем воскресенья
	Now                 func() time.Time
}

// Engine предикаты доступности дат.
// Не хранит состояния итерации: каждый вызов пересчитывает результат заново.
type Engine struct {
	openDays  map[time.Weekday]bool
	opening   string
	closing   ClosingRule
	cancelled map[string]struct{}
	restored  map[string]struct{}
	now       func() time.Time
}

// NewEngine создает движок
func NewEngine(cfg Config) *Engine {
	e := &Engine{
		openDays:  make(map[time.Weekday]bool, len(cfg.OpenDays)),
		opening:   cfg.OpeningTime,
		closing:   NewClosingRule(cfg.ClosingTime, cfg.SaturdayClosingTime),
		cancelled: make(map[string]struct{}, len(cfg.CancelledDates)),
		restored:  make(map[string]struct{}, len(cfg.RestoredDates)),
		now:       cfg.Now,
	}
	if e.opening == "" {
		e.opening = domain.DefaultOpeningTime
	}
	if e.closing.Default == "" {
		e.closing.Default = domain.DefaultClosingTime
	}
	if e.now == nil {
		e.now = time.Now
	}
	for _, d := range cfg.OpenDays {
		e.openDays[time.Weekday(d)] = true
	}
	for _, d := range cfg.CancelledDates {
		e.cancelled[FormatLocalDate(d)] = struct{}{}
	}
	for _, d := range cfg.RestoredDates {
		e.restored[FormatLocalDate(d)] = struct{}{}
	}
	return e
}

// ForBusiness собирает движок из данных бизнеса
func ForBusiness(b *domain.Business, cancelled []*domain.CancelledDay, restored []time.Time, now func() time.Time) *Engine {
	cfg := Config{
		OpenDays:            b.OpenDays,
		OpeningTime:         b.OpeningTime,
		ClosingTime:         b.ClosingTime,
		SaturdayClosingTime: b.SaturdayClosingTime,
		RestoredDates:       restored,
		Now:                 now,
	}
	for _, c := range cancelled {
		cfg.CancelledDates = append(cfg.CancelledDates, c.Day)
	}
	return NewEngine(cfg)
}

// Now текущее время движка
func (e *Engine) Now() time.Time {
	return e.now()
}

// OpeningTime время открытия
func (e *Engine) OpeningTime() string {
	return e.opening
}

// EffectiveClosingTime время закрытия для даты (суббота закрывается раньше)
func (e *Engine) EffectiveClosingTime(date time.Time) string {
	return e.closing.For(date.Weekday())
}

// IsCancelled дата отменена владельцем (сравнение по календарной дате)
func (e *Engine) IsCancelled(date time.Time) bool {
	_, ok := e.cancelled[FormatLocalDate(date)]
	return ok
}

// IsRestored дата явно открыта владельцем
func (e *Engine) IsRestored(date time.Time) bool {
	_, ok := e.restored[FormatLocalDate(date)]
	return ok
}

// IsAutoClosed воскресенье, закрытое автоматически (не рабочий день и не восстановлено)
func (e *Engine) IsAutoClosed(date time.Time) bool {
	return date.Weekday() == time.Sunday && !e.openDays[time.Sunday] && !e.IsRestored(date)
}

// IsBusinessOpenOn работает ли бизнес в дату
func (e *Engine) IsBusinessOpenOn(date time.Time) bool {
	if e.IsCancelled(date) {
		return false
	}
	if e.IsRestored(date) {
		return true
	}
	return e.openDays[date.Weekday()]
}

// IsTodayPastClosing true, если сегодняшнее время закрытия уже наступило
func (e *Engine) IsTodayPastClosing() bool {
	now := e.now()
	closing, ok := TimeToMinutes(e.EffectiveClosingTime(now))
	if !ok {
		return false
	}
	return now.Hour()*60+now.Minute() >= closing
}

// BookableDate дата, доступная для бронирования
type BookableDate struct {
	Date  time.Time
	Key   string // "YYYY-MM-DD"
	Label string // "lunes, 3 de noviembre de 2025"
}

// GenerateBookableDates даты от сегодня (или завтра, если сегодня уже закрыто)
// до horizonDays включительно, только рабочие и не отменённые
func (e *Engine) GenerateBookableDates(horizonDays int) []BookableDate {
	today := StartOfDay(e.now())

	start := 0
	if e.IsTodayPastClosing() {
		start = 1
	}

	dates := make([]BookableDate, 0, horizonDays)
	for offset := start; offset <= horizonDays; offset++ {
		d := AddDays(today, offset)
		if !e.IsBusinessOpenOn(d) {
			continue
		}
		dates = append(dates, BookableDate{Date: d, Key: FormatLocalDate(d), Label: SpanishLongDate(d)})
	}
	return dates
}

// IsPast дата раньше сегодняшней
func (e *Engine) IsPast(date time.Time) bool {
	return StartOfDay(date).Before(StartOfDay(e.now()))
}

// IsBookableSlot слот на сегодня должен начинаться строго позже текущего времени
func (e *Engine) IsBookableSlot(date time.Time, hhmm string) bool {
	if e.IsPast(date) || !e.IsBusinessOpenOn(date) {
		return false
	}
	m, ok := TimeToMinutes(hhmm)
	if !ok {
		return false
	}
	now := e.now()
	if SameDay(date, now) {
		return m > now.Hour()*60+now.Minute()
	}
	return true
}
