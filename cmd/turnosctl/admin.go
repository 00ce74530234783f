package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/maxturnos/turnos-service/internal/availability"
	"github.com/maxturnos/turnos-service/internal/schedule"
)

// scheduleFlags флаги, общие для команд страницы расписания
type scheduleFlags struct {
	code    *string
	dates   *string
	staffID *int64
}

func newScheduleFlags(fs *flag.FlagSet) scheduleFlags {
	return scheduleFlags{
		code:    fs.String("negocio", "", "código del negocio (por defecto el de la sesión)"),
		dates:   fs.String("fechas", "", "fechas AAAA-MM-DD separadas por coma, todas del mismo mes"),
		staffID: fs.Int64("profesional", 0, "id del profesional (0 = General)"),
	}
}

// openPage загружает месяц выбранных дат и выбирает их на странице
func (a *app) openPage(ctx context.Context, f scheduleFlags) (*schedule.Page, error) {
	code, err := a.businessCode(*f.code)
	if err != nil {
		return nil, err
	}
	dates, err := parseDates(*f.dates)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, errors.New("falta -fechas")
	}
	year, month := dates[0].Year(), dates[0].Month()
	for _, d := range dates[1:] {
		if d.Year() != year || d.Month() != month {
			return nil, errors.New("todas las fechas deben ser del mismo mes")
		}
	}

	page := schedule.New(a.client, code, a.log)
	if err := page.Load(ctx, year, month); err != nil {
		return nil, err
	}
	if len(dates) > 1 {
		if err := page.SetMode(schedule.ModeMultiDay); err != nil {
			return nil, err
		}
	}
	for _, d := range dates {
		if err := page.Select(d); err != nil {
			return nil, fmt.Errorf("%s: %w", availability.FormatLocalDate(d), err)
		}
	}
	if f.staffID != nil && *f.staffID != 0 {
		if err := page.SelectStaff(f.staffID); err != nil {
			return nil, err
		}
	}
	return page, nil
}

func runMonth(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("agenda", flag.ContinueOnError)
	code := fs.String("negocio", "", "código del negocio")
	rawMonth := fs.String("mes", "", "mes AAAA-MM")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := a.businessCode(*code)
	if err != nil {
		return err
	}
	year, month, err := parseMonth(*rawMonth)
	if err != nil {
		return err
	}

	page := schedule.New(a.client, c, a.log)
	if err := page.Load(ctx, year, month); err != nil {
		return err
	}

	fmt.Printf("%s %d (apertura mínima %s)\n", availability.SpanishMonth(month), year, page.MinOpeningTime())
	for _, d := range page.MonthView() {
		state := "abierto"
		switch {
		case d.Cancelled:
			state = "cancelado"
			if d.Reason != nil {
				state += ": " + *d.Reason
			}
		case d.AutoClosed:
			state = "cerrado"
		case d.Restored:
			state = "abierto (restaurado)"
		case !d.Open:
			state = "cerrado"
		}
		line := fmt.Sprintf("  %s %-9s %s", d.Key, availability.SpanishWeekday(d.Date.Weekday()), state)
		if d.Bookings > 0 {
			line += fmt.Sprintf("  [%d reserva(s)]", d.Bookings)
		}
		fmt.Println(line)
	}
	return nil
}

func runCancelDays(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("cancelar-dia", flag.ContinueOnError)
	f := newScheduleFlags(fs)
	reason := fs.String("motivo", "", "motivo")
	if err := fs.Parse(args); err != nil {
		return err
	}
	page, err := a.openPage(ctx, f)
	if err != nil {
		return err
	}

	results, err := page.CancelSelected(ctx, *reason)
	printDayResults("cancelado", results)
	return err
}

func runRestoreDays(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("restaurar-dia", flag.ContinueOnError)
	f := newScheduleFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	page, err := a.openPage(ctx, f)
	if err != nil {
		return err
	}

	results, err := page.RestoreSelected(ctx)
	printDayResults("restaurado", results)
	return err
}

func runSlots(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("horarios", flag.ContinueOnError)
	f := newScheduleFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	page, err := a.openPage(ctx, f)
	if err != nil {
		return err
	}

	view, err := page.Slots(ctx)
	if err != nil {
		return err
	}
	printSlots(view)
	return nil
}

func runBlock(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("bloquear", flag.ContinueOnError)
	f := newScheduleFlags(fs)
	hhmm := fs.String("hora", "", "hora HH:MM")
	reason := fs.String("motivo", "", "motivo")
	if err := fs.Parse(args); err != nil {
		return err
	}
	page, err := a.openPage(ctx, f)
	if err != nil {
		return err
	}

	res, err := page.BlockSlot(ctx, *hhmm, *reason)
	if err != nil {
		return err
	}
	fmt.Printf("Bloqueados: %d, fallidos: %d\n", res.Succeeded, res.Failed)
	return nil
}

func runUnblock(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("desbloquear", flag.ContinueOnError)
	f := newScheduleFlags(fs)
	hhmm := fs.String("hora", "", "hora HH:MM")
	if err := fs.Parse(args); err != nil {
		return err
	}
	page, err := a.openPage(ctx, f)
	if err != nil {
		return err
	}

	res, err := page.UnblockSlot(ctx, *hhmm)
	if err != nil {
		return err
	}
	fmt.Printf("Desbloqueados: %d, fallidos: %d\n", res.Succeeded, res.Failed)
	return nil
}

func runCancelDayBookings(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("cancelar-turnos", flag.ContinueOnError)
	code := fs.String("negocio", "", "código del negocio")
	rawDate := fs.String("fecha", "", "fecha AAAA-MM-DD")
	note := fs.String("nota", "", "nota para los clientes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := a.businessCode(*code)
	if err != nil {
		return err
	}
	date, ok := availability.ParseLocalDate(*rawDate)
	if !ok {
		return fmt.Errorf("fecha inválida: %q", *rawDate)
	}

	page := schedule.New(a.client, c, a.log)
	if err := page.Load(ctx, date.Year(), date.Month()); err != nil {
		return err
	}

	proj, done, err := page.CancelAllBookings(ctx, date, *note)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d reserva(s) -> %d\n", availability.SpanishLongDate(proj.Date), proj.Before, proj.After)

	rec := <-done
	if rec.Err != nil {
		return rec.Err
	}
	fmt.Printf("Canceladas: %d, fallidas: %d\n", rec.Cancelled, rec.Failed)
	if !rec.Confirmed {
		fmt.Printf("Atención: quedan %d reserva(s) activas\n", rec.Remaining)
	}
	return nil
}

func runOpening(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("apertura", flag.ContinueOnError)
	f := newScheduleFlags(fs)
	hhmm := fs.String("hora", "", "hora mínima de apertura HH:MM")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var page *schedule.Page
	if *f.dates != "" {
		p, err := a.openPage(ctx, f)
		if err != nil {
			return err
		}
		page = p
	} else {
		code, err := a.businessCode(*f.code)
		if err != nil {
			return err
		}
		now := time.Now()
		page = schedule.New(a.client, code, a.log)
		if err := page.Load(ctx, now.Year(), now.Month()); err != nil {
			return err
		}
	}

	view, err := page.SetMinOpeningTime(ctx, *hhmm)
	if err != nil {
		return err
	}
	fmt.Printf("Apertura mínima: %s\n", page.MinOpeningTime())
	if view != nil {
		printSlots(view)
	}
	return nil
}

func printDayResults(verb string, results []schedule.DayResult) {
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("  %s: error: %v\n", availability.FormatLocalDate(r.Date), r.Err)
			continue
		}
		fmt.Printf("  %s: %s\n", availability.FormatLocalDate(r.Date), verb)
	}
}

func printSlots(view *schedule.SlotsView) {
	if view.General {
		fmt.Println("Vista General (todos los profesionales)")
	}
	fmt.Printf("Disponibles: %s\n", strings.Join(view.Available, " "))
	if len(view.Blocked) > 0 {
		fmt.Printf("Bloqueados:  %s\n", strings.Join(view.Blocked, " "))
	}
	if view.Failed > 0 {
		fmt.Printf("Consultas fallidas: %d de %d\n", view.Failed, view.Requests)
	}
}

func parseDates(raw string) ([]time.Time, error) {
	var dates []time.Time
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, ok := availability.ParseLocalDate(part)
		if !ok {
			return nil, fmt.Errorf("fecha inválida: %q", part)
		}
		dates = append(dates, d)
	}
	return dates, nil
}

func parseMonth(raw string) (int, time.Month, error) {
	if raw == "" {
		now := time.Now()
		return now.Year(), now.Month(), nil
	}
	d, ok := availability.ParseLocalDate(raw + "-01")
	if !ok {
		return 0, 0, fmt.Errorf("mes inválido: %q", raw)
	}
	return d.Year(), d.Month(), nil
}
