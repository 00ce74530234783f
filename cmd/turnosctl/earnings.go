package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/maxturnos/turnos-service/internal/availability"
	"github.com/maxturnos/turnos-service/internal/earnings"
)

const (
	chartWidth  = 720
	chartHeight = 260
)

// runEarnings строит отчет по бронированиям месяца на клиенте
func runEarnings(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("ingresos", flag.ContinueOnError)
	code := fs.String("negocio", "", "código del negocio")
	mode := fs.String("modo", string(earnings.ModeMonth), "dia, dias, semana o mes")
	rawDate := fs.String("fecha", "", "fecha AAAA-MM-DD (por defecto hoy)")
	rawDates := fs.String("fechas", "", "fechas para el modo dias")
	svgPath := fs.String("svg", "", "guardar el gráfico SVG en este archivo")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := a.businessCode(*code)
	if err != nil {
		return err
	}

	date := availability.StartOfDay(time.Now())
	if *rawDate != "" {
		d, ok := availability.ParseLocalDate(*rawDate)
		if !ok {
			return fmt.Errorf("fecha inválida: %q", *rawDate)
		}
		date = d
	}

	var rng earnings.Range
	switch earnings.Mode(*mode) {
	case earnings.ModeDay:
		rng = earnings.Day(date)
	case earnings.ModeWeek:
		rng = earnings.Week(date)
	case earnings.ModeMonth:
		rng = earnings.Month(date.Year(), date.Month(), time.Local)
	case earnings.ModeDays:
		dates, err := parseDates(*rawDates)
		if err != nil {
			return err
		}
		if len(dates) == 0 {
			return errors.New("falta -fechas")
		}
		rng = earnings.Days(dates)
	default:
		return fmt.Errorf("modo inválido: %q", *mode)
	}

	report, skipped, err := earnings.Load(ctx, a.client, c, rng)
	if err != nil {
		return err
	}
	if skipped > 0 {
		a.log.Warn("earnings %s: skipped %d malformed booking(s)", c, skipped)
	}

	for _, line := range earnings.Breakdown(report) {
		fmt.Println(line)
	}

	if *svgPath != "" {
		svg := earnings.RenderSVG(report, chartWidth, chartHeight)
		if err := os.WriteFile(*svgPath, []byte(svg), 0o644); err != nil {
			return err
		}
		fmt.Printf("Gráfico guardado en %s\n", *svgPath)
	}
	return nil
}
