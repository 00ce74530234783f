package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/maxturnos/turnos-service/internal/config"
	"github.com/maxturnos/turnos-service/internal/integrations/turnosapi"
	"github.com/maxturnos/turnos-service/internal/session"
	"github.com/maxturnos/turnos-service/internal/storefront"
	"github.com/maxturnos/turnos-service/pkg/logger"
)

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"login":           {"login -email E -password P", runLogin},
	"register":        {"register -nombre N -apellido A -email E -password P [-negocio NOMBRE]", runRegister},
	"logout":          {"logout", runLogout},
	"whoami":          {"whoami", runWhoAmI},
	"vitrina":         {"vitrina -negocio C", runStorefront},
	"reservar":        {"reservar -negocio C -servicio ID -fecha F -profesional ID [-hora HH:MM] [-notas T]", runBook},
	"mis-reservas":    {"mis-reservas", runMyBookings},
	"cancelar":        {"cancelar -id N [-nota T]", runCancelBooking},
	"comprobante":     {"comprobante -id N -out archivo.pdf", runReceipt},
	"agenda":          {"agenda [-negocio C] -mes AAAA-MM", runMonth},
	"cancelar-dia":    {"cancelar-dia [-negocio C] -fechas F1,F2 [-motivo T]", runCancelDays},
	"restaurar-dia":   {"restaurar-dia [-negocio C] -fechas F1,F2", runRestoreDays},
	"horarios":        {"horarios [-negocio C] -fechas F1,F2 [-profesional ID]", runSlots},
	"bloquear":        {"bloquear [-negocio C] -fechas F1,F2 -hora HH:MM [-profesional ID] [-motivo T]", runBlock},
	"desbloquear":     {"desbloquear [-negocio C] -fechas F1,F2 -hora HH:MM [-profesional ID]", runUnblock},
	"cancelar-turnos": {"cancelar-turnos [-negocio C] -fecha F [-nota T]", runCancelDayBookings},
	"apertura":        {"apertura [-negocio C] -hora HH:MM [-fechas F1,F2]", runOpening},
	"ingresos":        {"ingresos [-negocio C] -modo dia|dias|semana|mes [-fecha F] [-fechas F1,F2] [-svg archivo.svg]", runEarnings},
}

// app зависимости команд
type app struct {
	cfg      *config.ClientConfig
	log      *logger.Logger
	client   *turnosapi.Client
	sessions session.Store
	session  *session.Session
	shop     *storefront.Cache
}

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	logLevel := flag.String("log-level", "warn", "log level (debug, info, warn, error)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}
	cmd, ok := commands[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "comando desconocido: %s\n\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}

	a, err := newApp(*configPath, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.run(ctx, a, flag.Args()[1:]); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, describe(err))
		}
		stop()
		os.Exit(1)
	}
}

func newApp(configPath, level string) (*app, error) {
	cfg, err := config.LoadClient(configPath)
	if err != nil {
		return nil, err
	}
	log := logger.NewWriter(os.Stderr, level)

	client := turnosapi.NewClient(config.NormalizeAPIURL(cfg.APIURL), time.Duration(cfg.Timeout)*time.Second, log)
	sessions := session.NewFileStore(cfg.SessionFile)
	sess, err := sessions.Load()
	if err != nil {
		return nil, err
	}
	if sess.LoggedIn() {
		client.SetToken(sess.User.Token)
	}

	return &app{
		cfg:      cfg,
		log:      log,
		client:   client,
		sessions: sessions,
		session:  sess,
		shop:     storefront.New(client, storefront.DefaultTTL, log),
	}, nil
}

// describe текст ошибки для пользователя
func describe(err error) string {
	var nf *turnosapi.BusinessNotFoundError
	switch {
	case errors.As(err, &nf):
		return fmt.Sprintf("%s\nEmail: %s\nNegocio: %s\nContactá al administrador de MaxTurnos para dar de alta el negocio.",
			nf.Message, nf.Email, nf.BusinessName)
	case errors.Is(err, context.Canceled):
		return "Operación cancelada"
	default:
		return err.Error()
	}
}

// businessCode код из флага или из сессии администратора
func (a *app) businessCode(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if code := a.session.BusinessCode(); code != "" {
		return code, nil
	}
	return "", errors.New("falta -negocio")
}

func usage() {
	fmt.Fprintf(os.Stderr, "uso: turnosctl [-config config.toml] [-log-level warn] <comando> [flags]\n\ncomandos:\n")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %s\n", commands[name].usage)
	}
}
