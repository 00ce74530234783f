package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/maxturnos/turnos-service/internal/availability"
	"github.com/maxturnos/turnos-service/internal/integrations/turnosapi"
	authModels "github.com/maxturnos/turnos-service/internal/service/auth/models"
	"github.com/maxturnos/turnos-service/internal/session"
	"github.com/maxturnos/turnos-service/internal/wizard"
)

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "contraseña")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errors.New("Email y contraseña son obligatorios")
	}

	resp, err := a.client.Login(ctx, *email, *password)
	var nf *turnosapi.BusinessNotFoundError
	if errors.As(err, &nf) {
		// администратор без бизнеса: сессия переходит в состояние восстановления
		if saveErr := a.sessions.Save(&session.Session{BusinessNotFound: &session.BusinessNotFound{
			Message:       nf.Message,
			Email:         nf.Email,
			NombreNegocio: nf.BusinessName,
		}}); saveErr != nil {
			a.log.Error("login: save session: %v", saveErr)
		}
		return err
	}
	if err != nil {
		return err
	}

	if err := a.sessions.Save(&session.Session{User: &session.User{UserResponse: resp.Usuario, Token: resp.Token}}); err != nil {
		return err
	}
	fmt.Printf("Hola, %s (%s)\n", resp.Usuario.Nombre, resp.Usuario.Rol)
	return nil
}

func runRegister(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	req := authModels.RegisterRequest{TipoRegistro: "usuario"}
	fs.StringVar(&req.Nombre, "nombre", "", "nombre")
	fs.StringVar(&req.Apellido, "apellido", "", "apellido")
	fs.StringVar(&req.Email, "email", "", "email")
	fs.StringVar(&req.Password, "password", "", "contraseña")
	fs.StringVar(&req.NombreNegocio, "negocio", "", "nombre del negocio (registro de dueño)")
	confirm := fs.String("confirmar", "", "repetir contraseña")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// проверки до сети
	if req.Nombre == "" || req.Email == "" || req.Password == "" {
		return errors.New("Nombre, email y contraseña son obligatorios")
	}
	if *confirm != "" && *confirm != req.Password {
		return errors.New("Las contraseñas no coinciden")
	}
	if req.NombreNegocio != "" {
		req.TipoRegistro = "negocio"
	}

	user, err := a.client.Register(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("Cuenta creada: %s\n", user.Email)
	return nil
}

func runLogout(_ context.Context, a *app, _ []string) error {
	a.client.Logout()
	return a.sessions.Clear()
}

func runWhoAmI(_ context.Context, a *app, _ []string) error {
	switch {
	case a.session.BusinessNotFound != nil:
		nf := a.session.BusinessNotFound
		fmt.Printf("%s\nEmail: %s\nNegocio: %s\n", nf.Message, nf.Email, nf.NombreNegocio)
	case a.session.LoggedIn():
		u := a.session.User
		fmt.Printf("%s %s <%s> rol=%s", u.Nombre, u.Apellido, u.Email, u.Rol)
		if code := a.session.BusinessCode(); code != "" {
			fmt.Printf(" negocio=%s", code)
		}
		if u.IsSuperAdmin {
			fmt.Print(" superadmin")
		}
		fmt.Println()
	default:
		fmt.Println("Sin sesión")
	}
	return nil
}

func runStorefront(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("vitrina", flag.ContinueOnError)
	code := fs.String("negocio", "", "código del negocio")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *code == "" {
		return errors.New("falta -negocio")
	}

	b, err := a.shop.Business(ctx, *code)
	if err != nil {
		return err
	}
	services, err := a.shop.Services(ctx, *code)
	if err != nil {
		return err
	}
	staff, err := a.shop.Staff(ctx, *code)
	if err != nil {
		return err
	}
	reviews, err := a.shop.Reviews(ctx, *code)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s) %s-%s, sábados hasta %s\n", b.Nombre, b.Codigo, b.Horarios.Inicio, b.Horarios.Fin, b.Horarios.FinSabado)
	fmt.Println("\nServicios:")
	for _, s := range services {
		fmt.Printf("  [%d] %s  %s  %s\n", s.ID, s.Nombre, s.Duracion, s.Precio)
	}
	fmt.Println("\nProfesionales:")
	for _, s := range staff {
		fmt.Printf("  [%d] %s  %s\n", s.ID, s.Nombre, s.Rol)
	}
	fmt.Printf("\nReseñas: %d\n", len(reviews))
	return nil
}

// runBook проходит мастер бронирования; без -hora печатает свободное время
func runBook(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("reservar", flag.ContinueOnError)
	code := fs.String("negocio", "", "código del negocio")
	serviceID := fs.Int64("servicio", 0, "id del servicio")
	rawDate := fs.String("fecha", "", "fecha AAAA-MM-DD")
	staffID := fs.Int64("profesional", 0, "id del profesional")
	hhmm := fs.String("hora", "", "hora HH:MM")
	notes := fs.String("notas", "", "notas (máx. 250)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *code == "" {
		return errors.New("falta -negocio")
	}

	w := wizard.New(*code, a.shop, a.client, a.sessions, a.log)
	if err := w.Start(ctx); err != nil {
		return err
	}

	if *serviceID == 0 || *rawDate == "" {
		fmt.Println("Fechas disponibles:")
		for _, d := range w.Dates() {
			fmt.Printf("  %s  %s\n", d.Key, d.Label)
		}
		return nil
	}

	date, ok := availability.ParseLocalDate(*rawDate)
	if !ok {
		return fmt.Errorf("fecha inválida: %s", *rawDate)
	}
	if err := w.ChooseService(*serviceID); err != nil {
		return err
	}
	if err := w.ChooseDate(date); err != nil {
		return err
	}
	if *staffID == 0 {
		return errors.New("falta -profesional")
	}
	if err := w.ChooseStaff(ctx, *staffID); err != nil {
		return err
	}
	if *hhmm == "" {
		fmt.Printf("Horarios disponibles: %s\n", strings.Join(w.Slots(), " "))
		return nil
	}
	if err := w.ChooseTime(*hhmm); err != nil {
		return err
	}
	if err := w.SetNotes(*notes); err != nil {
		return err
	}

	conf, err := w.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Println("¡Reserva Confirmada!")
	fmt.Printf("  Servicio:    %s\n", conf.Service)
	fmt.Printf("  Fecha:       %s\n", conf.DateLabel)
	fmt.Printf("  Hora:        %s\n", conf.Time)
	fmt.Printf("  Profesional: %s\n", conf.Staff)
	fmt.Printf("  Nº reserva:  %d\n", conf.BookingID)
	return nil
}

func runMyBookings(ctx context.Context, a *app, _ []string) error {
	list, err := a.client.MyBookings(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No tenés reservas")
		return nil
	}
	for _, b := range list {
		fmt.Printf("[%d] %s %s  %s con %s  %s  (%s)\n",
			b.ID, b.Fecha, b.Hora, b.Servicio.Name, b.Profesional.Name, b.Servicio.Price, b.Estado)
	}
	return nil
}

func runCancelBooking(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("cancelar", flag.ContinueOnError)
	id := fs.Int64("id", 0, "id de la reserva")
	note := fs.String("nota", "", "motivo")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return errors.New("falta -id")
	}

	var nota *string
	if *note != "" {
		nota = note
	}
	b, err := a.client.CancelBooking(ctx, *id, nota)
	if err != nil {
		return err
	}
	fmt.Printf("Reserva %d: %s\n", b.ID, b.Estado)
	return nil
}

func runReceipt(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("comprobante", flag.ContinueOnError)
	id := fs.Int64("id", 0, "id de la reserva")
	out := fs.String("out", "", "archivo PDF de salida")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 || *out == "" {
		return errors.New("faltan -id y -out")
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := a.client.Receipt(ctx, *id, f); err != nil {
		f.Close()
		_ = os.Remove(*out)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Comprobante guardado en %s\n", *out)
	return nil
}
