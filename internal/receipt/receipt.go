package receipt

import (
	"bytes"
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/maxturnos/turnos-service/internal/availability"
	"github.com/maxturnos/turnos-service/internal/domain"
)

const qrSize = 256

// Payload содержимое QR-кода: проверяется на ресепшене по коду бизнеса и ID брони
func Payload(b *domain.Booking) string {
	return fmt.Sprintf("maxturnos|%s|%d|%s|%s",
		b.BusinessCode, b.ID, b.BookingDate.Format(domain.DateFormat), b.StartTime)
}

// Render пишет PDF-комплект подтверждения брони в w
func Render(w io.Writer, business *domain.Business, b *domain.Booking) error {
	qrPNG, err := qrcode.Encode(Payload(b), qrcode.Medium, qrSize)
	if err != nil {
		return fmt.Errorf("encode qr: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, tr(business.Name))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, tr("Comprobante de reserva #"+fmt.Sprint(b.ID)))
	pdf.Ln(12)

	status := "Confirmada"
	if !b.IsActive() {
		status = "Cancelada"
	}

	hours := b.StartTime.String()
	if end, err := b.EndTime(); err == nil {
		hours += " a " + end.String()
	}

	lines := [][2]string{
		{"Fecha", availability.SpanishLongDate(b.BookingDate)},
		{"Hora", hours},
		{"Servicio", b.ServiceName},
		{"Duración", b.ServiceDuration},
		{"Precio", b.ServicePrice},
		{"Profesional", b.StaffName},
		{"Cliente", b.CustomerEmail},
		{"Estado", status},
	}
	if b.Note != nil && *b.Note != "" {
		lines = append(lines, [2]string{"Nota", *b.Note})
	}

	for _, l := range lines {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(35, 8, tr(l[0]+":"))
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(0, 8, tr(l[1]))
		pdf.Ln(8)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 30, 45, 45, false, opts, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
