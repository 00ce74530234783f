package bookings

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/maxturnos/turnos-service/internal/api/handlers"
	"github.com/maxturnos/turnos-service/internal/api/middleware"
	bookingsService "github.com/maxturnos/turnos-service/internal/service/bookings"
)

const (
	msgInvalidBookingID    = "id de reserva inválido"
	msgBusinessRequired    = "establecimiento es requerido"
	msgInvalidDate         = "fecha inválida, se espera YYYY-MM-DD"
	msgInvalidStaffID      = "profesionalId inválido"
	msgInvalidMonth        = "anio y mes son requeridos"
	msgBookingNotFound     = "Reserva no encontrada"
	msgBusinessNotFound    = "Negocio no encontrado"
	msgAccessDenied        = "No tienes permiso para ver esta reserva"
	msgInvalidInput        = "Parámetros inválidos"
	receiptContentType     = "application/pdf"
	receiptFilenamePattern = "comprobante-%d.pdf"
)

// Handler чтение бронирований: списки, месяц, отдельное бронирование и PDF-квитанция
type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/reservas?establecimiento=&fecha=&profesionalId=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())
	q := r.URL.Query()

	code := q.Get("establecimiento")
	if code == "" {
		handlers.RespondBadRequest(w, msgBusinessRequired)
		return
	}
	var day *time.Time
	if raw := q.Get("fecha"); raw != "" {
		d, err := handlers.ParseDate(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		day = &d
	}
	staffID, err := handlers.QueryInt64(r, "profesionalId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	list, err := h.service.List(r.Context(), actor, code, day, staffID)
	if err != nil {
		h.fail(w, "GET /reservas", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, list)
}

// ListMine GET /api/reservas/mias
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())

	list, err := h.service.ListMine(r.Context(), actor)
	if err != nil {
		h.fail(w, "GET /reservas/mias", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, list)
}

// ByMonth GET /api/reservas/por-mes?establecimiento=&anio=&mes=
func (h *Handler) ByMonth(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())
	q := r.URL.Query()

	code := q.Get("establecimiento")
	if code == "" {
		handlers.RespondBadRequest(w, msgBusinessRequired)
		return
	}
	year, errYear := strconv.Atoi(q.Get("anio"))
	month, errMonth := strconv.Atoi(q.Get("mes"))
	if errYear != nil || errMonth != nil {
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	resp, err := h.service.ByMonth(r.Context(), actor, code, year, time.Month(month))
	if err != nil {
		h.fail(w, "GET /reservas/por-mes", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Get GET /api/reservas/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())

	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}
	resp, err := h.service.GetByID(r.Context(), actor, id)
	if err != nil {
		h.fail(w, fmt.Sprintf("GET /reservas/%d", id), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Receipt GET /api/reservas/{id}/comprobante
func (h *Handler) Receipt(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetPrincipal(r.Context())

	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// PDF собирается в буфер, чтобы ошибка рендера не оставила полуответ
	var buf bytes.Buffer
	if err := h.service.Receipt(r.Context(), actor, id, &buf); err != nil {
		h.fail(w, fmt.Sprintf("GET /reservas/%d/comprobante", id), err)
		return
	}

	w.Header().Set("Content-Type", receiptContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="`+receiptFilenamePattern+`"`, id))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) fail(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, bookingsService.ErrBookingNotFound):
		handlers.RespondNotFound(w, msgBookingNotFound)
	case errors.Is(err, bookingsService.ErrBusinessNotFound):
		handlers.RespondNotFound(w, msgBusinessNotFound)
	case errors.Is(err, bookingsService.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgAccessDenied)
	case errors.Is(err, bookingsService.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)
	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
