package calendar

import (
	"errors"
	"net/http"
	"time"

	"github.com/maxturnos/turnos-service/internal/api/handlers"
	calendarService "github.com/maxturnos/turnos-service/internal/service/calendar"
)

const (
	msgInvalidDate    = "fecha inválida, se espera YYYY-MM-DD"
	msgInvalidRange   = "Rango de fechas inválido"
	msgInvalidStaffID = "profesionalId inválido"
)

// Handler отмененные дни и заблокированное время (чтение)
type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ListDays GET /api/dias-cancelados/{establecimiento}?desde=&hasta=
func (h *Handler) ListDays(w http.ResponseWriter, r *http.Request) {
	code := handlers.PathString(r, "establecimiento")

	from, err := optionalDate(r, "desde")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	to, err := optionalDate(r, "hasta")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	resp, err := h.service.ListDays(r.Context(), code, from, to)
	if err != nil {
		if errors.Is(err, calendarService.ErrInvalidRange) {
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
		h.logger.Error("GET /dias-cancelados/%s - Failed: %v", code, err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// ListBlocked GET /api/horarios-bloqueados/{establecimiento}?fecha=&profesionalId=
func (h *Handler) ListBlocked(w http.ResponseWriter, r *http.Request) {
	code := handlers.PathString(r, "establecimiento")

	day, err := handlers.ParseDate(r.URL.Query().Get("fecha"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	staffID, err := handlers.QueryInt64(r, "profesionalId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	list, err := h.service.ListBlocked(r.Context(), code, day, staffID)
	if err != nil {
		h.logger.Error("GET /horarios-bloqueados/%s - Failed: %v", code, err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, list)
}

func optionalDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	d, err := handlers.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
