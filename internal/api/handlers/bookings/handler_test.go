package bookings

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxturnos/turnos-service/internal/api/middleware"
	"github.com/maxturnos/turnos-service/internal/domain"
	bookingsService "github.com/maxturnos/turnos-service/internal/service/bookings"
	"github.com/maxturnos/turnos-service/internal/service/bookings/models"
	"github.com/maxturnos/turnos-service/pkg/logger"
)

type stubService struct {
	listDay   *time.Time
	listStaff *int64
	year      int
	month     time.Month
	err       error
}

func (s *stubService) GetByID(_ context.Context, _ domain.Principal, id int64) (*models.BookingResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{ID: id, Establecimiento: "barberia"}, nil
}

func (s *stubService) ListMine(context.Context, domain.Principal) ([]models.BookingResponse, error) {
	return []models.BookingResponse{{ID: 1}, {ID: 2}}, s.err
}

func (s *stubService) List(_ context.Context, _ domain.Principal, _ string, day *time.Time, staffID *int64) ([]models.BookingResponse, error) {
	s.listDay, s.listStaff = day, staffID
	return []models.BookingResponse{}, s.err
}

func (s *stubService) ByMonth(_ context.Context, _ domain.Principal, _ string, year int, month time.Month) (*models.MonthResponse, error) {
	s.year, s.month = year, month
	if s.err != nil {
		return nil, s.err
	}
	return &models.MonthResponse{ContadoresPorDia: map[string]int{"2025-11-05": 2}, TotalReservas: 2}, nil
}

func (s *stubService) Receipt(_ context.Context, _ domain.Principal, _ int64, w io.Writer) error {
	if s.err != nil {
		return s.err
	}
	_, err := w.Write([]byte("%PDF-1.3"))
	return err
}

func router(svc *stubService) *mux.Router {
	h := NewHandler(svc, logger.Nop())
	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := middleware.WithPrincipal(req.Context(), domain.Principal{Email: "owner@example.com", Role: domain.RoleAdmin, BusinessCode: "barberia"})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.HandleFunc("/api/reservas", h.List).Methods(http.MethodGet)
	r.HandleFunc("/api/reservas/mias", h.ListMine).Methods(http.MethodGet)
	r.HandleFunc("/api/reservas/por-mes", h.ByMonth).Methods(http.MethodGet)
	r.HandleFunc("/api/reservas/{id:[0-9]+}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/api/reservas/{id:[0-9]+}/comprobante", h.Receipt).Methods(http.MethodGet)
	return r
}

func get(r http.Handler, url string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestList_ParsesFilters(t *testing.T) {
	svc := &stubService{}
	rec := get(router(svc), "/api/reservas?establecimiento=barberia&fecha=2025-11-05&profesionalId=3")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.listDay)
	assert.Equal(t, "2025-11-05", svc.listDay.Format(domain.DateFormat))
	require.NotNil(t, svc.listStaff)
	assert.Equal(t, int64(3), *svc.listStaff)

	assert.Equal(t, http.StatusBadRequest, get(router(svc), "/api/reservas").Code)
	assert.Equal(t, http.StatusBadRequest, get(router(svc), "/api/reservas?establecimiento=barberia&fecha=ayer").Code)
}

func TestByMonth(t *testing.T) {
	svc := &stubService{}
	rec := get(router(svc), "/api/reservas/por-mes?establecimiento=barberia&anio=2025&mes=11")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2025, svc.year)
	assert.Equal(t, time.November, svc.month)

	var resp models.MonthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.ContadoresPorDia["2025-11-05"])

	assert.Equal(t, http.StatusBadRequest, get(router(svc), "/api/reservas/por-mes?establecimiento=barberia&anio=2025").Code)
}

func TestGet_ErrorMapping(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, get(router(&stubService{err: bookingsService.ErrBookingNotFound}), "/api/reservas/5").Code)
	assert.Equal(t, http.StatusForbidden, get(router(&stubService{err: bookingsService.ErrAccessDenied}), "/api/reservas/5").Code)
	assert.Equal(t, http.StatusOK, get(router(&stubService{}), "/api/reservas/5").Code)
}

func TestReceipt_ServesPDF(t *testing.T) {
	rec := get(router(&stubService{}), "/api/reservas/5/comprobante")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "comprobante-5.pdf")
	assert.Equal(t, "%PDF-1.3", rec.Body.String())

	rec = get(router(&stubService{err: bookingsService.ErrAccessDenied}), "/api/reservas/5/comprobante")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotContains(t, rec.Body.String(), "%PDF")
}
