package reviews

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxturnos/turnos-service/internal/domain"
	reviewsService "github.com/maxturnos/turnos-service/internal/service/reviews"
	"github.com/maxturnos/turnos-service/internal/service/reviews/models"
	"github.com/maxturnos/turnos-service/pkg/logger"
)

type stubService struct {
	moderated *bool
	err       error
}

func (s *stubService) ListApproved(context.Context, string) ([]models.ReviewResponse, error) {
	return []models.ReviewResponse{{ID: 1, Rating: 5}}, s.err
}

func (s *stubService) ListAll(context.Context, domain.Principal, string) ([]models.ReviewResponse, error) {
	return []models.ReviewResponse{}, s.err
}

func (s *stubService) Create(_ context.Context, _ domain.Principal, code string, req *models.CreateReviewRequest) (*models.ReviewResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.ReviewResponse{ID: 2, NegocioCodigo: code, Rating: req.Rating, Texto: req.Texto}, nil
}

func (s *stubService) Moderate(_ context.Context, _ domain.Principal, _ string, _ int64, approved *bool) error {
	s.moderated = approved
	return s.err
}

func (s *stubService) Delete(context.Context, domain.Principal, string, int64) error {
	return s.err
}

func router(svc *stubService) *mux.Router {
	h := NewHandler(svc, logger.Nop())
	r := mux.NewRouter()
	r.HandleFunc("/api/resenas/{codigo}", h.ListApproved).Methods(http.MethodGet)
	r.HandleFunc("/api/resenas/{codigo}", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/api/resenas/{codigo}/todas", h.ListAll).Methods(http.MethodGet)
	r.HandleFunc("/api/resenas/{codigo}/{id:[0-9]+}/moderacion", h.Moderate).Methods(http.MethodPut)
	r.HandleFunc("/api/resenas/{codigo}/{id:[0-9]+}", h.Delete).Methods(http.MethodDelete)
	return r
}

func serve(r http.Handler, method, url, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, url, strings.NewReader(body)))
	return rec
}

func TestCreate(t *testing.T) {
	rec := serve(router(&stubService{}), http.MethodPost, "/api/resenas/barberia", `{"rating":5,"texto":"Excelente"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = serve(router(&stubService{err: reviewsService.ErrLoginRequired}), http.MethodPost, "/api/resenas/barberia", `{"rating":5}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(router(&stubService{err: reviewsService.ErrInvalidInput}), http.MethodPost, "/api/resenas/barberia", `{"rating":9}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestModerate(t *testing.T) {
	svc := &stubService{}
	rec := serve(router(svc), http.MethodPut, "/api/resenas/barberia/4/moderacion", `{"aprobada":false}`)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, svc.moderated)
	assert.False(t, *svc.moderated)

	rec = serve(router(&stubService{err: reviewsService.ErrAccessDenied}), http.MethodPut, "/api/resenas/barberia/4/moderacion", `{"aprobada":true}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteAndList(t *testing.T) {
	assert.Equal(t, http.StatusNotFound,
		serve(router(&stubService{err: reviewsService.ErrReviewNotFound}), http.MethodDelete, "/api/resenas/barberia/4", "").Code)
	assert.Equal(t, http.StatusOK, serve(router(&stubService{}), http.MethodGet, "/api/resenas/barberia", "").Code)
	assert.Equal(t, http.StatusOK, serve(router(&stubService{}), http.MethodGet, "/api/resenas/barberia/todas", "").Code)
}
