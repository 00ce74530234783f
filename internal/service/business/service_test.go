package business

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxturnos/turnos-service/internal/domain"
	businessRepo "github.com/maxturnos/turnos-service/internal/infra/storage/business"
	"github.com/maxturnos/turnos-service/internal/service/business/models"
	"github.com/maxturnos/turnos-service/pkg/logger"
)

type fakeBusinesses struct {
	b     *domain.Business
	saved *domain.Business
	cats  []string
	order domain.ReviewOrder
}

func (f *fakeBusinesses) GetByCode(_ context.Context, code string) (*domain.Business, error) {
	if f.b == nil || f.b.Code != code {
		return nil, businessRepo.ErrBusinessNotFound
	}
	copied := *f.b
	return &copied, nil
}

func (f *fakeBusinesses) UpdateSchedule(_ context.Context, b *domain.Business) error {
	f.saved = b
	return nil
}

func (f *fakeBusinesses) UpdateCategories(_ context.Context, _ string, categories []string) error {
	f.cats = categories
	return nil
}

func (f *fakeBusinesses) UpdateReviewOrder(_ context.Context, _ string, order domain.ReviewOrder) error {
	f.order = order
	return nil
}

type countingLists struct{ calls int }

func (c *countingLists) List(context.Context, string) ([]*domain.Service, error) {
	c.calls++
	return []*domain.Service{{ID: 1, Name: "Corte"}}, nil
}

type staffList struct{}

func (staffList) List(context.Context, string) ([]*domain.Staff, error) {
	return []*domain.Staff{{ID: 1, Name: "Carlos"}}, nil
}

type reviewList struct{ order domain.ReviewOrder }

func (r *reviewList) List(_ context.Context, _ string, order domain.ReviewOrder, onlyApproved bool) ([]*domain.Review, error) {
	r.order = order
	return nil, nil
}

// mapCache хранит JSON, как Redis
type mapCache struct{ data map[string][]byte }

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (m *mapCache) Get(_ context.Context, key string, dst interface{}) (bool, error) {
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (m *mapCache) Set(_ context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	m.data[key] = raw
	return err
}

func (m *mapCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

var owner = domain.Principal{Email: "dueno@example.com", Role: domain.RoleAdmin, BusinessCode: "barberia"}

func newService(b *fakeBusinesses, c *mapCache, lists *countingLists, reviews *reviewList) *Service {
	return NewService(b, lists, staffList{}, reviews, c, logger.Nop())
}

func TestGetStorefront_ReadThroughAndInvalidation(t *testing.T) {
	businesses := &fakeBusinesses{b: &domain.Business{Code: "barberia", Name: "Barbería", ReviewOrder: domain.ReviewOrderLowestFirst}}
	c := newMapCache()
	lists := &countingLists{}
	reviews := &reviewList{}
	svc := newService(businesses, c, lists, reviews)

	first, err := svc.GetStorefront(context.Background(), "barberia")
	require.NoError(t, err)
	assert.Equal(t, "Barbería", first.Negocio.Nombre)
	assert.Len(t, first.Servicios, 1)
	assert.NotNil(t, first.Resenas)
	assert.Equal(t, domain.ReviewOrderLowestFirst, reviews.order)

	_, err = svc.GetStorefront(context.Background(), "barberia")
	require.NoError(t, err)
	assert.Equal(t, 1, lists.calls, "second read must be served from cache")

	require.NoError(t, svc.UpdateReviewOrder(context.Background(), owner, "barberia",
		&models.UpdateReviewOrderRequest{OrdenResenas: string(domain.ReviewOrderHighestFirst)}))
	_, err = svc.GetStorefront(context.Background(), "barberia")
	require.NoError(t, err)
	assert.Equal(t, 2, lists.calls)
}

func TestUpdateSchedule(t *testing.T) {
	valid := func() *models.UpdateScheduleRequest {
		return &models.UpdateScheduleRequest{
			Horarios:        models.Horarios{Inicio: "9:00", Fin: "19:00", FinSabado: "14:00", Intervalo: 15},
			DiasDisponibles: []int{6, 1, 2, 2},
		}
	}

	t.Run("normalizes and saves", func(t *testing.T) {
		businesses := &fakeBusinesses{b: &domain.Business{Code: "barberia"}}
		svc := newService(businesses, newMapCache(), &countingLists{}, &reviewList{})

		resp, err := svc.UpdateSchedule(context.Background(), owner, "barberia", valid())
		require.NoError(t, err)
		assert.Equal(t, "09:00", resp.Horarios.Inicio)
		assert.Equal(t, []int{1, 2, 6}, businesses.saved.OpenDays)
		assert.Equal(t, 15, businesses.saved.SlotIntervalMinutes)
		assert.Equal(t, "14:00", businesses.saved.SaturdayClosingTime)
	})

	cases := []struct {
		name   string
		mutate func(r *models.UpdateScheduleRequest)
	}{
		{"closing before opening", func(r *models.UpdateScheduleRequest) { r.Horarios.Fin = "08:00" }},
		{"bad time", func(r *models.UpdateScheduleRequest) { r.Horarios.Inicio = "25:00" }},
		{"interval too small", func(r *models.UpdateScheduleRequest) { r.Horarios.Intervalo = 2 }},
		{"weekday out of range", func(r *models.UpdateScheduleRequest) { r.DiasDisponibles = []int{7} }},
		{"no days", func(r *models.UpdateScheduleRequest) { r.DiasDisponibles = nil }},
		{"saturday before opening", func(r *models.UpdateScheduleRequest) { r.Horarios.FinSabado = "08:30" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			businesses := &fakeBusinesses{b: &domain.Business{Code: "barberia"}}
			svc := newService(businesses, newMapCache(), &countingLists{}, &reviewList{})
			req := valid()
			tc.mutate(req)

			_, err := svc.UpdateSchedule(context.Background(), owner, "barberia", req)
			assert.ErrorIs(t, err, ErrInvalidSchedule)
			assert.Nil(t, businesses.saved)
		})
	}
}

func TestUpdateCategories_TrimsAndDeduplicates(t *testing.T) {
	businesses := &fakeBusinesses{b: &domain.Business{Code: "barberia"}}
	svc := newService(businesses, newMapCache(), &countingLists{}, &reviewList{})

	got, err := svc.UpdateCategories(context.Background(), owner, "barberia",
		&models.UpdateCategoriesRequest{Categorias: []string{" Cortes ", "Barba", "", "Cortes"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cortes", "Barba"}, got)
	assert.Equal(t, got, businesses.cats)
}

func TestAccessAndNotFound(t *testing.T) {
	businesses := &fakeBusinesses{b: &domain.Business{Code: "barberia"}}
	svc := newService(businesses, newMapCache(), &countingLists{}, &reviewList{})

	err := svc.UpdateReviewOrder(context.Background(), domain.Principal{Email: "x@example.com"}, "barberia",
		&models.UpdateReviewOrderRequest{OrdenResenas: "mayor-menor"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.UpdateReviewOrder(context.Background(), owner, "barberia", &models.UpdateReviewOrderRequest{OrdenResenas: "random"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Get(context.Background(), "otro")
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}
