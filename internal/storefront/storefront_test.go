package storefront

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxturnos/turnos-service/internal/service/business/models"
	catalogModels "github.com/maxturnos/turnos-service/internal/service/catalog/models"
	"github.com/maxturnos/turnos-service/pkg/logger"
)

type countingFetcher struct {
	calls atomic.Int32
	err   error
	delay time.Duration
}

func (f *countingFetcher) Storefront(_ context.Context, code string) (*models.StorefrontResponse, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &models.StorefrontResponse{
		Negocio:   models.BusinessResponse{Codigo: code, Nombre: "Barberia"},
		Servicios: []catalogModels.ServiceResponse{{ID: 1, Nombre: "Corte de Pelo Clásico"}},
		Personal:  []catalogModels.StaffResponse{{ID: 7, Nombre: "Carlos Mendoza"}},
	}, nil
}

func TestCache_ServesFromMemoryWithinTTL(t *testing.T) {
	now := time.Date(2025, 11, 3, 10, 0, 0, 0, time.Local)
	api := &countingFetcher{}
	c := New(api, 0, logger.Nop()).WithClock(func() time.Time { return now })

	services, err := c.Services(context.Background(), "barberia")
	require.NoError(t, err)
	assert.Len(t, services, 1)

	now = now.Add(4 * time.Minute)
	staff, err := c.Staff(context.Background(), "barberia")
	require.NoError(t, err)
	assert.Equal(t, "Carlos Mendoza", staff[0].Nombre)
	assert.Equal(t, int32(1), api.calls.Load())

	_, ok := c.Peek("barberia")
	assert.True(t, ok)
}

func TestCache_RefetchesAfterTTL(t *testing.T) {
	now := time.Date(2025, 11, 3, 10, 0, 0, 0, time.Local)
	api := &countingFetcher{}
	c := New(api, DefaultTTL, logger.Nop()).WithClock(func() time.Time { return now })

	_, err := c.Business(context.Background(), "barberia")
	require.NoError(t, err)

	now = now.Add(DefaultTTL)
	_, ok := c.Peek("barberia")
	assert.False(t, ok)

	_, err = c.Business(context.Background(), "barberia")
	require.NoError(t, err)
	assert.Equal(t, int32(2), api.calls.Load())
}

func TestCache_KeyedByBusiness(t *testing.T) {
	api := &countingFetcher{}
	c := New(api, time.Minute, logger.Nop())

	a, err := c.Business(context.Background(), "a")
	require.NoError(t, err)
	b, err := c.Business(context.Background(), "b")
	require.NoError(t, err)

	assert.Equal(t, "a", a.Codigo)
	assert.Equal(t, "b", b.Codigo)
	assert.Equal(t, int32(2), api.calls.Load())
}

func TestCache_InvalidateForcesFetch(t *testing.T) {
	api := &countingFetcher{}
	c := New(api, time.Minute, logger.Nop())

	_, err := c.Get(context.Background(), "barberia")
	require.NoError(t, err)
	c.Invalidate("barberia")
	_, err = c.Get(context.Background(), "barberia")
	require.NoError(t, err)

	assert.Equal(t, int32(2), api.calls.Load())
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	api := &countingFetcher{err: errors.New("down")}
	c := New(api, time.Minute, logger.Nop())

	_, err := c.Get(context.Background(), "barberia")
	require.Error(t, err)

	api.err = nil
	_, err = c.Get(context.Background(), "barberia")
	require.NoError(t, err)
	assert.Equal(t, int32(2), api.calls.Load())
}

func TestCache_ConcurrentGetsShareOneFetch(t *testing.T) {
	api := &countingFetcher{delay: 50 * time.Millisecond}
	c := New(api, time.Minute, logger.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Get(context.Background(), "barberia")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), api.calls.Load())
}
