package storefront

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/maxturnos/turnos-service/internal/service/business/models"
	catalogModels "github.com/maxturnos/turnos-service/internal/service/catalog/models"
	reviewModels "github.com/maxturnos/turnos-service/internal/service/reviews/models"
	"github.com/maxturnos/turnos-service/pkg/ttlcache"
)

// DefaultTTL сколько витрина считается свежей
const DefaultTTL = 5 * time.Minute

// Fetcher источник витрины (REST клиент)
type Fetcher interface {
	Storefront(ctx context.Context, code string) (*models.StorefrontResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Cache витрины бизнесов по коду: услуги, сотрудники, отзывы и настройки
type Cache struct {
	api    Fetcher
	items  *ttlcache.Cache[string, *models.StorefrontResponse]
	group  singleflight.Group
	logger Logger
}

// New кэш с заданным TTL; ttl <= 0 означает DefaultTTL
func New(api Fetcher, ttl time.Duration, logger Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		api:    api,
		items:  ttlcache.New[string, *models.StorefrontResponse](ttl),
		logger: logger,
	}
}

// WithClock подменяет источник времени
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.items.WithClock(now)
	return c
}

// Peek свежая запись без обращения к серверу
func (c *Cache) Peek(code string) (*models.StorefrontResponse, bool) {
	return c.items.Get(code)
}

// Get витрина из кэша или с сервера. Параллельные запросы одного кода идут одним запросом.
func (c *Cache) Get(ctx context.Context, code string) (*models.StorefrontResponse, error) {
	if v, ok := c.items.Get(code); ok {
		return v, nil
	}

	v, err, _ := c.group.Do(code, func() (interface{}, error) {
		if cached, ok := c.items.Get(code); ok {
			return cached, nil
		}
		fresh, err := c.api.Storefront(ctx, code)
		if err != nil {
			return nil, err
		}
		c.items.Set(code, fresh)
		c.logger.Info("storefront %s cached", code)
		return fresh, nil
	})
	if err != nil {
		c.logger.Warn("storefront %s: %v", code, err)
		return nil, err
	}
	return v.(*models.StorefrontResponse), nil
}

// Business настройки бизнеса
func (c *Cache) Business(ctx context.Context, code string) (*models.BusinessResponse, error) {
	sf, err := c.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	return &sf.Negocio, nil
}

// Services услуги бизнеса
func (c *Cache) Services(ctx context.Context, code string) ([]catalogModels.ServiceResponse, error) {
	sf, err := c.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	return sf.Servicios, nil
}

// Staff сотрудники бизнеса
func (c *Cache) Staff(ctx context.Context, code string) ([]catalogModels.StaffResponse, error) {
	sf, err := c.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	return sf.Personal, nil
}

// Reviews одобренные отзывы
func (c *Cache) Reviews(ctx context.Context, code string) ([]reviewModels.ReviewResponse, error) {
	sf, err := c.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	return sf.Resenas, nil
}

// Invalidate сбрасывает витрину после изменений владельца
func (c *Cache) Invalidate(code string) {
	c.items.Delete(code)
}
