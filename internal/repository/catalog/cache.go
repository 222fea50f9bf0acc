// Package catalog caches the backend service catalog with a TTL.
package catalog

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/apunisarkar/sevamcp/internal/domain"
)

// Provider fetches the live catalog from the backend.
type Provider interface {
	Services(ctx context.Context) ([]domain.Service, error)
}

// Store is the cache backing for catalog snapshots. A Get that misses
// returns ok=false with no error.
type Store interface {
	Get(ctx context.Context) ([]domain.Service, bool, error)
	Set(ctx context.Context, services []domain.Service) error
}

// Cache is a caching decorator over the backend's service list. Store
// failures are logged and fall through to the backend; they never fail
// a search.
type Cache struct {
	inner      Provider
	store      Store
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner Provider,
	store Store,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Cache {
	return &Cache{
		inner:      inner,
		store:      store,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Services returns the cached snapshot or fetches a fresh one.
func (c *Cache) Services(ctx context.Context) ([]domain.Service, error) {
	if services, ok := c.getFromCache(ctx); ok {
		c.incCache("hit")
		return services, nil
	}

	c.incCache("miss")

	services, err := c.inner.Services(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch services: %w", err)
	}

	c.putToCache(ctx, services)
	return services, nil
}

func (c *Cache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *Cache) getFromCache(ctx context.Context) ([]domain.Service, bool) {
	services, ok, err := c.store.Get(ctx)
	if err != nil {
		c.logger.Warn("Failed to read catalog cache", zap.Error(err))
		return nil, false
	}
	return services, ok
}

func (c *Cache) putToCache(ctx context.Context, services []domain.Service) {
	if err := c.store.Set(ctx, services); err != nil {
		c.logger.Warn("Failed to cache catalog", zap.Error(err))
	}
}
