package cache

import (
	"context"
	"time"

	"github.com/smallbiznis/recibo/internal/cache"
	"github.com/smallbiznis/recibo/internal/settings/domain"
)

const settingsKey = "settings"

type memoryCache struct {
	store cache.Cache[string, domain.View]
}

func NewMemory() domain.Cache {
	return &memoryCache{store: cache.NewTTLCache[string, domain.View]()}
}

func NewMemoryWithClock(now func() time.Time) domain.Cache {
	return &memoryCache{store: cache.NewTTLCacheWithClock[string, domain.View](now)}
}

func (c *memoryCache) Get(_ context.Context) (domain.View, bool) {
	return c.store.Get(settingsKey)
}

func (c *memoryCache) Set(_ context.Context, view domain.View, ttl time.Duration) {
	c.store.Set(settingsKey, view, ttl)
}

func (c *memoryCache) Invalidate(_ context.Context) {
	c.store.Delete(settingsKey)
}
