package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/smallbiznis/recibo/internal/settings/domain"
)

const redisKey = "recibo:settings:view"

type redisCache struct {
	client *redis.Client
	log    *zap.Logger
}

// NewRedis stores the resolved view as JSON. Redis failures degrade to a
// cache miss so reads fall through to the database.
func NewRedis(client *redis.Client, log *zap.Logger) domain.Cache {
	return &redisCache{client: client, log: log.Named("settings.cache")}
}

func (c *redisCache) Get(ctx context.Context) (domain.View, bool) {
	raw, err := c.client.Get(ctx, redisKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("settings cache read failed", zap.Error(err))
		}
		return domain.View{}, false
	}
	var view domain.View
	if err := json.Unmarshal(raw, &view); err != nil {
		c.log.Warn("settings cache entry corrupt", zap.Error(err))
		return domain.View{}, false
	}
	return view, true
}

func (c *redisCache) Set(ctx context.Context, view domain.View, ttl time.Duration) {
	raw, err := json.Marshal(view)
	if err != nil {
		c.log.Warn("settings cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, redisKey, raw, ttl).Err(); err != nil {
		c.log.Warn("settings cache write failed", zap.Error(err))
	}
}

func (c *redisCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, redisKey).Err(); err != nil {
		c.log.Warn("settings cache invalidate failed", zap.Error(err))
	}
}
