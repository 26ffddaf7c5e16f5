// Package ratelimit throttles print dispatch per surface.
package ratelimit

import (
	"context"
	"errors"
	"strings"
	"sync"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/smallbiznis/recibo/internal/config"
)

// Limiter admits or rejects an action for key without blocking.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Local keeps one x/time/rate limiter per key in process memory.
type Local struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

func NewLocal(rps float64, burst int) *Local {
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &Local{limit: limit, burst: burst, limiters: map[string]*rate.Limiter{}}
}

func (l *Local) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = lim
	}
	l.mu.Unlock()
	return lim.Allow(), nil
}

// fallback prefers the shared bucket and admits through the local limiter
// when Redis cannot answer.
type fallback struct {
	shared *TokenBucket
	local  *Local
	log    *zap.Logger
}

func (f *fallback) Allow(ctx context.Context, key string) (bool, error) {
	ok, err := f.shared.Allow(ctx, key)
	if err == nil {
		return ok, nil
	}
	f.log.Warn("shared rate limiter unavailable, using local limiter", zap.String("key", key), zap.Error(err))
	return f.local.Allow(ctx, key)
}

// NewDispatchLimiter returns the limiter configured by PRINT_DISPATCH_LIMITER.
func NewDispatchLimiter(cfg config.Config, log *zap.Logger) (Limiter, error) {
	local := NewLocal(cfg.PrintDispatchRPS, cfg.PrintDispatchBurst)
	switch cfg.PrintDispatchLimiter {
	case config.LimiterLocal, "":
		return local, nil
	case config.LimiterRedis:
		addr := strings.TrimSpace(cfg.Redis.Addr)
		if addr == "" {
			return nil, errors.New("rate limit redis addr is required")
		}
		if cfg.PrintDispatchRPS <= 0 {
			return nil, errors.New("print dispatch rate must be positive for the redis limiter")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: strings.TrimSpace(cfg.Redis.Password),
			DB:       cfg.Redis.DB,
		})
		return &fallback{
			shared: NewTokenBucket(client, cfg.PrintDispatchRPS, local.burst),
			local:  local,
			log:    log.Named("ratelimit"),
		}, nil
	default:
		return nil, errors.New("unknown print dispatch limiter " + cfg.PrintDispatchLimiter)
	}
}
