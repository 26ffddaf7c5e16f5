package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	redis "github.com/redis/go-redis/v9"
)

var (
	ErrLimiterUnconfigured = errors.New("rate_limiter_unconfigured")
	ErrEmptyKey            = errors.New("rate_limiter_empty_key")
)

const keyPrefix = "recibo:print:bucket:"

// KEYS[1] bucket; ARGV rate per second, capacity, ttl ms.
// Returns {admitted, wait_ms}. Clock comes from the Redis server so every
// replica refills against the same time source.
var takeScript = redis.NewScript(`
local rate = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local ttl = tonumber(ARGV[3])

local t = redis.call("TIME")
local now = t[1] * 1000 + math.floor(t[2] / 1000)

local level = tonumber(redis.call("HGET", KEYS[1], "level"))
local at = tonumber(redis.call("HGET", KEYS[1], "at"))
if level == nil or at == nil then
  level = capacity
elseif now > at then
  level = math.min(capacity, level + (now - at) * rate / 1000)
end

local wait = 0
local admitted = 0
if level >= 1 then
  level = level - 1
  admitted = 1
else
  wait = math.ceil((1 - level) * 1000 / rate)
end

redis.call("HSET", KEYS[1], "level", tostring(level), "at", now)
redis.call("PEXPIRE", KEYS[1], ttl)
return {admitted, wait}
`)

// TokenBucket is a dispatch bucket shared by every replica through Redis.
type TokenBucket struct {
	client   redis.UniversalClient
	rate     float64
	capacity int
	ttl      time.Duration
}

func NewTokenBucket(client redis.UniversalClient, rate float64, capacity int) *TokenBucket {
	if client == nil {
		return nil
	}
	if capacity <= 0 {
		capacity = 1
	}
	return &TokenBucket{client: client, rate: rate, capacity: capacity, ttl: bucketTTL(rate, capacity)}
}

func (t *TokenBucket) Allow(ctx context.Context, key string) (bool, error) {
	ok, _, err := t.Take(ctx, key)
	return ok, err
}

// Take spends one token for key. When rejected it reports how long until the
// next token is available.
func (t *TokenBucket) Take(ctx context.Context, key string) (bool, time.Duration, error) {
	if t == nil || t.client == nil {
		return false, 0, ErrLimiterUnconfigured
	}
	if key == "" {
		return false, 0, ErrEmptyKey
	}

	res, err := takeScript.Run(ctx, t.client, []string{keyPrefix + key},
		t.rate, t.capacity, t.ttl.Milliseconds()).Int64Slice()
	if err != nil {
		return false, 0, fmt.Errorf("token bucket %s: %w", key, err)
	}
	if len(res) != 2 {
		return false, 0, fmt.Errorf("token bucket %s: unexpected reply %v", key, res)
	}
	return res[0] == 1, time.Duration(res[1]) * time.Millisecond, nil
}

// bucketTTL keeps an idle bucket for twice the time it takes to refill.
func bucketTTL(rate float64, capacity int) time.Duration {
	if rate <= 0 || capacity <= 0 {
		return time.Second
	}
	return time.Duration(math.Max(1, math.Ceil(2*float64(capacity)/rate))) * time.Second
}
