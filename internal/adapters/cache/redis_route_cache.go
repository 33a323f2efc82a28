package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
)

// RedisRouteCache stores reconstructed routes in Redis with a fixed TTL.
type RedisRouteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) (*RedisRouteCache, error) {
	if client == nil {
		return nil, errors.New("redis route cache: client is nil")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("redis route cache: ttl must be positive, got %s", ttl)
	}
	return &RedisRouteCache{client: client, ttl: ttl}, nil
}

func (c *RedisRouteCache) Get(ctx context.Context, key string) (_ *domain.Route, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	b, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache key=%q: %w", key, err)
	}

	route, err := decodeRoute(b)
	if err != nil {
		return nil, false, fmt.Errorf("get route cache key=%q: %w", key, err)
	}
	return route, true, nil
}

func (c *RedisRouteCache) Put(ctx context.Context, key string, route *domain.Route) error {
	b, err := encodeRoute(route)
	if err != nil {
		return fmt.Errorf("put route cache key=%q: %w", key, err)
	}

	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("put route cache key=%q: %w", key, err)
	}
	return nil
}
