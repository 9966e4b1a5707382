package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DashboardCache is a best-effort byte cache for the admin dashboard
// statistics payload.
type DashboardCache interface {
	Get(ctx context.Context) ([]byte, error)
	Set(ctx context.Context, data []byte, ttl time.Duration) error
}

type dashboardCache struct {
	client *RedisClient
	key    string
}

func NewDashboardCache(redisClient *RedisClient) DashboardCache {
	return &dashboardCache{
		client: redisClient,
		key:    "dashboard:admin",
	}
}

func (c *dashboardCache) Get(ctx context.Context) ([]byte, error) {
	data, err := c.client.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // cache miss
		}
		return nil, err
	}
	return data, nil
}

func (c *dashboardCache) Set(ctx context.Context, data []byte, ttl time.Duration) error {
	return c.client.client.Set(ctx, c.key, data, ttl).Err()
}

// NoopDashboardCache always misses. Used in tests and when Redis is disabled.
type NoopDashboardCache struct{}

func (NoopDashboardCache) Get(ctx context.Context) ([]byte, error) { return nil, nil }

func (NoopDashboardCache) Set(ctx context.Context, data []byte, ttl time.Duration) error {
	return nil
}
