package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	appreport "github.com/siteops/backend/internal/application/report"
	"github.com/siteops/backend/internal/infrastructure/config"
)

// RedisReportCache caches assembled report payloads in Redis as JSON.
// It is shared across instances, so a report built by one server is
// served from cache by the others until the TTL expires.
type RedisReportCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisClient creates and pings a Redis client from configuration
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewRedisReportCache creates a report cache backed by an existing
// Redis client
func NewRedisReportCache(client *redis.Client) *RedisReportCache {
	return &RedisReportCache{
		client:    client,
		keyPrefix: "siteops:",
	}
}

// Get loads the cached payload for key into dest. A missing or expired
// key reports a miss; an unreadable payload is treated as a miss and
// evicted so the next write repairs it.
func (c *RedisReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		c.client.Del(ctx, c.keyPrefix+key)
		return false, nil
	}
	return true, nil
}

// Set stores value under key for the given TTL
func (c *RedisReportCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value for key %s: %w", key, err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

var _ appreport.ReportCache = (*RedisReportCache)(nil)
