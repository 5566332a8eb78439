package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/tron2005/markvera/internal/trainingload"
)

var _ MetricsCache = (*RedisMetricsCache)(nil)

// RedisMetricsCache shares computed metrics between service instances.
type RedisMetricsCache struct {
	rdb *redis.Client
}

func NewRedisMetricsCache(rdb *redis.Client) *RedisMetricsCache {
	return &RedisMetricsCache{
		rdb: rdb,
	}
}

func (c *RedisMetricsCache) Get(ctx context.Context, key string) (trainingload.MetricsResult, bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return trainingload.MetricsResult{}, false, nil
	}
	if err != nil {
		return trainingload.MetricsResult{}, false, fmt.Errorf("redis get: %w", err)
	}

	result, err := decode(raw)
	if err != nil {
		return trainingload.MetricsResult{}, false, fmt.Errorf("decode cached metrics: %w", err)
	}
	return result, true, nil
}

func (c *RedisMetricsCache) Set(ctx context.Context, key string, result trainingload.MetricsResult, ttl time.Duration) error {
	if key == "" {
		return errEmptyKey
	}
	raw, err := encode(result)
	if err != nil {
		return fmt.Errorf("encode metrics: %w", err)
	}
	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// InvalidateUser drops every cached result of userID.
func (c *RedisMetricsCache) InvalidateUser(ctx context.Context, userID string) (int, error) {
	var keys []string
	iter := c.rdb.Scan(ctx, 0, keyPrefix+userID+":*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("redis scan: %w", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}
	deleted, err := c.rdb.Del(ctx, keys...).Result()
	if err != nil {
		return 0, fmt.Errorf("redis del: %w", err)
	}
	return int(deleted), nil
}
