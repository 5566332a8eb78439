package cache

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"

	"github.com/tron2005/markvera/internal/trainingload"
)

var _ MetricsCache = (*LocalMetricsCache)(nil)

// LocalMetricsCache is an in-process cache. Entries above 1/1024 of the cache
// size are not stored (freecache limit) and are left to the remote layer.
type LocalMetricsCache struct {
	cache *freecache.Cache
}

func NewLocalMetricsCache(sizeMegabytes int) *LocalMetricsCache {
	megabyte := 1024 * 1024
	return &LocalMetricsCache{
		cache: freecache.NewCache(sizeMegabytes * megabyte),
	}
}

func (c *LocalMetricsCache) Get(_ context.Context, key string) (trainingload.MetricsResult, bool, error) {
	raw, err := c.cache.Get([]byte(key))
	if errors.Is(err, freecache.ErrNotFound) {
		return trainingload.MetricsResult{}, false, nil
	}
	if err != nil {
		return trainingload.MetricsResult{}, false, err
	}

	result, err := decode(raw)
	if err != nil {
		c.cache.Del([]byte(key))
		return trainingload.MetricsResult{}, false, fmt.Errorf("decode cached metrics: %w", err)
	}
	return result, true, nil
}

func (c *LocalMetricsCache) Set(_ context.Context, key string, result trainingload.MetricsResult, ttl time.Duration) error {
	if key == "" {
		return errEmptyKey
	}
	raw, err := encode(result)
	if err != nil {
		return fmt.Errorf("encode metrics: %w", err)
	}

	err = c.cache.Set([]byte(key), raw, expireSeconds(ttl))
	if errors.Is(err, freecache.ErrLargeEntry) {
		log.Debugf("metrics of %d bytes too large for the local cache, skipping", len(raw))
		return nil
	}
	return err
}

// expireSeconds rounds up so that a sub-second ttl still expires instead of
// becoming freecache's "never expire" zero.
func expireSeconds(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	return int(math.Ceil(ttl.Seconds()))
}
