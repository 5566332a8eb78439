package cache

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/tron2005/markvera/internal/telemetry/metrics"
	"github.com/tron2005/markvera/internal/trainingload"
)

var _ MetricsCache = (*LayeredMetricsCache)(nil)

// LayeredMetricsCache reads the local cache first, then the remote one, and
// back fills the local cache on a remote hit. Remote failures degrade to a miss.
type LayeredMetricsCache struct {
	local          *LocalMetricsCache
	remote         MetricsCache
	metricsManager *metrics.Manager
}

func NewLayeredMetricsCache(local *LocalMetricsCache, remote MetricsCache, metricsManager *metrics.Manager) *LayeredMetricsCache {
	return &LayeredMetricsCache{
		local:          local,
		remote:         remote,
		metricsManager: metricsManager,
	}
}

func (c *LayeredMetricsCache) Get(ctx context.Context, key string) (trainingload.MetricsResult, bool, error) {
	result, ok, err := c.local.Get(ctx, key)
	if err != nil {
		log.Warnf("local metrics cache get: %s", err)
	}
	c.observe("local", ok)
	if ok || c.remote == nil {
		return result, ok, nil
	}

	result, ok, err = c.remote.Get(ctx, key)
	if err != nil {
		log.Errorf("remote metrics cache get: %s", err)
		return trainingload.MetricsResult{}, false, nil
	}
	c.observe("remote", ok)
	if ok {
		// remote TTL is unknown here, keep the local copy short lived
		if err := c.local.Set(ctx, key, result, time.Minute); err != nil {
			log.Warnf("local metrics cache back fill: %s", err)
		}
	}
	return result, ok, nil
}

func (c *LayeredMetricsCache) Set(ctx context.Context, key string, result trainingload.MetricsResult, ttl time.Duration) (err error) {
	err = multierr.Append(err, c.local.Set(ctx, key, result, ttl))
	if c.remote != nil {
		err = multierr.Append(err, c.remote.Set(ctx, key, result, ttl))
	}
	return err
}

type userInvalidator interface {
	InvalidateUser(ctx context.Context, userID string) (int, error)
}

// InvalidateUser drops the remote entries of userID. Local entries are keyed
// by the input they were computed from, so they are never served after a
// change and age out with their TTL.
func (c *LayeredMetricsCache) InvalidateUser(ctx context.Context, userID string) (int, error) {
	remote, ok := c.remote.(userInvalidator)
	if !ok {
		return 0, nil
	}
	return remote.InvalidateUser(ctx, userID)
}

func (c *LayeredMetricsCache) observe(layer string, hit bool) {
	if c.metricsManager == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	c.metricsManager.CounterCacheLookups.WithLabelValues(layer, result).Inc()
}
