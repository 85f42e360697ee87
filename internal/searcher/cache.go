package searcher

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/searchcore/invindex/pkg/config"
	"github.com/searchcore/invindex/pkg/metrics"
	pkgredis "github.com/searchcore/invindex/pkg/redis"
)

const keyPrefix = "invindex:query:"

// QueryCache caches query result sets in Redis. Concurrent identical
// queries collapse onto one computation through singleflight. The cache
// is strictly best-effort: any Redis failure falls back to computing the
// result locally.
type QueryCache struct {
	client  *pkgredis.Client
	cfg     config.RedisConfig
	group   singleflight.Group
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewCache creates a QueryCache over an established Redis client.
func NewCache(client *pkgredis.Client, cfg config.RedisConfig, m *metrics.Metrics) *QueryCache {
	return &QueryCache{
		client:  client,
		cfg:     cfg,
		metrics: m,
		logger:  slog.Default().With("component", "query-cache"),
	}
}

// GetOrCompute returns the cached result for key, or computes and stores
// it on a miss.
func (c *QueryCache) GetOrCompute(ctx context.Context, key string, compute func() []uint32) []uint32 {
	redisKey := c.buildKey(key)
	if ids, ok := c.get(ctx, redisKey); ok {
		c.metrics.CacheHitsTotal.Inc()
		return ids
	}
	c.metrics.CacheMissesTotal.Inc()

	result, _, _ := c.group.Do(redisKey, func() (any, error) {
		ids := compute()
		c.set(ctx, redisKey, ids)
		return ids, nil
	})
	return result.([]uint32)
}

func (c *QueryCache) get(ctx context.Context, key string) ([]uint32, bool) {
	data, err := c.client.Get(ctx, key)
	if err != nil {
		if !pkgredis.IsNilError(err) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		return nil, false
	}
	var ids []uint32
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		return nil, false
	}
	if ids == nil {
		ids = []uint32{}
	}
	return ids, true
}

func (c *QueryCache) set(ctx context.Context, key string, ids []uint32) {
	data, err := json.Marshal(ids)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.cfg.CacheTTL); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

func (c *QueryCache) buildKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%s%x", keyPrefix, sum[:16])
}
