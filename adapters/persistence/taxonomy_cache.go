package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/haanhpham/autopress/internal/domain/taxonomy"
	"github.com/haanhpham/autopress/pkg/logger"
)

// redisTaxonomyCache stores one serialized index per site URL + kind under a
// TTL. Expiry is the only invalidation: an entry is replaced or gone, never
// patched.
type redisTaxonomyCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewRedisTaxonomyCache(rdb *redis.Client, ttl time.Duration, log logger.Logger) taxonomy.Cache {
	return &redisTaxonomyCache{rdb: rdb, ttl: ttl, logger: log}
}

func taxonomyCacheKey(siteURL string, kind taxonomy.Kind) string {
	return fmt.Sprintf("autopress:taxonomy:%s:%s", siteURL, kind)
}

func (c *redisTaxonomyCache) Get(ctx context.Context, siteURL string, kind taxonomy.Kind) (taxonomy.Index, bool) {
	key := taxonomyCacheKey(siteURL, kind)

	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("taxonomy cache read failed, treat as miss", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var ix taxonomy.Index
	if err := json.Unmarshal(data, &ix); err != nil {
		c.logger.Warn("taxonomy cache entry corrupt, drop it", zap.String("key", key), zap.Error(err))
		c.rdb.Del(ctx, key)
		return nil, false
	}
	return ix, true
}

func (c *redisTaxonomyCache) Set(ctx context.Context, siteURL string, kind taxonomy.Kind, ix taxonomy.Index) {
	key := taxonomyCacheKey(siteURL, kind)

	data, err := json.Marshal(ix)
	if err != nil {
		c.logger.Warn("taxonomy cache marshal failed, skip", zap.String("key", key), zap.Error(err))
		return
	}

	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("taxonomy cache write failed, skip", zap.String("key", key), zap.Error(err))
	}
}
