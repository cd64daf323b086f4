package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/haanhpham/autopress/internal/domain/taxonomy"
)

type memoryCacheEntry struct {
	index     taxonomy.Index
	expiresAt time.Time
}

// memoryTaxonomyCache is the in-process fallback used by the worker when
// Redis is not configured, and by tests. Same wholesale-expiry contract as
// the Redis cache.
type memoryTaxonomyCache struct {
	mu      sync.Mutex
	entries map[string]memoryCacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryTaxonomyCache(ttl time.Duration) taxonomy.Cache {
	return &memoryTaxonomyCache{
		entries: map[string]memoryCacheEntry{},
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *memoryTaxonomyCache) Get(_ context.Context, siteURL string, kind taxonomy.Kind) (taxonomy.Index, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := taxonomyCacheKey(siteURL, kind)
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.index, true
}

func (c *memoryTaxonomyCache) Set(_ context.Context, siteURL string, kind taxonomy.Kind, ix taxonomy.Index) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[taxonomyCacheKey(siteURL, kind)] = memoryCacheEntry{
		index:     ix,
		expiresAt: c.now().Add(c.ttl),
	}
}
