package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps entries in process memory. Entries vanish on restart,
// which matches the lifetime of the rest of the service state.
//
// The store runs without a janitor goroutine: expired entries are never
// returned by Get and are purged on each Set.
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{store: gocache.New(gocache.NoExpiration, 0)}
}

// Get retrieves a value. The returned slice is a copy.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, false, nil
	}
	data, ok := v.([]byte)
	if !ok {
		c.store.Delete(key)
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

// Set stores a copy of data. ttl <= 0 means no expiry.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	c.store.DeleteExpired()
	c.store.Set(key, append([]byte(nil), data...), ttl)
	return nil
}

// Delete removes a value.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.store.Delete(key)
	return nil
}

// Clear drops every entry.
func (c *MemoryCache) Clear(ctx context.Context) (int, error) {
	n := c.store.ItemCount()
	c.store.Flush()
	return n, nil
}

// Close drops every entry.
func (c *MemoryCache) Close() error {
	c.store.Flush()
	return nil
}

var (
	_ Cache   = (*MemoryCache)(nil)
	_ Clearer = (*MemoryCache)(nil)
)
