package cache

import (
	"context"
	"sync"
	"time"

	"github.com/modernstore/backend/internal/application/report"
)

// InMemoryCache implements the dashboard's byte cache in process memory.
// It is the default for single-instance deployments and tests; switch to
// RedisCache when instances must share cached aggregates.
type InMemoryCache struct {
	mu      sync.RWMutex
	entries map[string]inMemoryEntry
	now     func() time.Time
}

type inMemoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewInMemoryCache creates a new in-memory cache
func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{
		entries: make(map[string]inMemoryEntry),
		now:     time.Now,
	}
}

// Get returns the cached value for key, or false on miss or expiry
func (c *InMemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.value, true
}

// Set stores value under key with the given TTL
func (c *InMemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = inMemoryEntry{
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
}

// Ensure InMemoryCache implements the dashboard cache port
var _ report.Cache = (*InMemoryCache)(nil)
