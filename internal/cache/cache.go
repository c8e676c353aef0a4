// ABOUTME: Query cache with TTL expiry and key invalidation for data hooks
// ABOUTME: Thread-safe cache using sync.Map with periodic cleanup

package cache

import (
	"log/slog"
	"strings"
	"sync"
	"time"
)

type entry struct {
	data      interface{}
	expiresAt time.Time
}

// Cache holds fetched collections keyed by query (for example
// "inventory:cooler" or "shopping:items:12"). A zero TTL disables caching.
type Cache struct {
	store sync.Map
	ttl   time.Duration
	stop  chan struct{}
	once  sync.Once
}

func New(ttl time.Duration) *Cache {
	c := &Cache{
		ttl:  ttl,
		stop: make(chan struct{}),
	}
	if ttl > 0 {
		go c.startCleanup()
	}
	return c
}

func (c *Cache) Get(key string) (interface{}, bool) {
	val, ok := c.store.Load(key)
	if !ok {
		slog.Debug("Cache miss", "key", key)
		return nil, false
	}

	e := val.(entry)
	if time.Now().After(e.expiresAt) {
		c.store.Delete(key)
		slog.Debug("Cache expired", "key", key)
		return nil, false
	}

	slog.Debug("Cache hit", "key", key)
	return e.data, true
}

func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	e := entry{
		data:      value,
		expiresAt: time.Now().Add(ttl),
	}
	c.store.Store(key, e)
	slog.Debug("Cache set", "key", key, "ttl", ttl)
}

// Invalidate drops a single key so the next read goes to the server
func (c *Cache) Invalidate(key string) {
	c.store.Delete(key)
	slog.Debug("Cache invalidated", "key", key)
}

// InvalidatePrefix drops every key starting with prefix
func (c *Cache) InvalidatePrefix(prefix string) {
	c.store.Range(func(key, _ interface{}) bool {
		if k, ok := key.(string); ok && strings.HasPrefix(k, prefix) {
			c.store.Delete(key)
		}
		return true
	})
	slog.Debug("Cache invalidated", "prefix", prefix)
}

// Clear drops every entry, used on logout
func (c *Cache) Clear() {
	c.store.Range(func(key, _ interface{}) bool {
		c.store.Delete(key)
		return true
	})
}

// Stop ends the cleanup goroutine
func (c *Cache) Stop() {
	c.once.Do(func() { close(c.stop) })
}

func (c *Cache) startCleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now()
			c.store.Range(func(key, val interface{}) bool {
				e := val.(entry)
				if now.After(e.expiresAt) {
					c.store.Delete(key)
				}
				return true
			})
		}
	}
}
