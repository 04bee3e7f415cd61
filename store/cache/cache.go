// Package cache provides a small in-memory TTL cache used by the store
// to keep hot tag and category lookups off the database.
package cache

import (
	"context"
	"sync"
	"time"
)

// Config holds the configuration for the cache.
type Config struct {
	DefaultTTL      time.Duration // TTL for entries, 0 means no expiration
	CleanupInterval time.Duration // how often expired entries are swept
	MaxItems        int           // max entries, 0 means unbounded
	OnEviction      func(key string, value any)
}

type item struct {
	value     any
	expiresAt time.Time
}

func (i *item) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

// Cache is a thread-safe in-memory cache with TTL and max-item eviction.
type Cache struct {
	mu     sync.RWMutex
	items  map[string]*item
	config Config
	done   chan struct{}
	once   sync.Once
}

// New creates a new cache and starts its cleanup goroutine.
func New(config Config) *Cache {
	c := &Cache{
		items:  make(map[string]*item),
		config: config,
		done:   make(chan struct{}),
	}

	if config.CleanupInterval > 0 {
		go c.janitor()
	}

	return c
}

// Get retrieves a value from the cache.
func (c *Cache) Get(_ context.Context, key string) (any, bool) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || it.expired(time.Now()) {
		return nil, false
	}
	return it.value, true
}

// Set stores a value with the default TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	c.SetWithTTL(ctx, key, value, c.config.DefaultTTL)
}

// SetWithTTL stores a value with an explicit TTL.
func (c *Cache) SetWithTTL(_ context.Context, key string, value any, ttl time.Duration) {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists && c.config.MaxItems > 0 && len(c.items) >= c.config.MaxItems {
		c.evictOneLocked()
	}
	c.items[key] = &item{value: value, expiresAt: expiresAt}
}

// Delete removes a value from the cache.
func (c *Cache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	it, ok := c.items[key]
	if ok {
		delete(c.items, key)
	}
	c.mu.Unlock()

	if ok && c.config.OnEviction != nil {
		c.config.OnEviction(key, it.value)
	}
}

// Close stops the cleanup goroutine.
func (c *Cache) Close() {
	c.once.Do(func() {
		close(c.done)
	})
}

// evictOneLocked removes the entry closest to expiration. Entries without
// expiration are only evicted when nothing else qualifies.
func (c *Cache) evictOneLocked() {
	var oldestKey string
	var oldest time.Time
	for key, it := range c.items {
		if oldestKey == "" || (!it.expiresAt.IsZero() && (oldest.IsZero() || it.expiresAt.Before(oldest))) {
			oldestKey = key
			oldest = it.expiresAt
		}
	}
	if oldestKey == "" {
		return
	}
	it := c.items[oldestKey]
	delete(c.items, oldestKey)
	if c.config.OnEviction != nil {
		c.config.OnEviction(oldestKey, it.value)
	}
}

func (c *Cache) janitor() {
	ticker := time.NewTicker(c.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *Cache) sweep() {
	now := time.Now()
	var evicted []struct {
		key   string
		value any
	}

	c.mu.Lock()
	for key, it := range c.items {
		if it.expired(now) {
			delete(c.items, key)
			if c.config.OnEviction != nil {
				evicted = append(evicted, struct {
					key   string
					value any
				}{key, it.value})
			}
		}
	}
	c.mu.Unlock()

	for _, e := range evicted {
		c.config.OnEviction(e.key, e.value)
	}
}
