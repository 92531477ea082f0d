package cache

import (
	"sync"
	"time"
)

// Cache is the read-mostly cache used for template lookups. Implementations
// must be safe for concurrent use.
type Cache interface {
	// Get returns the cached value and true, or nil and false on a miss.
	Get(key string) (interface{}, bool)

	// Set stores a value with the given TTL.
	Set(key string, value interface{}, ttl time.Duration)

	// GetOrSet returns the cached value, computing and storing it on a miss.
	// The compute function runs at most once per expired key.
	GetOrSet(key string, ttl time.Duration, compute func() (interface{}, error)) (interface{}, error)

	// Delete removes a key. Used to invalidate templates on update.
	Delete(key string)

	// Clear drops everything.
	Clear()

	// Size returns the item count, expired entries included.
	Size() int

	// Stop shuts down the background janitor.
	Stop()
}

type item struct {
	value     interface{}
	expiresAt time.Time
}

func (i *item) expired() bool {
	return time.Now().After(i.expiresAt)
}

// Memory is a thread-safe in-memory cache with periodic expiry sweeps.
type Memory struct {
	mu      sync.RWMutex
	items   map[string]*item
	sweep   time.Duration
	stopped chan struct{}
}

// NewMemory creates an in-memory cache whose janitor runs every sweepInterval.
func NewMemory(sweepInterval time.Duration) *Memory {
	c := &Memory{
		items:   make(map[string]*item),
		sweep:   sweepInterval,
		stopped: make(chan struct{}),
	}
	go c.janitor()
	return c
}

func (c *Memory) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, ok := c.items[key]
	if !ok || it.expired() {
		return nil, false
	}
	return it.value, true
}

func (c *Memory) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = &item{value: value, expiresAt: time.Now().Add(ttl)}
}

func (c *Memory) GetOrSet(key string, ttl time.Duration, compute func() (interface{}, error)) (interface{}, error) {
	c.mu.RLock()
	it, ok := c.items[key]
	if ok && !it.expired() {
		c.mu.RUnlock()
		return it.value, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Re-check under the write lock; another goroutine may have raced us here.
	it, ok = c.items[key]
	if ok && !it.expired() {
		return it.value, nil
	}

	value, err := compute()
	if err != nil {
		return nil, err
	}
	c.items[key] = &item{value: value, expiresAt: time.Now().Add(ttl)}
	return value, nil
}

func (c *Memory) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

func (c *Memory) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*item)
}

func (c *Memory) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

func (c *Memory) Stop() {
	close(c.stopped)
}

func (c *Memory) janitor() {
	ticker := time.NewTicker(c.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, it := range c.items {
				if now.After(it.expiresAt) {
					delete(c.items, key)
				}
			}
			c.mu.Unlock()
		case <-c.stopped:
			return
		}
	}
}
