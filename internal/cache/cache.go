package cache

import (
	"sync"
	"time"
)

type entry struct {
	data    []byte
	expires time.Time
}

// PageCache holds fully rendered response payloads for a fixed TTL.
// A key always maps to one complete payload; entries expire on read.
type PageCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
}

// NewPageCache creates a PageCache whose entries live for ttl
func NewPageCache(ttl time.Duration) *PageCache {
	return &PageCache{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

// Get returns the cached payload for key if it has not expired
func (c *PageCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(e.expires) {
		return nil, false
	}
	return e.data, true
}

// Put stores a complete rendered payload under key
func (c *PageCache) Put(key string, data []byte) {
	c.mu.Lock()
	c.entries[key] = entry{
		data:    data,
		expires: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Clear drops every entry immediately
func (c *PageCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}
