package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is an in-process cache bounded by entry count. When full,
// expired entries are dropped first, then the oldest write.
type MemoryCache struct {
	mu      sync.Mutex
	max     int
	now     func() time.Time
	seq     uint64
	entries map[string]memoryEntry
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
	seq       uint64
}

// DefaultMemoryEntries bounds a MemoryCache created with max <= 0.
const DefaultMemoryEntries = 1024

// NewMemoryCache returns an empty cache holding at most max entries.
func NewMemoryCache(max int) *MemoryCache {
	if max <= 0 {
		max = DefaultMemoryEntries
	}
	return &MemoryCache{max: max, now: time.Now, entries: make(map[string]memoryEntry)}
}

// Get returns a copy of the stored bytes.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if c.expired(e) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return append([]byte(nil), e.data...), true, nil
}

// Set stores a copy of data.
func (c *MemoryCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.max {
		c.evict()
	}
	c.seq++
	e := memoryEntry{data: append([]byte(nil), data...), seq: c.seq}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.entries[key] = e
	return nil
}

// Delete removes key.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close drops every entry.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
	return nil
}

func (c *MemoryCache) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && c.now().After(e.expiresAt)
}

// evict removes expired entries, or failing that the oldest one.
// Callers hold c.mu.
func (c *MemoryCache) evict() {
	var victim string
	var oldest uint64
	for k, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, k)
			continue
		}
		if victim == "" || e.seq < oldest {
			victim, oldest = k, e.seq
		}
	}
	if len(c.entries) >= c.max && victim != "" {
		delete(c.entries, victim)
	}
}

var _ Cache = (*MemoryCache)(nil)
