package cache

import (
	"context"
	"sync"
	"time"
)

// Store is the key-value cache used by the weather and geocoding clients.
// Caching here is a latency optimization, not a correctness mechanism:
// concurrent identical lookups may both miss and both fetch, and that is
// acceptable.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

// Memory is an in-process TTL store with explicit expiry checks on read.
type Memory struct {
	mu    sync.RWMutex
	items map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// NewMemory creates an empty in-process store
func NewMemory() *Memory {
	return &Memory{items: make(map[string]memoryEntry)}
}

// Get returns the cached value if present and not expired
func (m *Memory) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	e, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return "", false
	}
	if time.Now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return "", false
	}
	return e.value, true
}

// Set stores a value with the given TTL
func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) {
	m.mu.Lock()
	m.items[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()
}

// Len reports the number of entries including any not yet swept
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
