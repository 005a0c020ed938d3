package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	count     int64
	expiresAt time.Time
}

// MemoryCache is an in-process implementation of pkg/cache.Cache used when
// Redis is disabled and in tests. Counters expire lazily on access.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]*memoryEntry)}
}

func (m *MemoryCache) Increment(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok || (!e.expiresAt.IsZero() && time.Now().After(e.expiresAt)) {
		e = &memoryEntry{}
		m.entries[key] = e
	}
	e.count++
	return e.count, nil
}

func (m *MemoryCache) Expire(_ context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entries[key]; ok {
		e.expiresAt = time.Now().Add(ttl)
	}
	return nil
}

func (m *MemoryCache) TTL(_ context.Context, key string) (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok || e.expiresAt.IsZero() {
		return -1, nil
	}
	return time.Until(e.expiresAt), nil
}

func (m *MemoryCache) Ping(context.Context) error {
	return nil
}
