package cachestore

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	appErrors "github.com/oshawa-scheduler/core/pkg/errors"
)

type memoryEntry struct {
	payload []byte
	expires time.Time
}

// MemoryRepository is an in-process Repository used by tests and by
// deployments that run without a redis instance. There is no ecosystem
// in-memory TTL cache among the retrieval pack's dependencies, so this is a
// small stdlib map guarded by a sync.Mutex, implementing the same Repository
// contract RedisRepository fulfills.
type MemoryRepository struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryRepository builds an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get retrieves and unmarshals the cached value into dest.
func (m *MemoryRepository) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	entry, ok := m.entries[key]
	m.mu.Unlock()
	if !ok {
		return appErrors.ErrCacheMiss
	}
	if !entry.expires.IsZero() && m.now().After(entry.expires) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(entry.payload, dest)
}

// Set marshals value and stores it with the given TTL. A zero TTL means no
// expiry.
func (m *MemoryRepository) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	entry := memoryEntry{payload: payload}
	if ttl > 0 {
		entry.expires = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}
