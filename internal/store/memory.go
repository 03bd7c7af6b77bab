package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/fairwaylabs/formats-api/internal/models"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// memory is an in-memory map-based Store, safe for concurrent use.
// State is lost when the process restarts.
type memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	clock   clockwork.Clock
}

// NewMemoryStore constructs a new in-memory Store
func NewMemoryStore() Store {
	return NewMemoryStoreWithClock(clockwork.NewRealClock())
}

// NewMemoryStoreWithClock is NewMemoryStore with an injected clock for expiry
func NewMemoryStoreWithClock(clock clockwork.Clock) Store {
	return &memory{entries: make(map[string]memoryEntry), clock: clock}
}

func (m *memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("key %q: %w", key, models.ErrNotFound)
	}
	if !e.expiresAt.IsZero() && !m.clock.Now().Before(e.expiresAt) {
		m.evict(key, e.expiresAt)
		return nil, fmt.Errorf("key %q: %w", key, models.ErrNotFound)
	}

	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

// evict drops key only if it still holds the entry that expired at expiresAt.
// A Set may have replaced it since the read lock was released.
func (m *memory) evict(key string, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.entries[key]; ok && cur.expiresAt.Equal(expiresAt) {
		delete(m.entries, key)
	}
}

func (m *memory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	e := memoryEntry{value: make([]byte, len(value))}
	copy(e.value, value)
	if ttl > 0 {
		e.expiresAt = m.clock.Now().Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = e
	return nil
}

func (m *memory) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

func (m *memory) Ping(ctx context.Context) error { return nil }

func (m *memory) Close() error { return nil }
