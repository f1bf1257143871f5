package cache

import (
	"sync"
	"time"
)

// MemoryStore is an in-memory validator store. Data is lost when the
// process exits; suitable for single-process servers and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]Entry
	closed bool
}

// NewMemoryStore creates a new in-memory validator store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]Entry)}
}

// Put implements Store.
func (m *MemoryStore) Put(key string, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	if e.StoredAt.IsZero() {
		e.StoredAt = time.Now().UTC()
	}
	m.data[key] = e
	return nil
}

// Get implements Store.
func (m *MemoryStore) Get(key string) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Entry{}, ErrStoreClosed
	}
	e, ok := m.data[key]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	delete(m.data, key)
	return nil
}

// Clear implements Store.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	m.data = make(map[string]Entry)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}

// NoopStore is a Store that caches nothing. Every Get misses.
type NoopStore struct{}

// Put does nothing.
func (NoopStore) Put(string, Entry) error { return nil }

// Get always misses.
func (NoopStore) Get(string) (Entry, error) { return Entry{}, ErrNotFound }

// Delete does nothing.
func (NoopStore) Delete(string) error { return nil }

// Clear does nothing.
func (NoopStore) Clear() error { return nil }

// Close does nothing.
func (NoopStore) Close() error { return nil }
