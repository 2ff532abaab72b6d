package kv

import (
	"context"
	"sync"
)

// memoryStore is the fallback when Redis is not configured. Slots live for
// the process lifetime only, which is enough for single-host demos.
type memoryStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemoryStore() SlotStore {
	return &memoryStore{slots: make(map[string][]byte)}
}

func (m *memoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.slots[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *memoryStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.slots[key] = stored
	return nil
}
