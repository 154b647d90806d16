package storage

import (
	"context"
	"sync"
)

// MemoryAdapter is a process-local CartStorage, lost on restart.
type MemoryAdapter struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{data: make(map[string]string)}
}

func (m *MemoryAdapter) Load(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	return value, ok, nil
}

func (m *MemoryAdapter) Save(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = value
	return nil
}
