package storage

import (
	"context"
	"sync"
)

// MemorySnapshots is a Snapshots implementation for tests.
type MemorySnapshots struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemorySnapshots() *MemorySnapshots {
	return &MemorySnapshots{data: make(map[string][]byte)}
}

func (m *MemorySnapshots) Save(ctx context.Context, key string, v interface{}) error {
	raw, err := marshalEnvelope(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	return nil
}

func (m *MemorySnapshots) Load(ctx context.Context, key string, v interface{}) error {
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return ErrSnapshotMissing
	}
	return unmarshalEnvelope(raw, v)
}

// Keys returns the stored snapshot keys, for assertions in tests.
func (m *MemorySnapshots) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys
}
