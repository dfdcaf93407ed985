package store

import (
	"context"
	"sync"
)

// Memory is a map-backed KV. It is the zero-config default backend and the
// fixture the test suite runs against.
type Memory struct {
	mu   sync.RWMutex
	data map[Namespace]map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[Namespace]map[string]string)}
}

func (m *Memory) Get(_ context.Context, ns Namespace, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[ns][key]
	return val, ok, nil
}

func (m *Memory) Put(_ context.Context, ns Namespace, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[ns] == nil {
		m.data[ns] = make(map[string]string)
	}
	m.data[ns][key] = value
	return nil
}

func (m *Memory) Keys(_ context.Context, ns Namespace) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data[ns]))
	for k := range m.data[ns] {
		keys = append(keys, k)
	}
	return keys, nil
}
