package store

import (
	"context"
	"slices"
	"sync"
	"time"
)

// Memory is a process-local Store.
type Memory struct {
	mu      sync.RWMutex
	values  map[string][]byte
	results []Result
	nextID  int64
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(v), nil
}

func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = slices.Clone(value)
	return nil
}

func (m *Memory) RecordResult(ctx context.Context, r Result) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	r.ID = m.nextID
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	m.results = append(m.results, r)
	return r.ID, nil
}

func (m *Memory) TopResults(ctx context.Context, limit int) ([]Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	top := slices.Clone(m.results)
	slices.SortStableFunc(top, func(a, b Result) int {
		return b.Score - a.Score
	})
	if limit >= 0 && len(top) > limit {
		top = top[:limit]
	}
	return top, nil
}

func (m *Memory) Close() error {
	return nil
}
