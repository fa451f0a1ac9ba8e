package database

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo. It backs the server
// when no database is configured and stands in for Postgres in tests.
type MemoryRepo struct {
	mu        sync.Mutex
	presets   map[string]*HardwarePreset
	engines   map[string]*Engine
	workloads map[string]*Workload
}

// NewMemoryRepo creates an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		presets:   make(map[string]*HardwarePreset),
		engines:   make(map[string]*Engine),
		workloads: make(map[string]*Workload),
	}
}

func (m *MemoryRepo) ListHardwarePresets(_ context.Context) ([]HardwarePreset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedValues(m.presets, func(hw HardwarePreset) string { return hw.Name }), nil
}

func (m *MemoryRepo) GetHardwarePreset(_ context.Context, name string) (*HardwarePreset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hw, ok := m.presets[name]; ok {
		c := *hw
		return &c, nil
	}
	return nil, nil
}

func (m *MemoryRepo) UpsertHardwarePreset(_ context.Context, hw *HardwarePreset) error {
	if hw.Name == "" {
		return fmt.Errorf("upsert hardware preset: empty name")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *hw
	m.presets[hw.Name] = &c
	return nil
}

func (m *MemoryRepo) ListEngines(_ context.Context) ([]Engine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedValues(m.engines, func(e Engine) string { return e.Name }), nil
}

func (m *MemoryRepo) GetEngine(_ context.Context, name string) (*Engine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.engines[name]; ok {
		c := *e
		return &c, nil
	}
	return nil, nil
}

func (m *MemoryRepo) UpsertEngine(_ context.Context, e *Engine) error {
	if e.Name == "" {
		return fmt.Errorf("upsert engine: empty name")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *e
	m.engines[e.Name] = &c
	return nil
}

func (m *MemoryRepo) ListWorkloads(_ context.Context) ([]Workload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedValues(m.workloads, func(w Workload) string { return w.Name }), nil
}

func (m *MemoryRepo) GetWorkload(_ context.Context, name string) (*Workload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.workloads[name]; ok {
		c := *w
		return &c, nil
	}
	return nil, nil
}

func (m *MemoryRepo) UpsertWorkload(_ context.Context, w *Workload) error {
	if w.Name == "" {
		return fmt.Errorf("upsert workload: empty name")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *w
	m.workloads[w.Name] = &c
	return nil
}

// sortedValues copies the map values ordered by key, matching the ORDER BY
// name of the Postgres queries.
func sortedValues[T any](m map[string]*T, key func(T) string) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, *v)
	}
	slices.SortFunc(out, func(a, b T) int { return cmp.Compare(key(a), key(b)) })
	return out
}
