package database

import "context"

// Repo defines the interface for reference catalog operations.
// The concrete *Repository and *MemoryRepo satisfy this interface. Getters
// return nil, nil when the name is unknown.
type Repo interface {
	ListHardwarePresets(ctx context.Context) ([]HardwarePreset, error)
	GetHardwarePreset(ctx context.Context, name string) (*HardwarePreset, error)
	UpsertHardwarePreset(ctx context.Context, hw *HardwarePreset) error
	ListEngines(ctx context.Context) ([]Engine, error)
	GetEngine(ctx context.Context, name string) (*Engine, error)
	UpsertEngine(ctx context.Context, e *Engine) error
	ListWorkloads(ctx context.Context) ([]Workload, error)
	GetWorkload(ctx context.Context, name string) (*Workload, error)
	UpsertWorkload(ctx context.Context, w *Workload) error
}

// Compile-time checks that the implementations satisfy Repo.
var (
	_ Repo = (*Repository)(nil)
	_ Repo = (*MemoryRepo)(nil)
)
