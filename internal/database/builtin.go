package database

import (
	"context"

	"github.com/dbcalc/dbcalc/internal/sizing"
)

// DefaultHardware is the preset used when a request names none.
const DefaultHardware = "standard"

var standardPreset = HardwarePreset{
	Name:        DefaultHardware,
	Description: "2U commodity server with 500GB SSDs, 1TB spinning disks and 16GB RAM sticks",
	Cost:        sizing.HardwareCost{ServerBody: 2000, SSDPrice: 500, SpinningPrice: 100, RAMUnitPrice: 30},
	Params: sizing.HardwareParams{
		SSDSize: 500 * 1024, SpinningSize: 1000 * 1024, RAMUnitSize: 16 * 1024, MaxRAMUnitsPerServer: 16,
	},
	Facility: sizing.FacilityCost{UnitsPerRack: 20, RackMonthlyPrice: 1000, UnitsPerServer: 2, CostOfMoney: 3, AmortizationPeriod: 36},
}

// BuiltinHardware returns the presets shipped with the calculator.
func BuiltinHardware() []HardwarePreset {
	compact := standardPreset
	compact.Name = "compact"
	compact.Description = "the standard build in a 1U chassis"
	compact.Facility.UnitsPerServer = 1
	return []HardwarePreset{standardPreset, compact}
}

// BuiltinEngines returns the database systems shipped with the calculator.
func BuiltinEngines() []Engine {
	tarantool := sizing.EngineProfile{
		MaxReadQPSPerServer: 100000, MaxWriteQPSPerServer: 100000,
		StorageOverhead: 110, SpinningRatio: 100, SSDRatio: 0, RAMRatio: 100,
		MinRAMPerServer: 1024, MaxRAMPerServer: 256 * 1024,
	}
	tarantoolSupport := tarantool
	tarantoolSupport.MonthlySupportPerServer = 1000

	redis := sizing.EngineProfile{
		MaxReadQPSPerServer: 80000, MaxWriteQPSPerServer: 80000,
		StorageOverhead: 125, SpinningRatio: 100, SSDRatio: 0, RAMRatio: 100,
		MinRAMPerServer: 1024, MaxRAMPerServer: 256 * 1024,
	}
	redisSupport := redis
	redisSupport.MonthlySupportPerServer = 3000

	mysql := sizing.EngineProfile{
		MaxReadQPSPerServer: 10000, MaxWriteQPSPerServer: 1000,
		StorageOverhead: 130, SpinningRatio: 0, SSDRatio: 100, RAMRatio: 10,
		MinRAMPerServer: 32 * 1024, MaxRAMPerServer: 1024 * 1024,
	}

	return []Engine{
		{Name: "tarantool", DisplayName: "Tarantool", Profile: tarantool},
		{Name: "tarantool-with-support", DisplayName: "Tarantool with support", Profile: tarantoolSupport},
		{Name: "redis", DisplayName: "Redis", Profile: redis},
		{Name: "redis-with-support", DisplayName: "Redis with support", Profile: redisSupport},
		{Name: "mysql", DisplayName: "MySQL", Profile: mysql},
	}
}

// BuiltinWorkloads returns the reference workloads shipped with the
// calculator. Every one keeps two replicas on RAID1 pairs.
func BuiltinWorkloads() []Workload {
	w := func(name, display string, read, write, size int) Workload {
		return Workload{
			Name:        name,
			DisplayName: display,
			Requirements: sizing.Requirements{
				ReadQPS: read, WriteQPS: write, DatasetSize: size, Replicas: 2, DisksPerRAID: 2,
			},
		}
	}
	const (
		big   = 1024 * 1024
		small = 128 * 1024
	)
	return []Workload{
		w("read-write-heavy-big-dataset", "Read/write heavy, big dataset", 100000, 50000, big),
		w("read-heavy-big-dataset", "Read heavy, big dataset", 100000, 100, big),
		w("just-big-dataset", "Just a big dataset", 100, 20, big),
		w("read-write-heavy-small-dataset", "Read/write heavy, small dataset", 100000, 50000, small),
		w("read-heavy-small-dataset", "Read heavy, small dataset", 100000, 100, small),
		w("super-big-super-heavy", "Super big, super heavy", 3000000, 1000000, big),
	}
}

// NewBuiltinRepo returns a MemoryRepo holding the built-in catalog.
func NewBuiltinRepo() *MemoryRepo {
	m := NewMemoryRepo()
	for _, hw := range BuiltinHardware() {
		m.presets[hw.Name] = &hw
	}
	for _, e := range BuiltinEngines() {
		m.engines[e.Name] = &e
	}
	for _, w := range BuiltinWorkloads() {
		m.workloads[w.Name] = &w
	}
	return m
}

// Seed copies every catalog entry from src into dst, replacing entries with
// the same name.
func Seed(ctx context.Context, dst, src Repo) error {
	presets, err := src.ListHardwarePresets(ctx)
	if err != nil {
		return err
	}
	for i := range presets {
		if err := dst.UpsertHardwarePreset(ctx, &presets[i]); err != nil {
			return err
		}
	}

	engines, err := src.ListEngines(ctx)
	if err != nil {
		return err
	}
	for i := range engines {
		if err := dst.UpsertEngine(ctx, &engines[i]); err != nil {
			return err
		}
	}

	workloads, err := src.ListWorkloads(ctx)
	if err != nil {
		return err
	}
	for i := range workloads {
		if err := dst.UpsertWorkload(ctx, &workloads[i]); err != nil {
			return err
		}
	}
	return nil
}
