package database

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// Repository provides catalog operations backed by PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository with a connection pool.
func NewRepository(ctx context.Context, connString string) (*Repository, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Repository{pool: pool}, nil
}

// Close closes the connection pool.
func (r *Repository) Close() {
	r.pool.Close()
}

// Migrate creates the catalog tables if they do not exist.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

const presetColumns = `name, description,
	cost_server_body, ssd_price, spinning_price, ram_unit_price,
	ssd_size, spinning_size, ram_unit_size, max_ram_units_per_server,
	units_per_rack, rack_monthly_price, units_per_server, cost_of_money, amortization_period`

func scanPreset(row pgx.Row) (*HardwarePreset, error) {
	var hw HardwarePreset
	err := row.Scan(&hw.Name, &hw.Description,
		&hw.Cost.ServerBody, &hw.Cost.SSDPrice, &hw.Cost.SpinningPrice, &hw.Cost.RAMUnitPrice,
		&hw.Params.SSDSize, &hw.Params.SpinningSize, &hw.Params.RAMUnitSize, &hw.Params.MaxRAMUnitsPerServer,
		&hw.Facility.UnitsPerRack, &hw.Facility.RackMonthlyPrice, &hw.Facility.UnitsPerServer,
		&hw.Facility.CostOfMoney, &hw.Facility.AmortizationPeriod)
	if err != nil {
		return nil, err
	}
	return &hw, nil
}

// ListHardwarePresets returns all hardware presets ordered by name.
func (r *Repository) ListHardwarePresets(ctx context.Context) ([]HardwarePreset, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+presetColumns+` FROM hardware_presets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list hardware presets: %w", err)
	}
	defer rows.Close()

	var result []HardwarePreset
	for rows.Next() {
		hw, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan hardware preset: %w", err)
		}
		result = append(result, *hw)
	}
	return result, rows.Err()
}

// GetHardwarePreset returns a preset by name, or nil if not found.
func (r *Repository) GetHardwarePreset(ctx context.Context, name string) (*HardwarePreset, error) {
	hw, err := scanPreset(r.pool.QueryRow(ctx,
		`SELECT `+presetColumns+` FROM hardware_presets WHERE name = $1`, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query hardware preset: %w", err)
	}
	return hw, nil
}

// UpsertHardwarePreset inserts or replaces a preset keyed by name.
func (r *Repository) UpsertHardwarePreset(ctx context.Context, hw *HardwarePreset) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO hardware_presets (`+presetColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		ON CONFLICT (name) DO UPDATE SET
			description              = EXCLUDED.description,
			cost_server_body         = EXCLUDED.cost_server_body,
			ssd_price                = EXCLUDED.ssd_price,
			spinning_price           = EXCLUDED.spinning_price,
			ram_unit_price           = EXCLUDED.ram_unit_price,
			ssd_size                 = EXCLUDED.ssd_size,
			spinning_size            = EXCLUDED.spinning_size,
			ram_unit_size            = EXCLUDED.ram_unit_size,
			max_ram_units_per_server = EXCLUDED.max_ram_units_per_server,
			units_per_rack           = EXCLUDED.units_per_rack,
			rack_monthly_price       = EXCLUDED.rack_monthly_price,
			units_per_server         = EXCLUDED.units_per_server,
			cost_of_money            = EXCLUDED.cost_of_money,
			amortization_period      = EXCLUDED.amortization_period,
			updated_at               = now()`,
		hw.Name, hw.Description,
		hw.Cost.ServerBody, hw.Cost.SSDPrice, hw.Cost.SpinningPrice, hw.Cost.RAMUnitPrice,
		hw.Params.SSDSize, hw.Params.SpinningSize, hw.Params.RAMUnitSize, hw.Params.MaxRAMUnitsPerServer,
		hw.Facility.UnitsPerRack, hw.Facility.RackMonthlyPrice, hw.Facility.UnitsPerServer,
		hw.Facility.CostOfMoney, hw.Facility.AmortizationPeriod,
	)
	if err != nil {
		return fmt.Errorf("upsert hardware preset %s: %w", hw.Name, err)
	}
	return nil
}

const engineColumns = `name, display_name,
	max_read_qps_per_server, max_write_qps_per_server, overhead_for_dataset_storing,
	data_spinning_ratio, data_ssd_ratio, data_ram_ratio,
	min_ram_amount_per_server, max_ram_amount_per_server,
	monthly_support_per_server, monthly_license_fee_per_server`

func scanEngine(row pgx.Row) (*Engine, error) {
	var e Engine
	p := &e.Profile
	err := row.Scan(&e.Name, &e.DisplayName,
		&p.MaxReadQPSPerServer, &p.MaxWriteQPSPerServer, &p.StorageOverhead,
		&p.SpinningRatio, &p.SSDRatio, &p.RAMRatio,
		&p.MinRAMPerServer, &p.MaxRAMPerServer,
		&p.MonthlySupportPerServer, &p.MonthlyLicenseFeePerServer)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListEngines returns all engine profiles ordered by name.
func (r *Repository) ListEngines(ctx context.Context) ([]Engine, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+engineColumns+` FROM engine_profiles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list engines: %w", err)
	}
	defer rows.Close()

	var result []Engine
	for rows.Next() {
		e, err := scanEngine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan engine: %w", err)
		}
		result = append(result, *e)
	}
	return result, rows.Err()
}

// GetEngine returns an engine profile by name, or nil if not found.
func (r *Repository) GetEngine(ctx context.Context, name string) (*Engine, error) {
	e, err := scanEngine(r.pool.QueryRow(ctx,
		`SELECT `+engineColumns+` FROM engine_profiles WHERE name = $1`, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query engine: %w", err)
	}
	return e, nil
}

// UpsertEngine inserts or replaces an engine profile keyed by name.
func (r *Repository) UpsertEngine(ctx context.Context, e *Engine) error {
	p := e.Profile
	_, err := r.pool.Exec(ctx, `
		INSERT INTO engine_profiles (`+engineColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (name) DO UPDATE SET
			display_name                   = EXCLUDED.display_name,
			max_read_qps_per_server        = EXCLUDED.max_read_qps_per_server,
			max_write_qps_per_server       = EXCLUDED.max_write_qps_per_server,
			overhead_for_dataset_storing   = EXCLUDED.overhead_for_dataset_storing,
			data_spinning_ratio            = EXCLUDED.data_spinning_ratio,
			data_ssd_ratio                 = EXCLUDED.data_ssd_ratio,
			data_ram_ratio                 = EXCLUDED.data_ram_ratio,
			min_ram_amount_per_server      = EXCLUDED.min_ram_amount_per_server,
			max_ram_amount_per_server      = EXCLUDED.max_ram_amount_per_server,
			monthly_support_per_server     = EXCLUDED.monthly_support_per_server,
			monthly_license_fee_per_server = EXCLUDED.monthly_license_fee_per_server,
			updated_at                     = now()`,
		e.Name, e.DisplayName,
		p.MaxReadQPSPerServer, p.MaxWriteQPSPerServer, p.StorageOverhead,
		p.SpinningRatio, p.SSDRatio, p.RAMRatio,
		p.MinRAMPerServer, p.MaxRAMPerServer,
		p.MonthlySupportPerServer, p.MonthlyLicenseFeePerServer,
	)
	if err != nil {
		return fmt.Errorf("upsert engine %s: %w", e.Name, err)
	}
	return nil
}

const workloadColumns = `name, display_name,
	read_qps, write_qps, size_of_dataset, number_of_replicas, disks_per_raid`

func scanWorkload(row pgx.Row) (*Workload, error) {
	var w Workload
	q := &w.Requirements
	err := row.Scan(&w.Name, &w.DisplayName,
		&q.ReadQPS, &q.WriteQPS, &q.DatasetSize, &q.Replicas, &q.DisksPerRAID)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// ListWorkloads returns all workloads ordered by name.
func (r *Repository) ListWorkloads(ctx context.Context) ([]Workload, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+workloadColumns+` FROM workloads ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list workloads: %w", err)
	}
	defer rows.Close()

	var result []Workload
	for rows.Next() {
		w, err := scanWorkload(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workload: %w", err)
		}
		result = append(result, *w)
	}
	return result, rows.Err()
}

// GetWorkload returns a workload by name, or nil if not found.
func (r *Repository) GetWorkload(ctx context.Context, name string) (*Workload, error) {
	w, err := scanWorkload(r.pool.QueryRow(ctx,
		`SELECT `+workloadColumns+` FROM workloads WHERE name = $1`, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query workload: %w", err)
	}
	return w, nil
}

// UpsertWorkload inserts or replaces a workload keyed by name.
func (r *Repository) UpsertWorkload(ctx context.Context, w *Workload) error {
	q := w.Requirements
	_, err := r.pool.Exec(ctx, `
		INSERT INTO workloads (`+workloadColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (name) DO UPDATE SET
			display_name       = EXCLUDED.display_name,
			read_qps           = EXCLUDED.read_qps,
			write_qps          = EXCLUDED.write_qps,
			size_of_dataset    = EXCLUDED.size_of_dataset,
			number_of_replicas = EXCLUDED.number_of_replicas,
			disks_per_raid     = EXCLUDED.disks_per_raid,
			updated_at         = now()`,
		w.Name, w.DisplayName, q.ReadQPS, q.WriteQPS, q.DatasetSize, q.Replicas, q.DisksPerRAID,
	)
	if err != nil {
		return fmt.Errorf("upsert workload %s: %w", w.Name, err)
	}
	return nil
}
