package request

import "github.com/dbcalc/dbcalc/internal/sizing"

// field binds a wire name to the Input field it populates.
type field struct {
	name string
	ptr  func(in *sizing.Input) *int
}

// fields lists every input in canonical order. The names are the form keys
// calculator front-ends have always posted.
var fields = []field{
	{"i_cost_server_body", func(in *sizing.Input) *int { return &in.Hardware.ServerBody }},
	{"i_SSD_price", func(in *sizing.Input) *int { return &in.Hardware.SSDPrice }},
	{"i_spinning_price", func(in *sizing.Input) *int { return &in.Hardware.SpinningPrice }},
	{"i_RAM_unit_price", func(in *sizing.Input) *int { return &in.Hardware.RAMUnitPrice }},

	{"i_SSD_size", func(in *sizing.Input) *int { return &in.Params.SSDSize }},
	{"i_spinning_size", func(in *sizing.Input) *int { return &in.Params.SpinningSize }},
	{"i_RAM_unit_size", func(in *sizing.Input) *int { return &in.Params.RAMUnitSize }},
	{"i_max_RAM_units_per_server", func(in *sizing.Input) *int { return &in.Params.MaxRAMUnitsPerServer }},

	{"i_units_per_rack", func(in *sizing.Input) *int { return &in.Facility.UnitsPerRack }},
	{"i_rack_monthly_price", func(in *sizing.Input) *int { return &in.Facility.RackMonthlyPrice }},
	{"i_units_per_server", func(in *sizing.Input) *int { return &in.Facility.UnitsPerServer }},
	{"i_cost_of_money", func(in *sizing.Input) *int { return &in.Facility.CostOfMoney }},
	{"i_amortization_period", func(in *sizing.Input) *int { return &in.Facility.AmortizationPeriod }},

	{"i_read_qps", func(in *sizing.Input) *int { return &in.Requirements.ReadQPS }},
	{"i_write_qps", func(in *sizing.Input) *int { return &in.Requirements.WriteQPS }},
	{"i_size_of_dataset", func(in *sizing.Input) *int { return &in.Requirements.DatasetSize }},
	{"i_number_of_replicas", func(in *sizing.Input) *int { return &in.Requirements.Replicas }},
	{"i_disks_per_RAID", func(in *sizing.Input) *int { return &in.Requirements.DisksPerRAID }},

	{"i_max_read_qps_per_server", func(in *sizing.Input) *int { return &in.Profile.MaxReadQPSPerServer }},
	{"i_max_write_qps_per_server", func(in *sizing.Input) *int { return &in.Profile.MaxWriteQPSPerServer }},
	{"i_overhead_for_dataset_storing", func(in *sizing.Input) *int { return &in.Profile.StorageOverhead }},
	{"i_data_spinning_ratio", func(in *sizing.Input) *int { return &in.Profile.SpinningRatio }},
	{"i_data_SSD_ratio", func(in *sizing.Input) *int { return &in.Profile.SSDRatio }},
	{"i_data_RAM_ratio", func(in *sizing.Input) *int { return &in.Profile.RAMRatio }},
	{"i_min_RAM_amount_per_server", func(in *sizing.Input) *int { return &in.Profile.MinRAMPerServer }},
	{"i_max_RAM_amount_per_server", func(in *sizing.Input) *int { return &in.Profile.MaxRAMPerServer }},
	{"i_monthly_support_per_server", func(in *sizing.Input) *int { return &in.Profile.MonthlySupportPerServer }},
	{"i_monthly_license_fee_per_server", func(in *sizing.Input) *int { return &in.Profile.MonthlyLicenseFeePerServer }},
}

// FieldCount is the number of named inputs a complete form carries.
var FieldCount = len(fields)

var fieldIndex = func() map[string]int {
	m := make(map[string]int, len(fields))
	for i, f := range fields {
		m[f.name] = i
	}
	return m
}()
