package sizing

// HardwareCost holds hardware prices in dollars.
type HardwareCost struct {
	// ServerBody is the price of a server without RAM and disks.
	ServerBody    int `json:"cost_server_body"`
	SSDPrice      int `json:"ssd_price"`
	SpinningPrice int `json:"spinning_price"`
	RAMUnitPrice  int `json:"ram_unit_price"`
}

// HardwareParams holds disk and RAM unit sizes in MB and the number of RAM
// slots a chassis has.
type HardwareParams struct {
	SSDSize              int `json:"ssd_size"`
	SpinningSize         int `json:"spinning_size"`
	RAMUnitSize          int `json:"ram_unit_size"`
	MaxRAMUnitsPerServer int `json:"max_ram_units_per_server"`
}

// FacilityCost describes hosting and the cost of money.
type FacilityCost struct {
	UnitsPerRack     int `json:"units_per_rack"`
	RackMonthlyPrice int `json:"rack_monthly_price"`
	UnitsPerServer   int `json:"units_per_server"`
	// CostOfMoney is the annual interest rate, %.
	CostOfMoney int `json:"cost_of_money"`
	// AmortizationPeriod is the number of months after which a server is
	// worth nothing.
	AmortizationPeriod int `json:"amortization_period"`
}

// Requirements is the workload a fleet must carry.
type Requirements struct {
	ReadQPS      int `json:"read_qps"`
	WriteQPS     int `json:"write_qps"`
	DatasetSize  int `json:"size_of_dataset"` // MB
	Replicas     int `json:"number_of_replicas"`
	DisksPerRAID int `json:"disks_per_raid"`
}

// EngineProfile is what one instance of a database engine can do on one server.
type EngineProfile struct {
	MaxReadQPSPerServer  int `json:"max_read_qps_per_server"`
	MaxWriteQPSPerServer int `json:"max_write_qps_per_server"`
	StorageOverhead      int `json:"overhead_for_dataset_storing"` // %, >= 100
	SpinningRatio        int `json:"data_spinning_ratio"`          // %
	SSDRatio             int `json:"data_ssd_ratio"`               // %
	RAMRatio             int `json:"data_ram_ratio"`               // %

	// MinRAMPerServer is the fixed RAM cost of running the engine at all, MB.
	MinRAMPerServer int `json:"min_ram_amount_per_server"`
	// MaxRAMPerServer is an engine limit, unlike MaxRAMUnitsPerServer which
	// is a chassis limit. MB.
	MaxRAMPerServer int `json:"max_ram_amount_per_server"`

	MonthlySupportPerServer    int `json:"monthly_support_per_server"`
	MonthlyLicenseFeePerServer int `json:"monthly_license_fee_per_server"`
}

// Input bundles the five records a calculation needs.
type Input struct {
	Hardware     HardwareCost   `json:"hardware_cost"`
	Params       HardwareParams `json:"hardware_params"`
	Facility     FacilityCost   `json:"facility_cost"`
	Requirements Requirements   `json:"requirements"`
	Profile      EngineProfile  `json:"profile"`
}

// Utilization is one of the ratios the bottleneck is chosen from.
type Utilization struct {
	Resource Bottleneck `json:"resource"`
	Percent  int        `json:"percent"`
}

// Result is a sized and costed fleet.
type Result struct {
	Servers           int `json:"number_of_servers"`
	SSDPerServer      int `json:"number_of_ssd_per_server"`
	SpinningPerServer int `json:"number_of_spinning_per_server"`
	RAMPerServer      int `json:"amount_of_ram_per_server"` // MB
	RAMUnitsPerServer int `json:"number_of_ram_units_per_server"`

	ServerCost        int `json:"cost_of_server"`
	TotalUpfrontCost  int `json:"total_upfront_cost"`
	MonthlyCost       int `json:"monthly_cost"`
	GrandTotalMonthly int `json:"grand_total_monthly"`

	ReadQPSPerServer  int `json:"read_qps_per_server"`
	WriteQPSPerServer int `json:"write_qps_per_server"`

	Bottleneck  Bottleneck    `json:"bottleneck"`
	Utilization []Utilization `json:"utilization"`

	// Feasible is false when no server count satisfies the RAM limits; the
	// fields then describe the last state tried.
	Feasible bool `json:"feasible"`
	// Iterations is the number of RAM convergence passes.
	Iterations int `json:"iterations"`
}
