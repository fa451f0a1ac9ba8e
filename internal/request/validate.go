package request

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/dbcalc/dbcalc/internal/sizing"
)

// FieldError reports a problem with one named input.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validate checks the contract sizing.Compute relies on: every divisor is
// positive, ratios are percentages, no value exceeds sizing.MaxInput, the
// engine RAM bounds leave room for at least one configuration and every cost
// fits in an int. All problems are returned joined.
func Validate(in sizing.Input) error {
	var errs []error
	check := func(name string, ok bool, reason string) {
		if !ok {
			errs = append(errs, &FieldError{Field: name, Reason: reason})
		}
	}
	atMost := func(name string, v int) {
		check(name, v <= sizing.MaxInput, fmt.Sprintf("must be at most %d, got %d", sizing.MaxInput, v))
	}
	positive := func(name string, v int) {
		if v <= 0 {
			check(name, false, fmt.Sprintf("must be positive, got %d", v))
			return
		}
		atMost(name, v)
	}
	nonNegative := func(name string, v int) {
		if v < 0 {
			check(name, false, fmt.Sprintf("must not be negative, got %d", v))
			return
		}
		atMost(name, v)
	}
	percent := func(name string, v int) {
		check(name, v >= 0 && v <= 100, fmt.Sprintf("must be between 0 and 100, got %d", v))
	}

	hc, hp, fc, req, p := in.Hardware, in.Params, in.Facility, in.Requirements, in.Profile

	nonNegative("i_cost_server_body", hc.ServerBody)
	nonNegative("i_SSD_price", hc.SSDPrice)
	nonNegative("i_spinning_price", hc.SpinningPrice)
	nonNegative("i_RAM_unit_price", hc.RAMUnitPrice)

	positive("i_SSD_size", hp.SSDSize)
	positive("i_spinning_size", hp.SpinningSize)
	positive("i_RAM_unit_size", hp.RAMUnitSize)
	positive("i_max_RAM_units_per_server", hp.MaxRAMUnitsPerServer)

	positive("i_units_per_rack", fc.UnitsPerRack)
	nonNegative("i_rack_monthly_price", fc.RackMonthlyPrice)
	nonNegative("i_units_per_server", fc.UnitsPerServer)
	nonNegative("i_cost_of_money", fc.CostOfMoney)
	positive("i_amortization_period", fc.AmortizationPeriod)

	nonNegative("i_read_qps", req.ReadQPS)
	nonNegative("i_write_qps", req.WriteQPS)
	nonNegative("i_size_of_dataset", req.DatasetSize)
	nonNegative("i_number_of_replicas", req.Replicas)
	nonNegative("i_disks_per_RAID", req.DisksPerRAID)

	positive("i_max_read_qps_per_server", p.MaxReadQPSPerServer)
	positive("i_max_write_qps_per_server", p.MaxWriteQPSPerServer)
	if p.StorageOverhead < 100 {
		check("i_overhead_for_dataset_storing", false, fmt.Sprintf("must be at least 100, got %d", p.StorageOverhead))
	} else {
		atMost("i_overhead_for_dataset_storing", p.StorageOverhead)
	}
	percent("i_data_spinning_ratio", p.SpinningRatio)
	percent("i_data_SSD_ratio", p.SSDRatio)
	percent("i_data_RAM_ratio", p.RAMRatio)
	positive("i_min_RAM_amount_per_server", p.MinRAMPerServer)
	positive("i_max_RAM_amount_per_server", p.MaxRAMPerServer)
	nonNegative("i_monthly_support_per_server", p.MonthlySupportPerServer)
	nonNegative("i_monthly_license_fee_per_server", p.MonthlyLicenseFeePerServer)

	if p.MinRAMPerServer > 0 && hp.RAMUnitSize > 0 {
		minUnits := sizing.CeilDiv(p.MinRAMPerServer, hp.RAMUnitSize)
		check("i_min_RAM_amount_per_server", minUnits*hp.RAMUnitSize <= p.MaxRAMPerServer,
			fmt.Sprintf("%d MB rounds up to %d MB, above the engine maximum of %d MB",
				p.MinRAMPerServer, minUnits*hp.RAMUnitSize, p.MaxRAMPerServer))
		check("i_min_RAM_amount_per_server", minUnits <= hp.MaxRAMUnitsPerServer,
			fmt.Sprintf("needs %d RAM units, server holds %d", minUnits, hp.MaxRAMUnitsPerServer))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	hi, stored := bits.Mul64(uint64(sizing.CeilPercent(req.DatasetSize, p.StorageOverhead)), uint64(req.Replicas))
	if hi != 0 || stored > sizing.MaxInput {
		return &FieldError{
			Field: "i_size_of_dataset",
			Reason: fmt.Sprintf("%d replicas of %d MB with %d%% overhead exceed %d MB",
				req.Replicas, req.DatasetSize, p.StorageOverhead, sizing.MaxInput),
		}
	}

	var re *sizing.RangeError
	if err := sizing.CheckRange(in); errors.As(err, &re) {
		return &FieldError{Field: re.Quantity, Reason: "exceeds the int range"}
	}
	return nil
}

// FieldErrors unpacks the field errors from an error returned by Validate or
// Decode, following both single and joined wrapping.
func FieldErrors(err error) []*FieldError {
	switch e := err.(type) {
	case nil:
		return nil
	case *FieldError:
		return []*FieldError{e}
	case interface{ Unwrap() []error }:
		var out []*FieldError
		for _, inner := range e.Unwrap() {
			out = append(out, FieldErrors(inner)...)
		}
		return out
	case interface{ Unwrap() error }:
		return FieldErrors(e.Unwrap())
	}
	return nil
}
