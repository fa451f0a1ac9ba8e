package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dbcalc/dbcalc/cmd/cli/format"
	"github.com/dbcalc/dbcalc/internal/database"
	"github.com/dbcalc/dbcalc/internal/report"
)

var enginesCmd = &cobra.Command{
	Use:   "engines [name]",
	Short: "List engine profiles",
	Long: `List the engine profiles the server knows, or show one.

Examples:
  dbcalc engines
  dbcalc engines tarantool-with-support -o json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEngines,
}

var workloadsCmd = &cobra.Command{
	Use:   "workloads",
	Short: "List reference workloads",
	RunE:  runWorkloads,
}

var hardwareCmd = &cobra.Command{
	Use:   "hardware",
	Short: "List hardware presets",
	RunE:  runHardware,
}

func init() {
	RootCmd.AddCommand(enginesCmd, workloadsCmd, hardwareCmd)
}

// listing renders a catalog listing in the table-like formats.
func listing(v any, headers []string, rows [][]string) error {
	f, err := getFormat()
	if err != nil {
		return err
	}
	switch f {
	case format.FormatJSON:
		return format.JSONTo(stdout(), v)
	case format.FormatCSV:
		return format.CSV(stdout(), headers, rows)
	case format.FormatTable:
		format.TableTo(stdout(), headers, rows)
		return nil
	default:
		return fmt.Errorf("output format %s is not available for listings", f)
	}
}

func runEngines(cmd *cobra.Command, args []string) error {
	c := newClient()
	ctx := context.Background()

	var engines []database.Engine
	var v any
	if len(args) == 1 {
		e, err := c.GetEngine(ctx, args[0])
		if err != nil {
			return err
		}
		engines, v = []database.Engine{*e}, e
	} else {
		var err error
		if engines, err = c.ListEngines(ctx); err != nil {
			return err
		}
		v = engines
	}

	headers := []string{"Name", "Display Name", "Profile", "Support $/mo", "License $/mo"}
	rows := make([][]string, len(engines))
	for i, e := range engines {
		rows[i] = []string{
			e.Name,
			e.DisplayName,
			report.DescribeEngine(e.Profile),
			strconv.Itoa(e.Profile.MonthlySupportPerServer),
			strconv.Itoa(e.Profile.MonthlyLicenseFeePerServer),
		}
	}
	return listing(v, headers, rows)
}

func runWorkloads(cmd *cobra.Command, args []string) error {
	workloads, err := newClient().ListWorkloads(context.Background())
	if err != nil {
		return err
	}

	headers := []string{"Name", "Display Name", "Read QPS", "Write QPS", "Dataset", "Replicas", "Disks/RAID"}
	rows := make([][]string, len(workloads))
	for i, w := range workloads {
		r := w.Requirements
		rows[i] = []string{
			w.Name,
			w.DisplayName,
			strconv.Itoa(r.ReadQPS),
			strconv.Itoa(r.WriteQPS),
			report.Size(r.DatasetSize),
			strconv.Itoa(r.Replicas),
			strconv.Itoa(r.DisksPerRAID),
		}
	}
	return listing(workloads, headers, rows)
}

func runHardware(cmd *cobra.Command, args []string) error {
	presets, err := newClient().ListHardware(context.Background())
	if err != nil {
		return err
	}

	headers := []string{
		"Name", "Server $", "SSD", "SSD $", "Spinning", "Spinning $", "RAM Unit", "RAM $",
		"Slots", "U/Server", "U/Rack", "Rack $/mo", "Money %", "Months",
	}
	rows := make([][]string, len(presets))
	for i, hw := range presets {
		rows[i] = []string{
			hw.Name,
			strconv.Itoa(hw.Cost.ServerBody),
			report.Size(hw.Params.SSDSize),
			strconv.Itoa(hw.Cost.SSDPrice),
			report.Size(hw.Params.SpinningSize),
			strconv.Itoa(hw.Cost.SpinningPrice),
			report.Size(hw.Params.RAMUnitSize),
			strconv.Itoa(hw.Cost.RAMUnitPrice),
			strconv.Itoa(hw.Params.MaxRAMUnitsPerServer),
			strconv.Itoa(hw.Facility.UnitsPerServer),
			strconv.Itoa(hw.Facility.UnitsPerRack),
			strconv.Itoa(hw.Facility.RackMonthlyPrice),
			strconv.Itoa(hw.Facility.CostOfMoney),
			strconv.Itoa(hw.Facility.AmortizationPeriod),
		}
	}
	return listing(presets, headers, rows)
}
