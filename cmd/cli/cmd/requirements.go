package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbcalc/dbcalc/cmd/cli/client"
	"github.com/dbcalc/dbcalc/internal/report"
	"github.com/dbcalc/dbcalc/internal/sizing"
)

// requirementFlags describe a workload on the command line. Flags left off
// the command line keep the named workload's figures, so an explicit zero
// still overrides.
type requirementFlags struct {
	cmd          *cobra.Command
	readQPS      int
	writeQPS     int
	dataset      string
	replicas     int
	disksPerRAID int
}

var requirementFlagNames = []string{"read-qps", "write-qps", "dataset", "replicas", "disks-per-raid"}

func (f *requirementFlags) bind(c *cobra.Command) {
	f.cmd = c
	c.Flags().IntVar(&f.readQPS, "read-qps", 0, "Read queries per second")
	c.Flags().IntVar(&f.writeQPS, "write-qps", 0, "Write queries per second")
	c.Flags().StringVar(&f.dataset, "dataset", "", "Dataset size, e.g. 1TiB, 512GiB or plain megabytes")
	c.Flags().IntVar(&f.replicas, "replicas", 0, "Copies of the dataset (default 2 without --workload)")
	c.Flags().IntVar(&f.disksPerRAID, "disks-per-raid", 0, "Disks per RAID group (default 2 without --workload)")
}

func (f *requirementFlags) changed(name string) bool {
	return f.cmd != nil && f.cmd.Flags().Changed(name)
}

func (f *requirementFlags) set() bool {
	for _, name := range requirementFlagNames {
		if f.changed(name) {
			return true
		}
	}
	return false
}

// reset puts every flag back to its default and forgets it was given.
func (f *requirementFlags) reset() {
	if f.cmd == nil {
		return
	}
	for _, name := range requirementFlagNames {
		fl := f.cmd.Flags().Lookup(name)
		_ = fl.Value.Set(fl.DefValue)
		fl.Changed = false
	}
}

// apply overlays the flags that were given on base.
func (f *requirementFlags) apply(base sizing.Requirements) (sizing.Requirements, error) {
	r := base
	if f.changed("read-qps") {
		r.ReadQPS = f.readQPS
	}
	if f.changed("write-qps") {
		r.WriteQPS = f.writeQPS
	}
	if f.changed("dataset") {
		mb, err := report.ParseSize(f.dataset)
		if err != nil {
			return r, fmt.Errorf("--dataset: %w", err)
		}
		r.DatasetSize = mb
	}
	if f.changed("replicas") {
		r.Replicas = f.replicas
	}
	if f.changed("disks-per-raid") {
		r.DisksPerRAID = f.disksPerRAID
	}
	return r, nil
}

// resolveRequirements returns explicit requirements when any flag was given,
// starting from the named workload if there is one. It returns nil when the
// server should resolve the workload name on its own.
func resolveRequirements(ctx context.Context, c *client.Client, workload string, f *requirementFlags) (*sizing.Requirements, error) {
	if !f.set() {
		if workload == "" {
			return nil, fmt.Errorf("either --workload or requirement flags (--read-qps, --write-qps, --dataset) are required")
		}
		return nil, nil
	}

	base := sizing.Requirements{Replicas: 2, DisksPerRAID: 2}
	if workload != "" {
		w, err := c.GetWorkload(ctx, workload)
		if err != nil {
			return nil, err
		}
		base = w.Requirements
	}
	r, err := f.apply(base)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
