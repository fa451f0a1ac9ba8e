package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbcalc/dbcalc/cmd/cli/format"
	"github.com/dbcalc/dbcalc/internal/api"
	"github.com/dbcalc/dbcalc/internal/report"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare engines on the same workload",
	Long: `Size one workload on several engines and compare fleet size and cost.

Examples:
  dbcalc compare --workload super-big-super-heavy
  dbcalc compare --workload read-heavy-big-dataset --engines tarantool,mysql -o text
  dbcalc compare --read-qps 50000 --write-qps 5000 --dataset 256GiB -o csv`,
	RunE: runCompare,
}

var (
	compareHardware string
	compareWorkload string
	compareEngines  string
	compareReq      requirementFlags
)

func init() {
	compareCmd.Flags().StringVar(&compareHardware, "hardware", "", "Hardware preset (default: server default)")
	compareCmd.Flags().StringVar(&compareWorkload, "workload", "", "Workload name")
	compareCmd.Flags().StringVar(&compareEngines, "engines", "", "Comma-separated engine names (default: all)")
	compareReq.bind(compareCmd)
	RootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	f, err := getFormat()
	if err != nil {
		return err
	}
	c := newClient()
	ctx := context.Background()

	reqs, err := resolveRequirements(ctx, c, compareWorkload, &compareReq)
	if err != nil {
		return err
	}
	resp, err := c.Compare(ctx, api.CompareRequest{
		Hardware:     compareHardware,
		Workload:     compareWorkload,
		Requirements: reqs,
		Engines:      splitList(compareEngines),
	})
	if err != nil {
		return err
	}

	out := stdout()
	switch f {
	case format.FormatJSON:
		return format.JSONTo(out, resp)
	case format.FormatText:
		return writeComparisonText(resp)
	case format.FormatKV:
		for _, e := range resp.Entries {
			fmt.Fprintf(out, "%s:", e.Engine)
			if err := report.WriteKV(out, e.Summary); err != nil {
				return err
			}
		}
		return nil
	case format.FormatCSV:
		return format.CSV(out, report.Headers(), compareRows(resp.Entries))
	default:
		format.TableTo(out, report.Headers(), compareRows(resp.Entries))
		fmt.Fprintf(stderr(), "\n%d engine(s) compared\n", len(resp.Entries))
		return nil
	}
}

func writeComparisonText(resp *api.CompareResponse) error {
	out := stdout()
	if err := report.WriteRequirements(out, resp.Requirements); err != nil {
		return err
	}
	for _, e := range resp.Entries {
		name := e.DisplayName
		if name == "" {
			name = e.Engine
		}
		if err := report.WriteText(out, name, e.Summary.Result); err != nil {
			return err
		}
	}
	return nil
}

func compareRows(entries []api.CompareEntry) [][]string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = report.Row(e.Engine, e.Summary)
	}
	return rows
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
