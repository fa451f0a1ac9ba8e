package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbcalc/dbcalc/cmd/cli/format"
	"github.com/dbcalc/dbcalc/internal/api"
	"github.com/dbcalc/dbcalc/internal/report"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Size and cost a fleet for one engine and workload",
	Long: `Calculate how many servers an engine needs for a workload, how they are
built and what they cost.

Examples:
  dbcalc calc --engine tarantool --workload read-write-heavy-big-dataset
  dbcalc calc --engine mysql --read-qps 20000 --write-qps 2000 --dataset 512GiB
  dbcalc calc --engine redis --workload just-big-dataset --dataset 2TiB -o kv`,
	RunE: runCalc,
}

var (
	calcHardware string
	calcEngine   string
	calcWorkload string
	calcReq      requirementFlags
)

func init() {
	calcCmd.Flags().StringVar(&calcHardware, "hardware", "", "Hardware preset (default: server default)")
	calcCmd.Flags().StringVar(&calcEngine, "engine", "", "Engine name (required)")
	calcCmd.Flags().StringVar(&calcWorkload, "workload", "", "Workload name")
	calcReq.bind(calcCmd)
	_ = calcCmd.MarkFlagRequired("engine")
	RootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, args []string) error {
	f, err := getFormat()
	if err != nil {
		return err
	}
	c := newClient()
	ctx := context.Background()

	reqs, err := resolveRequirements(ctx, c, calcWorkload, &calcReq)
	if err != nil {
		return err
	}
	resp, err := c.Calculate(ctx, api.CalculateRequest{
		Hardware:     calcHardware,
		Engine:       calcEngine,
		Workload:     calcWorkload,
		Requirements: reqs,
	})
	if err != nil {
		return err
	}

	out := stdout()
	switch f {
	case format.FormatJSON:
		return format.JSONTo(out, resp)
	case format.FormatKV:
		return report.WriteKV(out, resp.Summary)
	case format.FormatText:
		return report.WriteText(out, calcEngine, resp.Summary.Result)
	case format.FormatCSV:
		return format.CSV(out, report.Headers(), [][]string{report.Row(calcEngine, resp.Summary)})
	default:
		format.TableTo(out, report.Headers(), [][]string{report.Row(calcEngine, resp.Summary)})
		fmt.Fprintf(stderr(), "\n%s (%s)\n", resp.Summary.Reason, resp.ID)
		return nil
	}
}
