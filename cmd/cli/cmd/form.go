package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbcalc/dbcalc/internal/database"
	"github.com/dbcalc/dbcalc/internal/request"
)

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Print the 28-field form for a calculation",
	Long: `Resolve a hardware preset, engine and workload against the server catalog
and print them as the urlencoded form the CGI endpoint reads on stdin.

Examples:
  dbcalc form --engine tarantool --workload read-write-heavy-big-dataset
  dbcalc form --engine mysql --read-qps 20000 --write-qps 2000 --dataset 512GiB | go run ./cmd/cgi`,
	RunE: runForm,
}

var (
	formHardware string
	formEngine   string
	formWorkload string
	formReq      requirementFlags
)

func init() {
	formCmd.Flags().StringVar(&formHardware, "hardware", database.DefaultHardware, "Hardware preset")
	formCmd.Flags().StringVar(&formEngine, "engine", "", "Engine name (required)")
	formCmd.Flags().StringVar(&formWorkload, "workload", "", "Workload name")
	formReq.bind(formCmd)
	_ = formCmd.MarkFlagRequired("engine")
	RootCmd.AddCommand(formCmd)
}

func runForm(cmd *cobra.Command, args []string) error {
	c := newClient()
	ctx := context.Background()

	reqs, err := resolveRequirements(ctx, c, formWorkload, &formReq)
	if err != nil {
		return err
	}
	if reqs == nil {
		w, err := c.GetWorkload(ctx, formWorkload)
		if err != nil {
			return err
		}
		reqs = &w.Requirements
	}
	hw, err := c.GetHardware(ctx, formHardware)
	if err != nil {
		return err
	}
	e, err := c.GetEngine(ctx, formEngine)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(stdout(), request.Encode(database.Input(hw, *reqs, e.Profile)))
	return err
}
