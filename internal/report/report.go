// Package report renders sizing results for people and for the legacy
// calculator front-ends.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dbcalc/dbcalc/internal/sizing"
)

// Summary is a Result together with how hard each server works relative to
// the engine limits.
type Summary struct {
	sizing.Result
	ReadWorkload  int    `json:"read_workload"`
	WriteWorkload int    `json:"write_workload"`
	RAMWorkload   int    `json:"ram_workload"`
	Reason        string `json:"bottle_neck"`
}

// Summarize derives the workload percentages of res against profile p.
// p must be the profile res was computed with.
func Summarize(res sizing.Result, p sizing.EngineProfile) Summary {
	return Summary{
		Result:        res,
		ReadWorkload:  res.ReadQPSPerServer * 100 / p.MaxReadQPSPerServer,
		WriteWorkload: res.WriteQPSPerServer * 100 / p.MaxWriteQPSPerServer,
		RAMWorkload:   res.RAMPerServer * 100 / p.MaxRAMPerServer,
		Reason:        res.Bottleneck.Reason(),
	}
}

// WriteKV writes s in the brace-wrapped key: "value" form the web
// calculator parses.
func WriteKV(w io.Writer, s Summary) error {
	pairs := []struct {
		key   string
		value string
	}{
		{"number_of_servers", strconv.Itoa(s.Servers)},
		{"number_of_SSD_per_server", strconv.Itoa(s.SSDPerServer)},
		{"number_of_spinning_per_server", strconv.Itoa(s.SpinningPerServer)},
		{"amount_of_RAM_per_server", strconv.Itoa(s.RAMPerServer)},
		{"cost_of_server", strconv.Itoa(s.ServerCost)},
		{"total_upfront_cost", strconv.Itoa(s.TotalUpfrontCost)},
		{"monthly_cost", strconv.Itoa(s.MonthlyCost)},
		{"grand_total_monthly", strconv.Itoa(s.GrandTotalMonthly)},
		{"read_workload", strconv.Itoa(s.ReadWorkload)},
		{"write_workload", strconv.Itoa(s.WriteWorkload)},
		{"ram_workload", strconv.Itoa(s.RAMWorkload)},
		{"bottle_neck", s.Reason},
	}

	var b strings.Builder
	b.WriteString("\n{\n")
	for _, p := range pairs {
		fmt.Fprintf(&b, "%s: %q,\n", p.key, p.value)
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteText writes one engine's result as a short human-readable block.
func WriteText(w io.Writer, name string, res sizing.Result) error {
	_, err := fmt.Fprintf(w, "%s:\n\n"+
		"number_of_servers=%d\n"+
		"server is %dxSSD, %dxSATA, %dxRAMxGb, for $%d\n"+
		"total_upfront_cost = $%d\n"+
		"monthly_cost = $%d\n"+
		"grand_total_monthly = $%d\n\n",
		name,
		res.Servers,
		res.SSDPerServer, res.SpinningPerServer, res.RAMPerServer/1024, res.ServerCost,
		res.TotalUpfrontCost,
		res.MonthlyCost,
		res.GrandTotalMonthly)
	return err
}

const rule = "------------------------------------------------------------\n"

// WriteRequirements writes the banner that heads a comparison. The dataset is
// shown in whole gigabytes, truncated.
func WriteRequirements(w io.Writer, req sizing.Requirements) error {
	_, err := fmt.Fprintf(w, "%sRequirements: %d read QPS, %d write QPS, %dGb dataset\n%s\n",
		rule, req.ReadQPS, req.WriteQPS, req.DatasetSize/1024, rule)
	return err
}

// DescribeEngine summarizes an engine profile on one line.
func DescribeEngine(p sizing.EngineProfile) string {
	return fmt.Sprintf("%d read QPS, %d write QPS, %d%% overhead, %d%% spinning, %d%% SSD, %d%% RAM, %dGb-%dGb RAM per server",
		p.MaxReadQPSPerServer,
		p.MaxWriteQPSPerServer,
		p.StorageOverhead-100,
		p.SpinningRatio,
		p.SSDRatio,
		p.RAMRatio,
		p.MinRAMPerServer/1024,
		p.MaxRAMPerServer/1024)
}

// Headers returns the column names matching Row.
func Headers() []string {
	return []string{
		"Engine", "Servers", "SSD", "Spinning", "RAM", "Server $",
		"Upfront $", "Monthly $", "Grand Monthly $", "Bottleneck",
	}
}

// Row flattens s into table cells.
func Row(name string, s Summary) []string {
	bottleneck := string(s.Bottleneck)
	if !s.Feasible {
		bottleneck += " (infeasible)"
	}
	return []string{
		name,
		strconv.Itoa(s.Servers),
		strconv.Itoa(s.SSDPerServer),
		strconv.Itoa(s.SpinningPerServer),
		Size(s.RAMPerServer),
		strconv.Itoa(s.ServerCost),
		strconv.Itoa(s.TotalUpfrontCost),
		strconv.Itoa(s.MonthlyCost),
		strconv.Itoa(s.GrandTotalMonthly),
		bottleneck,
	}
}
