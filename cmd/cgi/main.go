// Command cgi answers a calculator form posted on stdin with the key-value
// report the web front-end parses.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dbcalc/dbcalc/internal/logger"
	"github.com/dbcalc/dbcalc/internal/report"
	"github.com/dbcalc/dbcalc/internal/request"
	"github.com/dbcalc/dbcalc/internal/sizing"
)

func main() {
	os.Exit(run(os.Stdin, os.Stdout, os.Stderr))
}

// run serves one request. Problems go to stderr, where the web server
// records them, and make the exit status non-zero.
func run(stdin io.Reader, stdout, stderr io.Writer) int {
	log := logger.New(stderr, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	d, err := request.Decode(stdin)
	if err != nil {
		fmt.Fprintf(stderr, "[400] %v\n", err)
		return 1
	}
	if err := d.Complete(); err != nil {
		fmt.Fprintf(stderr, "[500] Too little vars: %d. Expected %d\n", d.Count(), request.FieldCount)
		log.Debug("Incomplete form", "missing", d.Missing())
		return 1
	}

	in := d.Input()
	if err := request.Validate(in); err != nil {
		for _, fe := range request.FieldErrors(err) {
			fmt.Fprintf(stderr, "[400] %v\n", fe)
		}
		return 1
	}

	res := sizing.ComputeInput(in)
	if !res.Feasible {
		log.Warn("No configuration fits the engine RAM bounds", "servers", res.Servers, "iterations", res.Iterations)
	}
	if err := report.WriteKV(stdout, report.Summarize(res, in.Profile)); err != nil {
		fmt.Fprintf(stderr, "[500] write response: %v\n", err)
		return 1
	}
	log.Debug("Calculated", "servers", res.Servers, "bottleneck", res.Bottleneck)
	return 0
}
