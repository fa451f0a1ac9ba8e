package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dbcalc/dbcalc/internal/database"
	"github.com/dbcalc/dbcalc/internal/request"
)

// form builds a complete form for a built-in preset, workload and engine.
func form(t *testing.T, hardware, workload, engine string) string {
	t.Helper()
	var (
		hw database.HardwarePreset
		w  database.Workload
		e  database.Engine
	)
	for _, x := range database.BuiltinHardware() {
		if x.Name == hardware {
			hw = x
		}
	}
	for _, x := range database.BuiltinWorkloads() {
		if x.Name == workload {
			w = x
		}
	}
	for _, x := range database.BuiltinEngines() {
		if x.Name == engine {
			e = x
		}
	}
	if hw.Name == "" || w.Name == "" || e.Name == "" {
		t.Fatalf("unknown built-in %s/%s/%s", hardware, workload, engine)
	}
	return request.Encode(database.Input(&hw, w.Requirements, e.Profile))
}

func TestRun_Report(t *testing.T) {
	var stdout, stderr bytes.Buffer
	in := form(t, "compact", "read-write-heavy-big-dataset", "tarantool")

	code := run(strings.NewReader(in), &stdout, &stderr)

	assert.Equal(t, 0, code, stderr.String())
	want := "\n{\n" +
		"number_of_servers: \"10\",\n" +
		"number_of_SSD_per_server: \"0\",\n" +
		"number_of_spinning_per_server: \"2\",\n" +
		"amount_of_RAM_per_server: \"245760\",\n" +
		"cost_of_server: \"2650\",\n" +
		"total_upfront_cost: \"26500\",\n" +
		"monthly_cost: \"1000\",\n" +
		"grand_total_monthly: \"1802\",\n" +
		"read_workload: \"10\",\n" +
		"write_workload: \"5\",\n" +
		"ram_workload: \"93\",\n" +
		"bottle_neck: \"Database system should be able to use more RAM per server\",\n" +
		"}\n"
	assert.Equal(t, want, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRun_TooLittleVars(t *testing.T) {
	var stdout, stderr bytes.Buffer
	in := form(t, "standard", "just-big-dataset", "mysql")
	// Drop the last three pairs.
	pairs := strings.Split(in, "&")
	in = strings.Join(pairs[:len(pairs)-3], "&")

	code := run(strings.NewReader(in), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Equal(t, "[500] Too little vars: 25. Expected 28\n", stderr.String())
}

func TestRun_EmptyInput(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run(strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Equal(t, "[500] Too little vars: 0. Expected 28\n", stderr.String())
}

func TestRun_NotAnInteger(t *testing.T) {
	var stdout, stderr bytes.Buffer
	in := strings.Replace(form(t, "standard", "just-big-dataset", "redis"), "i_read_qps=100&", "i_read_qps=lots&", 1)

	code := run(strings.NewReader(in), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "[400] i_read_qps: not an integer")
}

func TestRun_Invalid(t *testing.T) {
	var stdout, stderr bytes.Buffer
	in := form(t, "standard", "just-big-dataset", "redis")
	in = strings.Replace(in, "i_max_read_qps_per_server=80000", "i_max_read_qps_per_server=0", 1)
	in = strings.Replace(in, "i_units_per_rack=20", "i_units_per_rack=0", 1)

	code := run(strings.NewReader(in), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	assert.Equal(t, []string{
		"[400] i_units_per_rack: must be positive, got 0",
		"[400] i_max_read_qps_per_server: must be positive, got 0",
	}, lines)
}
