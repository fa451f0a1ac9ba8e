package format

import (
	"bytes"
	"strings"
	"testing"
)

func TestTableTo(t *testing.T) {
	var buf bytes.Buffer
	headers := []string{"Engine", "Servers"}
	rows := [][]string{
		{"tarantool", "10"},
		{"mysql", "50"},
	}
	TableTo(&buf, headers, rows)

	out := buf.String()
	if !strings.Contains(out, "Engine") {
		t.Error("expected header 'Engine' in output")
	}
	if !strings.Contains(out, "tarantool") {
		t.Error("expected row data 'tarantool' in output")
	}
	if !strings.Contains(out, "------") {
		t.Error("expected separator line in output")
	}
}

func TestTableTo_Empty(t *testing.T) {
	var buf bytes.Buffer
	TableTo(&buf, []string{"A", "B"}, nil)
	out := buf.String()
	// Should still have headers and separator.
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Errorf("expected 2 lines (header+separator), got %d", len(lines))
	}
}

func TestJSONTo(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]int{"number_of_servers": 10}
	if err := JSONTo(&buf, data); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `"number_of_servers": 10`) {
		t.Errorf("unexpected JSON output: %s", out)
	}
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	headers := []string{"col1", "col2"}
	rows := [][]string{{"a", "b"}, {"c", "d"}}
	if err := CSV(&buf, headers, rows); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Errorf("expected 3 CSV lines, got %d", len(lines))
	}
}

func TestParse(t *testing.T) {
	tests := map[string]OutputFormat{
		"":      FormatTable,
		"table": FormatTable,
		"JSON":  FormatJSON,
		"csv":   FormatCSV,
		"kv":    FormatKV,
		"text":  FormatText,
	}
	for in, want := range tests {
		got, err := Parse(in)
		if err != nil {
			t.Errorf("Parse(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("Parse(%q) = %s, want %s", in, got, want)
		}
	}
	if _, err := Parse("yaml"); err == nil {
		t.Error("expected error for yaml")
	}
}
