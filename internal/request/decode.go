// Package request decodes and checks the flat name=value form a calculation
// is submitted as.
//
// The form is ASCII, '&'-delimited and never escaped:
//
//	i_read_qps=100000&i_write_qps=50000&...
package request

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dbcalc/dbcalc/internal/sizing"
)

// maxTokenLen bounds names and values; longer ones are truncated.
const maxTokenLen = 255

// ErrIncompleteInput is returned when fewer than FieldCount inputs were supplied.
var ErrIncompleteInput = errors.New("incomplete input")

// Decoded is the result of decoding a form.
type Decoded struct {
	input sizing.Input
	seen  []bool
}

// Count returns the number of distinct known fields supplied.
func (d *Decoded) Count() int {
	n := 0
	for _, ok := range d.seen {
		if ok {
			n++
		}
	}
	return n
}

// Missing returns the names of fields not supplied, in canonical order.
func (d *Decoded) Missing() []string {
	var missing []string
	for i, ok := range d.seen {
		if !ok {
			missing = append(missing, fields[i].name)
		}
	}
	return missing
}

// Complete returns an error wrapping ErrIncompleteInput unless every field was
// supplied.
func (d *Decoded) Complete() error {
	if n := d.Count(); n < FieldCount {
		return fmt.Errorf("%w: too little vars: %d. Expected %d", ErrIncompleteInput, n, FieldCount)
	}
	return nil
}

// Input returns the decoded records. Fields not supplied are zero.
func (d *Decoded) Input() sizing.Input {
	return d.input
}

// DecodeString decodes a form held in a string. Unknown names and pairs
// without '=' are skipped; a value that is not a decimal integer is an error.
func DecodeString(s string) (*Decoded, error) {
	d := &Decoded{seen: make([]bool, len(fields))}

	for _, pair := range strings.Split(strings.TrimRight(s, "\r\n"), "&") {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		i, known := fieldIndex[truncate(name)]
		if !known {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(truncate(value)))
		if err != nil {
			return nil, &FieldError{Field: fields[i].name, Reason: fmt.Sprintf("not an integer: %q", truncate(value))}
		}
		*fields[i].ptr(&d.input) = n
		d.seen[i] = true
	}
	return d, nil
}

// Decode reads a whole form from r and decodes it.
func Decode(r io.Reader) (*Decoded, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read form: %w", err)
	}
	return DecodeString(string(b))
}

// Encode renders in as a complete form in canonical field order.
func Encode(in sizing.Input) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(f.name)
		b.WriteByte('=')
		b.WriteString(strconv.Itoa(*f.ptr(&in)))
	}
	return b.String()
}

func truncate(s string) string {
	if len(s) > maxTokenLen {
		return s[:maxTokenLen]
	}
	return s
}
