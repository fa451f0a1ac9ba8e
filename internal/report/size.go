package report

import (
	"fmt"
	"strconv"
	"strings"

	units "github.com/docker/go-units"
)

// Size formats a quantity in megabytes with binary units, e.g. "1TiB".
func Size(mb int) string {
	return units.BytesSize(float64(mb) * float64(units.MiB))
}

// ParseSize reads a storage amount and returns it in megabytes. A bare
// integer is taken to be megabytes; anything else is parsed as a binary
// size such as "512GiB" or "1TB".
func ParseSize(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("size %q is negative", s)
		}
		return n, nil
	}
	b, err := units.RAMInBytes(s)
	if err != nil {
		return 0, fmt.Errorf("parse size %q: %w", s, err)
	}
	return int((b + units.MiB - 1) / units.MiB), nil
}
