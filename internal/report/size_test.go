package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSize(t *testing.T) {
	assert.Equal(t, "1TiB", Size(1024*1024))
	assert.Equal(t, "240GiB", Size(245760))
	assert.Equal(t, "1GiB", Size(1024))
	assert.Equal(t, "0B", Size(0))
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1024", 1024},
		{" 2048 ", 2048},
		{"1TiB", 1024 * 1024},
		{"1TB", 1024 * 1024},
		{"128GiB", 128 * 1024},
		{"16g", 16 * 1024},
		{"512KiB", 1},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSize_Errors(t *testing.T) {
	for _, in := range []string{"", "lots", "-5", "12XB"} {
		_, err := ParseSize(in)
		assert.Error(t, err, in)
	}
}
