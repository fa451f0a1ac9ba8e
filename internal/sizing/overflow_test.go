package sizing

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecked_Mul(t *testing.T) {
	var c checked
	assert.Equal(t, 6, c.mul(2, 3))
	assert.False(t, c.overflow)

	c.mul(math.MaxInt32, math.MaxInt32)
	assert.False(t, c.overflow)

	c.mul(math.MaxInt/2+1, 2)
	assert.True(t, c.overflow)

	c = checked{}
	c.mul(-1, 3)
	assert.True(t, c.overflow)
}

func TestChecked_Add(t *testing.T) {
	var c checked
	assert.Equal(t, math.MaxInt, c.add(math.MaxInt-1, 1))
	assert.False(t, c.overflow)

	c.add(math.MaxInt, 1)
	assert.True(t, c.overflow)
}

func TestChecked_CeilDiv(t *testing.T) {
	var c checked
	assert.Equal(t, 3, c.ceilDiv(21, 10))
	assert.False(t, c.overflow)

	c.ceilDiv(math.MaxInt, 2)
	assert.True(t, c.overflow)
}

func TestChecked_MarkKeepsFirst(t *testing.T) {
	var c checked
	c.mark("cost_of_server")
	assert.Empty(t, c.first)

	c.add(math.MaxInt, 1)
	c.mark("monthly_cost")
	c.mark("grand_total_monthly")
	assert.Equal(t, "monthly_cost", c.first)
}

func TestCheckRange_Scenarios(t *testing.T) {
	for _, req := range []Requirements{readWriteHeavyBig, superBigHeavy, justBig, tiny} {
		for _, p := range []EngineProfile{tarantool, redis, mysql} {
			in := Input{Hardware: standardCost, Params: standardParams, Facility: standardFacility, Requirements: req, Profile: p}
			assert.NoError(t, CheckRange(in))
		}
	}
}

func TestCheckRange_Costs(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(in *Input)
		quantity string
	}{
		{"support per server", func(in *Input) {
			in.Requirements.ReadQPS = math.MaxInt32
			in.Profile.MaxReadQPSPerServer = 1
			in.Profile.MonthlySupportPerServer = math.MaxInt32
			in.Profile.MonthlyLicenseFeePerServer = math.MaxInt32
		}, "monthly_cost"},
		{"amortized upfront", func(in *Input) {
			in.Requirements.ReadQPS = math.MaxInt32
			in.Profile.MaxReadQPSPerServer = 1
			in.Hardware.ServerBody = math.MaxInt32
		}, "grand_total_monthly"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Input{Hardware: standardCost, Params: standardParams, Facility: compactFacility, Requirements: readWriteHeavyBig, Profile: tarantool}
			tt.mutate(&in)

			err := CheckRange(in)
			var re *RangeError
			require.True(t, errors.As(err, &re), "got %v", err)
			assert.Equal(t, tt.quantity, re.Quantity)
			assert.Contains(t, err.Error(), tt.quantity)
		})
	}
}
