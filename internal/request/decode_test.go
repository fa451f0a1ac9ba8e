package request

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbcalc/dbcalc/internal/sizing"
)

// scenarioA is the read/write heavy 1 TB Tarantool calculation.
var scenarioA = sizing.Input{
	Hardware: sizing.HardwareCost{ServerBody: 2000, SSDPrice: 500, SpinningPrice: 100, RAMUnitPrice: 30},
	Params:   sizing.HardwareParams{SSDSize: 500 * 1024, SpinningSize: 1000 * 1024, RAMUnitSize: 16 * 1024, MaxRAMUnitsPerServer: 16},
	Facility: sizing.FacilityCost{UnitsPerRack: 20, RackMonthlyPrice: 1000, UnitsPerServer: 1, CostOfMoney: 3, AmortizationPeriod: 36},
	Requirements: sizing.Requirements{
		ReadQPS: 100000, WriteQPS: 50000, DatasetSize: 1024 * 1024, Replicas: 2, DisksPerRAID: 2,
	},
	Profile: sizing.EngineProfile{
		MaxReadQPSPerServer: 100000, MaxWriteQPSPerServer: 100000,
		StorageOverhead: 110, SpinningRatio: 100, SSDRatio: 0, RAMRatio: 100,
		MinRAMPerServer: 1024, MaxRAMPerServer: 256 * 1024,
	},
}

const scenarioAForm = "i_cost_server_body=2000&i_SSD_price=500&i_spinning_price=100&i_RAM_unit_price=30" +
	"&i_SSD_size=512000&i_spinning_size=1024000&i_RAM_unit_size=16384&i_max_RAM_units_per_server=16" +
	"&i_units_per_rack=20&i_rack_monthly_price=1000&i_units_per_server=1&i_cost_of_money=3&i_amortization_period=36" +
	"&i_read_qps=100000&i_write_qps=50000&i_size_of_dataset=1048576&i_number_of_replicas=2&i_disks_per_RAID=2" +
	"&i_max_read_qps_per_server=100000&i_max_write_qps_per_server=100000&i_overhead_for_dataset_storing=110" +
	"&i_data_spinning_ratio=100&i_data_SSD_ratio=0&i_data_RAM_ratio=100" +
	"&i_min_RAM_amount_per_server=1024&i_max_RAM_amount_per_server=262144" +
	"&i_monthly_support_per_server=0&i_monthly_license_fee_per_server=0"

func TestFields_Canonical(t *testing.T) {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	assert.Len(t, names, 28)
	assert.Equal(t, 28, FieldCount)
	assert.Equal(t, "i_cost_server_body", names[0])
	assert.Equal(t, "i_monthly_license_fee_per_server", names[27])

	seen := map[string]bool{}
	for _, n := range names {
		assert.False(t, seen[n], "duplicate field %s", n)
		seen[n] = true
	}
}

func TestDecodeString_Complete(t *testing.T) {
	d, err := DecodeString(scenarioAForm)
	require.NoError(t, err)

	assert.Equal(t, 28, d.Count())
	assert.Empty(t, d.Missing())
	assert.NoError(t, d.Complete())
	assert.Equal(t, scenarioA, d.Input())
}

func TestEncode_Canonical(t *testing.T) {
	assert.Equal(t, scenarioAForm, Encode(scenarioA))
}

func TestDecode_Reader(t *testing.T) {
	d, err := Decode(strings.NewReader(scenarioAForm + "\r\n"))
	require.NoError(t, err)
	assert.Equal(t, scenarioA, d.Input())
}

func TestDecode_ReadError(t *testing.T) {
	_, err := Decode(iotest.ErrReader(errors.New("boom")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read form")
}

func TestDecodeString_OrderDoesNotMatter(t *testing.T) {
	pairs := strings.Split(scenarioAForm, "&")
	for i, j := 0, len(pairs)-1; i < j; i, j = i+1, j-1 {
		pairs[i], pairs[j] = pairs[j], pairs[i]
	}

	d, err := DecodeString(strings.Join(pairs, "&"))
	require.NoError(t, err)
	assert.Equal(t, scenarioA, d.Input())
}

func TestDecodeString_Incomplete(t *testing.T) {
	d, err := DecodeString("i_read_qps=10&i_write_qps=5&junk&unknown=3")
	require.NoError(t, err)

	assert.Equal(t, 2, d.Count())
	assert.Len(t, d.Missing(), 26)
	assert.NotContains(t, d.Missing(), "i_read_qps")

	err = d.Complete()
	require.ErrorIs(t, err, ErrIncompleteInput)
	assert.Contains(t, err.Error(), "too little vars: 2. Expected 28")
}

func TestDecodeString_Empty(t *testing.T) {
	d, err := DecodeString("")
	require.NoError(t, err)
	assert.Equal(t, 0, d.Count())
	assert.ErrorIs(t, d.Complete(), ErrIncompleteInput)
}

func TestDecodeString_DuplicatesCountOnceLastWins(t *testing.T) {
	d, err := DecodeString("i_read_qps=10&i_read_qps=20")
	require.NoError(t, err)

	assert.Equal(t, 1, d.Count())
	assert.Equal(t, 20, d.Input().Requirements.ReadQPS)
}

func TestDecodeString_BadInteger(t *testing.T) {
	_, err := DecodeString("i_read_qps=lots")
	require.Error(t, err)

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "i_read_qps", fe.Field)
	assert.Contains(t, fe.Reason, "not an integer")
}

func TestDecodeString_UnknownNameIgnored(t *testing.T) {
	d, err := DecodeString("i_colour=blue&i_write_qps=7")
	require.NoError(t, err)
	assert.Equal(t, 1, d.Count())
	assert.Equal(t, 7, d.Input().Requirements.WriteQPS)
}

func TestDecodeString_TruncatesLongTokens(t *testing.T) {
	longName := "i_read_qps" + strings.Repeat("x", 300)
	d, err := DecodeString(longName + "=5")
	require.NoError(t, err)
	assert.Equal(t, 0, d.Count())

	longValue := strings.Repeat("1", 300)
	_, err = DecodeString("i_read_qps=" + longValue)
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Len(t, fe.Reason, len(`not an integer: ""`)+maxTokenLen)
}
