package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(10000), ToMinorUnits(100))
	assert.Equal(t, int64(10050), ToMinorUnits(100.50))
	assert.Equal(t, int64(1999), ToMinorUnits(19.99))
	assert.Equal(t, int64(0), ToMinorUnits(0))
	// Half-up on the sub-cent boundary.
	assert.Equal(t, int64(1001), ToMinorUnits(10.005))
	assert.Equal(t, int64(1000), ToMinorUnits(10.004))
	// 19.90 * 100 is 1989.9999... in binary; rounding must absorb that.
	assert.Equal(t, int64(1990), ToMinorUnits(19.90))
}

func TestSplitCommission(t *testing.T) {
	commission, host := SplitCommission(100)
	assert.InDelta(t, 13.0, commission, 1e-9)
	assert.InDelta(t, 87.0, host, 1e-9)
	assert.InDelta(t, 100.0, commission+host, 1e-9)

	commission, host = SplitCommission(0)
	assert.Zero(t, commission)
	assert.Zero(t, host)

	commission, host = SplitCommission(19.99)
	assert.InDelta(t, 19.99*0.13, commission, 1e-9)
	assert.InDelta(t, 19.99, commission+host, 1e-9)
}
