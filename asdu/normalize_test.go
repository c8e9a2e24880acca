package asdu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFromFloat64SaturatesAtBothEndpoints(t *testing.T) {
	assert.EqualValues(t, -32768, NormalizeFromFloat64(-1.0, -1, 1))
	assert.EqualValues(t, 32767, NormalizeFromFloat64(1.0, -1, 1))
}

func TestNormalizeFromFloat64SaturatesBeyondRange(t *testing.T) {
	assert.EqualValues(t, -32768, NormalizeFromFloat64(-5.0, -1, 1))
	assert.EqualValues(t, 32767, NormalizeFromFloat64(5.0, -1, 1))
}

func TestNormalizeFloat64InRangeZeroIsMidpoint(t *testing.T) {
	assert.InDelta(t, 0.0, Normalize(0).Float64InRange(-1, 1), 1e-9)
	assert.InDelta(t, 50.0, Normalize(0).Float64InRange(0, 100), 1e-9)
}

func TestScaledValueConversionRoundTrips(t *testing.T) {
	raw := ScaledValueFromFloat64(123.4, 0.1, 0)
	got := ScaledValueToFloat64(raw, 0.1, 0)
	assert.InDelta(t, 123.4, got, 0.1)
}

func TestScaledValueFromFloat64Saturates(t *testing.T) {
	assert.EqualValues(t, 32767, ScaledValueFromFloat64(1e9, 1, 0))
	assert.EqualValues(t, -32768, ScaledValueFromFloat64(-1e9, 1, 0))
}
