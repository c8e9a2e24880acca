package asdu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCP56Time2aRoundTrip(t *testing.T) {
	loc := time.UTC
	in := time.Date(2026, time.March, 5, 13, 47, 32, 125*1e6, loc)
	b := CP56Time2a(in, loc)
	assert.Len(t, b, 7)

	out := ParseCP56Time2a(b, loc)
	assert.Equal(t, in.Year(), out.Year())
	assert.Equal(t, in.Month(), out.Month())
	assert.Equal(t, in.Day(), out.Day())
	assert.Equal(t, in.Hour(), out.Hour())
	assert.Equal(t, in.Minute(), out.Minute())
	assert.Equal(t, in.Second(), out.Second())
	assert.Equal(t, in.Nanosecond(), out.Nanosecond())
}

func TestParseCP56Time2aShortBufferYieldsZero(t *testing.T) {
	assert.True(t, ParseCP56Time2a([]byte{0, 0, 0}, time.UTC).IsZero())
}

func TestParseCP56Time2aOutOfRangeMinuteYieldsZero(t *testing.T) {
	b := []byte{0, 0, 0x3e, 10, 5, 3, 26}
	assert.True(t, ParseCP56Time2a(b, time.UTC).IsZero())
}

func TestParseCP56Time2aOutOfRangeDayYieldsZero(t *testing.T) {
	b := []byte{0, 0, 10, 10, 0, 3, 26}
	assert.True(t, ParseCP56Time2a(b, time.UTC).IsZero())
}

func TestCP24Time2aRoundTripMinuteAndMillisecond(t *testing.T) {
	loc := time.UTC
	in := time.Date(2026, time.March, 5, 13, 47, 32, 500*1e6, loc)
	b := CP24Time2a(in, loc)
	assert.Len(t, b, 3)

	out := ParseCP24Time2a(b, loc)
	assert.Equal(t, in.Minute(), out.Minute())
	assert.Equal(t, in.Second(), out.Second())
	assert.Equal(t, in.Nanosecond(), out.Nanosecond())
}

func TestParseCP24Time2aShortBufferYieldsZero(t *testing.T) {
	assert.True(t, ParseCP24Time2a([]byte{0, 0}, time.UTC).IsZero())
}

func TestCP16Time2aRoundTrip(t *testing.T) {
	b := CP16Time2a(59999)
	assert.Equal(t, uint16(59999), ParseCP16Time2a(b))
}

func TestCP16Time2aZero(t *testing.T) {
	b := CP16Time2a(0)
	assert.Equal(t, uint16(0), ParseCP16Time2a(b))
}
