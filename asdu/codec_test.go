package asdu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// newCodecASDU returns an ASDU over a private copy of ParamsWide so tests
// that tweak width fields (e.g. InfoObjAddrSize) cannot leak state into the
// shared global used by every other test in the package.
func newCodecASDU() *ASDU {
	p := *ParamsWide
	return NewASDU(&p, Identifier{})
}

func TestAppendDecodeUint16(t *testing.T) {
	u := newCodecASDU()
	u.AppendUint16(0xBEEF)
	assert.Equal(t, uint16(0xBEEF), u.DecodeUint16())
}

func TestAppendDecodeInfoObjAddrWidths(t *testing.T) {
	u := newCodecASDU()
	u.InfoObjAddrSize = 3
	a := assert.New(t)
	a.NoError(u.AppendInfoObjAddr(InfoObjAddr(0x010203)))
	a.Equal(InfoObjAddr(0x010203), u.DecodeInfoObjAddr())
}

func TestAppendInfoObjAddrOverflowRejected(t *testing.T) {
	u := newCodecASDU()
	u.InfoObjAddrSize = 1
	assert.ErrorIs(t, u.AppendInfoObjAddr(InfoObjAddr(300)), ErrInfoObjAddrFit)
}

func TestAppendDecodeNormalizeAndScaled(t *testing.T) {
	u := newCodecASDU()
	u.AppendNormalize(Normalize(-12345))
	assert.Equal(t, Normalize(-12345), u.DecodeNormalize())

	u2 := newCodecASDU()
	u2.AppendScaled(-999)
	assert.Equal(t, int16(-999), u2.DecodeScaled())
}

func TestAppendDecodeFloat32(t *testing.T) {
	u := newCodecASDU()
	u.AppendFloat32(3.14159)
	assert.InDelta(t, 3.14159, u.DecodeFloat32(), 1e-5)
}

func TestAppendDecodeBitsString32(t *testing.T) {
	u := newCodecASDU()
	u.AppendBitsString32(0xDEADBEEF)
	assert.Equal(t, uint32(0xDEADBEEF), u.DecodeBitsString32())
}

func TestAppendDecodeBinaryCounterReading(t *testing.T) {
	u := newCodecASDU()
	v := BinaryCounterReading{
		CounterReading: -42,
		SeqNumber:      17,
		HasCarry:       true,
		IsAdjusted:     false,
		IsInvalid:      true,
	}
	u.AppendBinaryCounterReading(v)
	got := u.DecodeBinaryCounterReading()
	assert.Equal(t, v, got)
}

func TestAppendDecodeStatusAndStatusChangeDetection(t *testing.T) {
	u := newCodecASDU()
	u.AppendStatusAndStatusChangeDetection(StatusAndStatusChangeDetection(0x1234ABCD))
	assert.Equal(t, StatusAndStatusChangeDetection(0x1234ABCD), u.DecodeStatusAndStatusChangeDetection())
}

func TestAppendDecodeCPTimes(t *testing.T) {
	u := newCodecASDU()
	ts := time.Date(2026, time.March, 5, 9, 30, 15, 0, time.UTC)
	u.AppendCP56Time2a(ts, u.Params.InfoObjTimeZone)
	out := u.DecodeCP56Time2a()
	assert.Equal(t, ts.Minute(), out.Minute())

	u2 := newCodecASDU()
	u2.AppendCP24Time2a(ts, u2.Params.InfoObjTimeZone)
	out2 := u2.DecodeCP24Time2a()
	assert.Equal(t, ts.Minute(), out2.Minute())

	u3 := newCodecASDU()
	u3.AppendCP16Time2a(12345)
	assert.Equal(t, uint16(12345), u3.DecodeCP16Time2a())
}
