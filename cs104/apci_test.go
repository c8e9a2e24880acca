package cs104

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIFrameAndParseRoundTrip(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03}
	b, err := newIFrame(5, 9, payload)
	require.NoError(t, err)
	require.Len(t, b, 6+len(payload))
	assert.Equal(t, startFrame, b[0])
	assert.Equal(t, byte(len(payload)+4), b[1])

	frame, rest := parse(b)
	i, ok := frame.(iAPCI)
	require.True(t, ok)
	assert.Equal(t, uint16(5), i.sendSN)
	assert.Equal(t, uint16(9), i.rcvSN)
	assert.Equal(t, payload, rest)
}

func TestNewIFrameRejectsOversizeASDU(t *testing.T) {
	_, err := newIFrame(0, 0, make([]byte, 300))
	assert.Error(t, err)
}

func TestNewSFrameAndParse(t *testing.T) {
	b := newSFrame(42)
	frame, rest := parse(b)
	s, ok := frame.(sAPCI)
	require.True(t, ok)
	assert.Equal(t, uint16(42), s.rcvSN)
	assert.Empty(t, rest)
}

func TestNewUFrameAndParseEachFunction(t *testing.T) {
	cases := []byte{uStartDtActive, uStartDtConfirm, uStopDtActive, uStopDtConfirm, uTestFrActive, uTestFrConfirm}
	for _, fn := range cases {
		b := newUFrame(fn)
		frame, rest := parse(b)
		u, ok := frame.(uAPCI)
		require.True(t, ok)
		assert.Equal(t, fn, u.function)
		assert.Empty(t, rest)
	}
}

func TestUAPCIStringUnknownFunction(t *testing.T) {
	u := uAPCI{function: 0xfc}
	assert.Equal(t, "U[function: Unknown]", u.String())
}

func TestSeqNoCountNoWrap(t *testing.T) {
	assert.Equal(t, uint16(5), seqNoCount(10, 15))
	assert.Equal(t, uint16(0), seqNoCount(10, 10))
}

func TestSeqNoCountWrapsAt32768(t *testing.T) {
	// from near the top of the 15-bit space, to just past zero.
	assert.Equal(t, uint16(3), seqNoCount(32767, 2))
	assert.Equal(t, uint16(1), seqNoCount(32767, 0))
}
