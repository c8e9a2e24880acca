package asdu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureConnect is a Connect that records the last ASDU handed to Send,
// used to exercise MarshalBinary/UnmarshalBinary without a real cs104.Client.
type captureConnect struct {
	params *Params
	sent   *ASDU
}

func (c *captureConnect) Params() *Params  { return c.params }
func (c *captureConnect) Send(a *ASDU) error {
	c.sent = a
	return nil
}

func TestASDUMarshalUnmarshalRoundTrip(t *testing.T) {
	conn := &captureConnect{params: ParamsWide}
	ioa := InfoObjAddr(100)

	require.NoError(t, Single(conn, false, CauseOfTransmission{Cause: Spontaneous}, 1,
		SinglePointInfo{Ioa: ioa, Value: true, Qds: QDSGood}))
	require.NotNil(t, conn.sent)

	raw, err := conn.sent.MarshalBinary()
	require.NoError(t, err)

	out := NewEmptyASDU(ParamsWide)
	require.NoError(t, out.UnmarshalBinary(raw))

	assert.Equal(t, M_SP_NA_1, out.Type)
	assert.Equal(t, Spontaneous, out.Coa.Cause)
	assert.Equal(t, CommonAddr(1), out.CommonAddr)

	infos := out.GetSinglePoint()
	require.Len(t, infos, 1)
	assert.Equal(t, ioa, infos[0].Ioa)
	assert.True(t, infos[0].Value)
}

func TestASDUUnmarshalShortFrame(t *testing.T) {
	out := NewEmptyASDU(ParamsWide)
	err := out.UnmarshalBinary([]byte{1, 2})
	assert.ErrorIs(t, err, ErrShortFrame)
}

func TestASDUUnmarshalUnknownTypeID(t *testing.T) {
	out := NewEmptyASDU(ParamsWide)
	// TypeID 0 is reserved/unused, so GetInfoObjSize must reject it.
	raw := []byte{0, 0x01, byte(Spontaneous), 0, 0, 1, 0}
	err := out.UnmarshalBinary(raw)
	assert.ErrorIs(t, err, ErrTypeIdentifier)
}

func TestASDUUnmarshalTruncated(t *testing.T) {
	conn := &captureConnect{params: ParamsWide}
	require.NoError(t, Single(conn, false, CauseOfTransmission{Cause: Spontaneous}, 1,
		SinglePointInfo{Ioa: 1, Value: true}))
	raw, err := conn.sent.MarshalBinary()
	require.NoError(t, err)

	out := NewEmptyASDU(ParamsWide)
	err = out.UnmarshalBinary(raw[:len(raw)-1])
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestASDUUnmarshalBadLength(t *testing.T) {
	conn := &captureConnect{params: ParamsWide}
	require.NoError(t, Single(conn, false, CauseOfTransmission{Cause: Spontaneous}, 1,
		SinglePointInfo{Ioa: 1, Value: true}))
	raw, err := conn.sent.MarshalBinary()
	require.NoError(t, err)
	raw = append(raw, 0xff)

	out := NewEmptyASDU(ParamsWide)
	err = out.UnmarshalBinary(raw)
	assert.ErrorIs(t, err, ErrBadLength)
}

func TestASDUMarshalInvalidParams(t *testing.T) {
	bad := &Params{CommonAddrSize: 9, CauseSize: 2, InfoObjAddrSize: 3}
	u := NewASDU(bad, Identifier{Type: M_SP_NA_1, Coa: CauseOfTransmission{Cause: Spontaneous}, CommonAddr: 1})
	_, err := u.MarshalBinary()
	assert.ErrorIs(t, err, ErrParam)
}

func TestASDUSequenceOfInformationObjectsRoundTrip(t *testing.T) {
	conn := &captureConnect{params: ParamsWide}
	require.NoError(t, Single(conn, true, CauseOfTransmission{Cause: Spontaneous}, 1,
		SinglePointInfo{Ioa: 10, Value: true},
		SinglePointInfo{Ioa: 11, Value: false},
		SinglePointInfo{Ioa: 12, Value: true},
	))
	raw, err := conn.sent.MarshalBinary()
	require.NoError(t, err)

	out := NewEmptyASDU(ParamsWide)
	require.NoError(t, out.UnmarshalBinary(raw))

	infos := out.GetSinglePoint()
	require.Len(t, infos, 3)
	assert.Equal(t, InfoObjAddr(10), infos[0].Ioa)
	assert.Equal(t, InfoObjAddr(11), infos[1].Ioa)
	assert.Equal(t, InfoObjAddr(12), infos[2].Ioa)
	assert.True(t, infos[0].Value)
	assert.False(t, infos[1].Value)
}

func TestASDUUnmarshalRejectsOutOfRangeMinute(t *testing.T) {
	conn := &captureConnect{params: ParamsWide}
	ts := time.Date(2026, time.March, 5, 8, 0, 0, 0, time.UTC)
	require.NoError(t, SingleCP56Time2a(conn, CauseOfTransmission{Cause: Spontaneous}, 1,
		SinglePointInfo{Ioa: 1, Value: true, Time: ts}))
	raw, err := conn.sent.MarshalBinary()
	require.NoError(t, err)

	// minute lives in the byte right after the CP56Time2a's 2-byte
	// millisecond field, itself right after the 1-byte SIQ value that
	// starts the M_SP_TB_1 information object.
	minuteOffset := conn.sent.IdentifierSize() + conn.sent.InfoObjAddrSize + 1 + 2
	raw[minuteOffset] = (raw[minuteOffset] &^ 0x3f) | 60

	out := NewEmptyASDU(ParamsWide)
	err = out.UnmarshalBinary(raw)
	assert.ErrorIs(t, err, ErrBadTimestamp)
}

func TestASDUWithTimestampRoundTrip(t *testing.T) {
	conn := &captureConnect{params: ParamsWide}
	ts := time.Date(2026, time.March, 5, 8, 0, 0, 0, time.UTC)
	require.NoError(t, SingleCP56Time2a(conn, CauseOfTransmission{Cause: Spontaneous}, 1,
		SinglePointInfo{Ioa: 1, Value: true, Time: ts}))
	raw, err := conn.sent.MarshalBinary()
	require.NoError(t, err)

	out := NewEmptyASDU(ParamsWide)
	require.NoError(t, out.UnmarshalBinary(raw))

	infos := out.GetSinglePoint()
	require.Len(t, infos, 1)
	assert.Equal(t, ts.Minute(), infos[0].Time.Minute())
	assert.Equal(t, ts.Hour(), infos[0].Time.Hour())
}
