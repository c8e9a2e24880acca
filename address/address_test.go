package address

import (
	"testing"

	"github.com/gridedge/iec104master/asdu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseThreeFieldForm(t *testing.T) {
	a, err := Parse("1.2001.13")
	require.NoError(t, err)
	assert.Equal(t, IEC104Address{COA: 1, IOA: 2001, TypeID: 13}, a)
}

func TestParseTwoFieldFormRecognizedTypeID(t *testing.T) {
	a, err := Parse("2001.13")
	require.NoError(t, err)
	assert.Equal(t, IEC104Address{COA: defaultCOA, IOA: 2001, TypeID: 13}, a)
}

func TestParseTwoFieldFormPlainCOAIOA(t *testing.T) {
	// 300 is above 255, so it cannot be a TypeID and the form falls
	// back to COA.IOA with the default TypeID.
	a, err := Parse("5.300")
	require.NoError(t, err)
	assert.Equal(t, asdu.TypeID(13), a.TypeID)
	assert.Equal(t, uint16(5), a.COA)
	assert.Equal(t, uint32(300), a.IOA)
}

func TestParseOneFieldForm(t *testing.T) {
	a, err := Parse("42")
	require.NoError(t, err)
	assert.Equal(t, IEC104Address{COA: defaultCOA, IOA: 42, TypeID: defaultTypeID}, a)
}

func TestParseRoundTrip(t *testing.T) {
	want := IEC104Address{COA: 7, IOA: 123456, TypeID: 45}
	a, err := Parse(want.String())
	require.NoError(t, err)
	assert.Equal(t, want, a)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse("")
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = Parse("1.2.3.4")
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = Parse("a.b.c")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestParseOutOfRange(t *testing.T) {
	_, err := Parse("65535.1.1")
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestClassifyTypeID(t *testing.T) {
	assert.Equal(t, CategoryMonitoring, ClassifyTypeID(asdu.M_ME_NC_1))
	assert.Equal(t, CategoryControl, ClassifyTypeID(asdu.C_SC_NA_1))
	assert.Equal(t, CategorySystem, ClassifyTypeID(asdu.C_IC_NA_1))
	assert.Equal(t, CategoryUnknown, ClassifyTypeID(asdu.TypeID(200)))
}

func TestGeneralInterrogation(t *testing.T) {
	a, err := GeneralInterrogation(1)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), a.IOA)
	assert.Equal(t, asdu.C_IC_NA_1, a.TypeID)
}
