package config

import (
	"testing"
	"time"

	"github.com/gridedge/iec104master/asdu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeviceIDFull(t *testing.T) {
	d, err := ParseDeviceID("10.0.0.1|2404|1|12|8|30|15|10|20|20|60|1:10:13:c,100:1:45:p")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", d.IP)
	assert.Equal(t, 2404, d.Port)
	assert.EqualValues(t, 1, d.COA)
	assert.EqualValues(t, 12, d.K)
	assert.EqualValues(t, 8, d.W)
	assert.Equal(t, 30*time.Second, d.T0)
	assert.Equal(t, asdu.QOIStation, d.InterrogationType)
	assert.Equal(t, 60*time.Second, d.InterrogationInterval)
	require.Len(t, d.Blocks, 2)
	assert.Equal(t, Cyclic, d.Blocks[0].Mode)
	assert.Equal(t, Polled, d.Blocks[1].Mode)
}

func TestParseDeviceIDMinimal(t *testing.T) {
	d, err := ParseDeviceID("192.168.1.5")
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.5", d.IP)
	assert.Equal(t, 2404, d.Port)
	assert.EqualValues(t, 1, d.COA)
	assert.Empty(t, d.Blocks)
}

func TestParseDeviceIDTolerantOfGarbageField(t *testing.T) {
	d, err := ParseDeviceID("10.0.0.1|notaport|1")
	require.NoError(t, err)
	assert.Equal(t, 2404, d.Port)
	assert.EqualValues(t, 1, d.COA)
}

func TestParseDeviceIDRequiresIP(t *testing.T) {
	_, err := ParseDeviceID("")
	require.Error(t, err)
}

func TestParseBlockSettings(t *testing.T) {
	blocks, err := ParseBlockSettings("1:10:13:c,500:5:45:p")
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.EqualValues(t, 1, blocks[0].StartIOA)
	assert.Equal(t, 10, blocks[0].Count)
	assert.Equal(t, asdu.TypeID(13), blocks[0].TypeID)
	assert.Equal(t, Cyclic, blocks[0].Mode)
	assert.Equal(t, Polled, blocks[1].Mode)
}

func TestParseBlockSettingsEmpty(t *testing.T) {
	blocks, err := ParseBlockSettings("")
	require.NoError(t, err)
	assert.Nil(t, blocks)
}

func TestParseBlockSettingsRejectsBadMode(t *testing.T) {
	_, err := ParseBlockSettings("1:10:13:x")
	require.Error(t, err)
}

func TestBlockContains(t *testing.T) {
	b := Block{StartIOA: 100, Count: 10}
	assert.True(t, b.Contains(100))
	assert.True(t, b.Contains(109))
	assert.False(t, b.Contains(110))
	assert.False(t, b.Contains(99))
}
