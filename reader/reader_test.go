package reader

import (
	"testing"
	"time"

	"github.com/gridedge/iec104master/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppliesDefaults(t *testing.T) {
	r := New(nil, Settings{}, nil)
	assert.Equal(t, 1*time.Second, r.settings.ReadInterval)
	assert.Equal(t, 60*time.Second, r.settings.InterrogationInterval)
	assert.Equal(t, 50, r.settings.MaxPolledPerTick)
}

func TestFromDeviceIDCarriesBlocks(t *testing.T) {
	d := config.DeviceID{
		InterrogationInterval: 30 * time.Second,
		Blocks:                []config.Block{{StartIOA: 1, Count: 5, Mode: config.Polled}},
	}
	s := FromDeviceID(d)
	assert.Equal(t, 30*time.Second, s.InterrogationInterval)
	require.Len(t, s.Blocks, 1)
}
