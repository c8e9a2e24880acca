package driver

import (
	"testing"

	"github.com/gridedge/iec104master/config"
	"github.com/stretchr/testify/assert"
)

func TestNewClientIDFormat(t *testing.T) {
	id := NewClientID(config.DeviceID{IP: "10.0.0.1", Port: 2404, COA: 1})
	assert.Equal(t, ClientID("10.0.0.1-2404-1"), id)
}

func TestDriverRemoveUnknownID(t *testing.T) {
	drv := New(nil)
	err := drv.Remove(ClientID("nope"), 0)
	assert.Error(t, err)
}

func TestDriverGetMissing(t *testing.T) {
	drv := New(nil)
	_, ok := drv.Get(ClientID("nope"))
	assert.False(t, ok)
}

func TestDriverIDsEmpty(t *testing.T) {
	drv := New(nil)
	assert.Empty(t, drv.IDs())
}
