// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package driver keeps the registry of live ClientAdapters this process
// owns, keyed by ClientID ("{ip}-{port}-{coa}"), so a DeviceReader can
// be built or torn down without the rest of the program tracking raw
// adapter pointers.
package driver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gridedge/iec104master/adapter"
	"github.com/gridedge/iec104master/asdu"
	"github.com/gridedge/iec104master/config"
	"github.com/sirupsen/logrus"
)

// ClientID names one outstation connection: "{ip}-{port}-{coa}".
type ClientID string

// NewClientID derives a ClientID from a parsed DeviceID.
func NewClientID(d config.DeviceID) ClientID {
	return ClientID(fmt.Sprintf("%s-%d-%d", d.IP, d.Port, d.COA))
}

// Driver is the process-wide registry of ClientAdapters. It holds no
// back-pointers into DeviceReader or any caller state; it is purely an
// arena indexed by ClientID, so ownership of each connection stays
// explicit instead of threaded through a graph of mutable pointers.
type Driver struct {
	mu       sync.RWMutex
	adapters map[ClientID]*adapter.ClientAdapter
	log      *logrus.Entry
}

// New returns an empty Driver.
func New(log *logrus.Entry) *Driver {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Driver{adapters: make(map[ClientID]*adapter.ClientAdapter), log: log}
}

// Add builds a ClientAdapter for d, registers it under its ClientID,
// and connects it. A duplicate ClientID is rejected rather than
// silently replacing the live connection.
func (drv *Driver) Add(ctx context.Context, d config.DeviceID, params *asdu.Params, queueDepth int) (ClientID, error) {
	id := NewClientID(d)

	drv.mu.Lock()
	if _, exists := drv.adapters[id]; exists {
		drv.mu.Unlock()
		return id, fmt.Errorf("driver: %s already registered", id)
	}
	drv.mu.Unlock()

	a, err := adapter.NewClientAdapter(d.Addr(), d.COA, d.CS104Config(), params, queueDepth, drv.log.WithField("client_id", id))
	if err != nil {
		return id, err
	}

	drv.mu.Lock()
	drv.adapters[id] = a
	drv.mu.Unlock()

	if err := a.Connect(ctx); err != nil {
		drv.mu.Lock()
		delete(drv.adapters, id)
		drv.mu.Unlock()
		return id, err
	}
	return id, nil
}

// Remove takes the adapter out of the registry, then disconnects it,
// waiting up to wait for STOPDT to be confirmed before closing.
func (drv *Driver) Remove(id ClientID, wait time.Duration) error {
	drv.mu.Lock()
	a, ok := drv.adapters[id]
	delete(drv.adapters, id)
	drv.mu.Unlock()
	if !ok {
		return fmt.Errorf("driver: %s not registered", id)
	}
	return a.Disconnect(wait)
}

// Get returns the adapter registered under id, if any.
func (drv *Driver) Get(id ClientID) (*adapter.ClientAdapter, bool) {
	drv.mu.RLock()
	defer drv.mu.RUnlock()
	a, ok := drv.adapters[id]
	return a, ok
}

// IDs returns every registered ClientID.
func (drv *Driver) IDs() []ClientID {
	drv.mu.RLock()
	defer drv.mu.RUnlock()
	ids := make([]ClientID, 0, len(drv.adapters))
	for id := range drv.adapters {
		ids = append(ids, id)
	}
	return ids
}
