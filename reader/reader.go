// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package reader drives one ClientAdapter on a schedule: periodic
// general interrogation, optional active polling of Polled blocks, and
// continuous draining of the spontaneous queue, exposing health status
// the way a supervisor process would want to report it.
package reader

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gridedge/iec104master/adapter"
	"github.com/gridedge/iec104master/asdu"
	"github.com/gridedge/iec104master/config"
	"github.com/sirupsen/logrus"
)

// Status is a snapshot of a DeviceReader's health, matching the fields
// a process monitor or diagnostics endpoint needs.
type Status struct {
	IsRunning             bool
	IsConnected           bool
	ReadCount             uint64
	ErrorCount            uint64
	LastError             error
	LastReadTime          time.Time
	LastInterrogationTime time.Time
}

// Settings configures a DeviceReader's polling cadence, independent of
// the DeviceID's dial/protocol parameters which the Driver already
// consumed to build the adapter.
type Settings struct {
	ReadInterval          time.Duration
	InterrogationInterval time.Duration
	InterrogationType     asdu.QualifierOfInterrogation
	Blocks                []config.Block
	// MaxPolledPerTick bounds how many C_RD_NA_1 reads a single read
	// tick issues across all Polled blocks, so a large block range
	// cannot flood the outstation. Defaults to 50.
	MaxPolledPerTick int
}

// FromDeviceID builds Settings from a parsed config.DeviceID.
func FromDeviceID(d config.DeviceID) Settings {
	return Settings{
		ReadInterval:          1 * time.Second,
		InterrogationInterval: d.InterrogationInterval,
		InterrogationType:     d.InterrogationType,
		Blocks:                d.Blocks,
	}
}

// DeviceReader periodically interrogates and/or polls one outstation
// through a ClientAdapter and forwards decoded data to Sink.
type DeviceReader struct {
	adapter  *adapter.ClientAdapter
	settings Settings
	log      *logrus.Entry

	// Sink receives every InformationObject drained off the adapter's
	// spontaneous queue. A nil Sink discards them; set before Start.
	Sink func(adapter.InformationObject)

	running atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu   sync.RWMutex
	stat Status
}

// New returns a DeviceReader for a.
func New(a *adapter.ClientAdapter, settings Settings, log *logrus.Entry) *DeviceReader {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if settings.ReadInterval <= 0 {
		settings.ReadInterval = 1 * time.Second
	}
	if settings.InterrogationInterval <= 0 {
		settings.InterrogationInterval = 60 * time.Second
	}
	if settings.MaxPolledPerTick <= 0 {
		settings.MaxPolledPerTick = 50
	}
	return &DeviceReader{adapter: a, settings: settings, log: log}
}

// Start launches the read and interrogation loops. It returns
// immediately; Stop or ctx cancellation ends them.
func (r *DeviceReader) Start(ctx context.Context) {
	if !r.running.CompareAndSwap(false, true) {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go r.readLoop(runCtx)
}

// Stop ends the loops and waits for them to exit.
func (r *DeviceReader) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
	r.running.Store(false)
}

// Status returns a snapshot of the reader's current health.
func (r *DeviceReader) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st := r.stat
	st.IsRunning = r.running.Load()
	st.IsConnected = r.adapter.IsConnected()
	return st
}

func (r *DeviceReader) readLoop(ctx context.Context) {
	defer r.wg.Done()

	readTicker := time.NewTicker(r.settings.ReadInterval)
	defer readTicker.Stop()
	interrogationTicker := time.NewTicker(r.settings.InterrogationInterval)
	defer interrogationTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-interrogationTicker.C:
			r.runInterrogation(ctx)

		case <-readTicker.C:
			r.runReadTick(ctx)
		}
	}
}

func (r *DeviceReader) runInterrogation(ctx context.Context) {
	reqCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := r.adapter.SendInterrogation(reqCtx, r.settings.InterrogationType); err != nil {
		r.recordError(err)
		r.log.Warnf("interrogation failed: %v", err)
		return
	}
	r.mu.Lock()
	r.stat.LastInterrogationTime = time.Now()
	r.mu.Unlock()
}

func (r *DeviceReader) runReadTick(ctx context.Context) {
	for _, obj := range r.adapter.ProcessSpontaneous() {
		r.mu.Lock()
		r.stat.ReadCount++
		r.stat.LastReadTime = time.Now()
		r.mu.Unlock()
		if r.Sink != nil {
			r.Sink(obj)
		}
	}

	issued := 0
	for _, b := range r.settings.Blocks {
		if b.Mode != config.Polled {
			continue
		}
		for i := 0; i < b.Count; i++ {
			if issued >= r.settings.MaxPolledPerTick {
				return
			}
			ioa := asdu.InfoObjAddr(uint32(b.StartIOA) + uint32(i))
			if err := r.adapter.ReadCommand(ctx, ioa); err != nil {
				r.recordError(err)
			}
			issued++
		}
	}
}

func (r *DeviceReader) recordError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stat.ErrorCount++
	r.stat.LastError = err
}
