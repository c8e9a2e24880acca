// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package adapter gives meaning to the bytes a cs104.Client moves: it
// owns one outstation's Common Address, demultiplexes inbound ASDUs by
// cause of transmission into either the spontaneous queue or the
// pending-command table, and offers SendInterrogation/SendCommand as
// synchronous, context-bound calls over the underlying async client.
package adapter

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gridedge/iec104master/asdu"
	"github.com/gridedge/iec104master/cs104"
	"github.com/sirupsen/logrus"
)

// phase distinguishes the two legs of a select-before-execute command,
// plus interrogation requests which only ever have one leg.
type phase int

const (
	phaseExecute phase = iota
	phaseSelect
	phaseInterrogation
)

type pendingCommand struct {
	sentAt time.Time
	phase  phase
	result chan error
}

// ClientAdapter is one logical connection to an outstation: a COA over
// a cs104.Client, with command/response correlation and a spontaneous
// data queue layered on top.
type ClientAdapter struct {
	client *cs104.Client
	coa    asdu.CommonAddr
	log    *logrus.Entry

	mu      sync.Mutex
	pending map[string]*pendingCommand

	spontaneous   *spontaneousQueue
	overflowCount atomic.Uint64
	scaling       *scaling

	activated   chan struct{}
	deactivated chan struct{}
	connLost    chan struct{}

	starting atomic.Bool
	cancel   context.CancelFunc
	runDone  chan error
}

// NewClientAdapter builds a ClientAdapter around a new cs104.Client
// dialing addr with cfg/params, scoped to station coa. queueDepth
// bounds the spontaneous queue; a non-positive value defaults to 1024.
func NewClientAdapter(addr string, coa asdu.CommonAddr, cfg cs104.Config, params *asdu.Params, queueDepth int, log *logrus.Entry) (*ClientAdapter, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	log = log.WithField("coa", coa).WithField("addr", addr)

	client, err := cs104.NewClient(addr, cfg, params)
	if err != nil {
		return nil, err
	}

	if queueDepth <= 0 {
		queueDepth = 1024
	}

	a := &ClientAdapter{
		client:      client,
		coa:         coa,
		log:         log,
		pending:     make(map[string]*pendingCommand),
		activated:   make(chan struct{}),
		deactivated: make(chan struct{}),
		connLost:    make(chan struct{}),
		scaling:     newScaling(),
	}
	a.spontaneous = newSpontaneousQueue(queueDepth, func() {
		n := a.overflowCount.Add(1)
		a.log.Warnf("spontaneous queue overflowed, %d dropped total", n)
	})

	client.SetOnConnectHandler(func(c *cs104.Client) {
		a.log.Debug("tcp connected, requesting data transfer start")
		c.SendStartDt()
	})
	client.SetOnActivatedHandler(func(c *cs104.Client) {
		a.log.Info("data transfer active")
		close(a.activated)
	})
	client.SetOnDeactivatedHandler(func(c *cs104.Client) {
		a.log.Info("data transfer stopped")
		a.closeIfOpen(a.deactivated)
	})
	client.SetConnectionLostHandler(func(c *cs104.Client) {
		a.log.Warn("connection lost")
		a.failAllPending(ErrNotConnected)
		a.closeIfOpen(a.connLost)
	})
	client.SetASDUHandler(func(c *cs104.Client, u *asdu.ASDU) error {
		return a.handleASDU(u)
	})

	return a, nil
}

func (a *ClientAdapter) closeIfOpen(ch chan struct{}) {
	select {
	case <-ch:
	default:
		close(ch)
	}
}

// Connect dials and drives the handshake to STARTDT-confirmed. It
// returns once data transfer is active, the underlying Start call
// fails, or ctx is done.
func (a *ClientAdapter) Connect(ctx context.Context) error {
	if !a.starting.CompareAndSwap(false, true) {
		return cs104.ErrAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.runDone = make(chan error, 1)
	go func() {
		a.runDone <- a.client.Start(runCtx)
	}()

	select {
	case <-a.activated:
		return nil
	case err := <-a.runDone:
		a.starting.Store(false)
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Disconnect requests STOPDT and waits up to wait for confirmation,
// then closes the transport regardless of whether it arrived.
func (a *ClientAdapter) Disconnect(wait time.Duration) error {
	if !a.client.IsConnected() {
		return a.client.Close()
	}
	a.client.SendStopDt()
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-a.deactivated:
	case <-timer.C:
		a.log.Warn("stopdt confirmation timed out, closing transport anyway")
	}
	return a.client.Close()
}

// IsConnected reports whether data transfer is active.
func (a *ClientAdapter) IsConnected() bool {
	return a.client.IsActive()
}

// COA returns the station address this adapter is scoped to.
func (a *ClientAdapter) COA() asdu.CommonAddr {
	return a.coa
}

func pendingKey(ioa asdu.InfoObjAddr, typeID asdu.TypeID) string {
	return fmt.Sprintf("%d.%d", ioa, typeID)
}

// ProcessSpontaneous drains and returns every InformationObject queued
// since the last call, without blocking.
func (a *ClientAdapter) ProcessSpontaneous() []InformationObject {
	return a.spontaneous.drain()
}

// OverflowCount reports how many spontaneous objects have been dropped
// because the queue was full when they arrived.
func (a *ClientAdapter) OverflowCount() uint64 {
	return a.overflowCount.Load()
}

func (a *ClientAdapter) failAllPending(kind error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for key, p := range a.pending {
		select {
		case p.result <- kind:
		default:
		}
		delete(a.pending, key)
	}
}

// handleASDU demultiplexes one decoded ASDU by its cause of
// transmission: data-report causes feed the spontaneous queue, command
// correlation causes resolve the pending table, and the four "unknown"
// causes are logged as protocol errors.
func (a *ClientAdapter) handleASDU(u *asdu.ASDU) error {
	now := time.Now()
	cause := u.Coa.Cause

	switch cause {
	case asdu.Spontaneous, asdu.Periodic, asdu.Background,
		asdu.InterrogatedByStation, asdu.InterrogatedByGroup1, asdu.InterrogatedByGroup2,
		asdu.InterrogatedByGroup3, asdu.InterrogatedByGroup4, asdu.InterrogatedByGroup5,
		asdu.InterrogatedByGroup6, asdu.InterrogatedByGroup7, asdu.InterrogatedByGroup8,
		asdu.InterrogatedByGroup9, asdu.InterrogatedByGroup10, asdu.InterrogatedByGroup11,
		asdu.InterrogatedByGroup12, asdu.InterrogatedByGroup13, asdu.InterrogatedByGroup14,
		asdu.InterrogatedByGroup15, asdu.InterrogatedByGroup16,
		asdu.RequestByGeneralCounter, asdu.RequestByGroup1Counter, asdu.RequestByGroup2Counter,
		asdu.RequestByGroup3Counter, asdu.RequestByGroup4Counter:
		objs, err := decodeInformationObjects(u, now, a.scaling)
		if err != nil {
			a.log.Warnf("undecodable %v asdu, %v", u.Type, err)
			return err
		}
		for _, obj := range objs {
			a.spontaneous.push(obj)
		}
		return nil

	case asdu.ActivationCon, asdu.DeactivationCon, asdu.ActivationTerm:
		return a.resolvePending(u, now)

	case asdu.UnknownTypeID, asdu.UnknownCOT, asdu.UnknownCA, asdu.UnknownIOA:
		a.log.Warnf("outstation reported %v for %v", cause, u.Type)
		return a.failMatchingPending(u, fmt.Errorf("outstation: %v", cause))

	default:
		a.log.Debugf("unhandled cause %v for %v, discarded", cause, u.Type)
		return nil
	}
}

func (a *ClientAdapter) ioaOf(u *asdu.ASDU) asdu.InfoObjAddr {
	switch u.Type {
	case asdu.C_IC_NA_1:
		ioa, _ := u.GetInterrogationCmd()
		return ioa
	case asdu.C_CI_NA_1:
		ioa, _ := u.GetCounterInterrogationCmd()
		return ioa
	case asdu.C_SC_NA_1, asdu.C_SC_TA_1:
		return u.GetSingleCmd().Ioa
	case asdu.C_DC_NA_1, asdu.C_DC_TA_1:
		return u.GetDoubleCmd().Ioa
	case asdu.C_RC_NA_1, asdu.C_RC_TA_1:
		return u.GetStepCmd().Ioa
	case asdu.C_SE_NA_1, asdu.C_SE_TA_1:
		return u.GetSetpointNormalCmd().Ioa
	case asdu.C_SE_NB_1, asdu.C_SE_TB_1:
		return u.GetSetpointCmdScaled().Ioa
	case asdu.C_SE_NC_1, asdu.C_SE_TC_1:
		return u.GetSetpointFloatCmd().Ioa
	case asdu.C_BO_NA_1, asdu.C_BO_TA_1:
		return u.GetBitsString32Cmd().Ioa
	default:
		return asdu.InfoObjAddrIrrelevant
	}
}

func (a *ClientAdapter) resolvePending(u *asdu.ASDU, now time.Time) error {
	ioa := a.ioaOf(u)
	key := pendingKey(ioa, u.Type)

	a.mu.Lock()
	p, ok := a.pending[key]
	a.mu.Unlock()
	if !ok {
		a.log.Debugf("no pending command for %v ioa %d, discarded", u.Type, ioa)
		return nil
	}

	switch u.Coa.Cause {
	case asdu.ActivationCon:
		if u.Coa.IsNegative {
			a.finishPending(key, &CommandError{Kind: ErrRejected, Addr: key})
			return nil
		}
		if p.phase == phaseSelect {
			a.finishPending(key, nil)
		}
		// execute and interrogation phases also expect an ActTerm before
		// the command is fully resolved, so fall through without
		// signalling yet.
		return nil

	case asdu.DeactivationCon:
		a.finishPending(key, nil)
		return nil

	case asdu.ActivationTerm:
		a.finishPending(key, nil)
		return nil
	}
	return nil
}

func (a *ClientAdapter) finishPending(key string, err error) {
	a.mu.Lock()
	p, ok := a.pending[key]
	if ok {
		delete(a.pending, key)
	}
	a.mu.Unlock()
	if ok {
		select {
		case p.result <- err:
		default:
		}
	}
}

func (a *ClientAdapter) failMatchingPending(u *asdu.ASDU, cause error) error {
	ioa := a.ioaOf(u)
	key := pendingKey(ioa, u.Type)
	a.finishPending(key, &CommandError{Kind: ErrRejected, Addr: key, Err: cause})
	return nil
}
