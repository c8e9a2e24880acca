// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package adapter

import (
	"context"
	"time"

	"github.com/gridedge/iec104master/asdu"
)

// ReadCommand requests the current value of ioa with a C_RD_NA_1. It
// does not wait for the answer: the outstation replies with a
// spontaneous-cause ASDU that surfaces through ProcessSpontaneous like
// any other report, since C_RD_NA_1 has no ActCon/ActTerm of its own.
func (a *ClientAdapter) ReadCommand(ctx context.Context, ioa asdu.InfoObjAddr) error {
	if !a.IsConnected() {
		return ErrNotConnected
	}
	coa := asdu.CauseOfTransmission{}
	return asdu.ReadCmd(a.client, coa, a.coa, ioa)
}

// SendInterrogation issues a station (or group) interrogation and
// blocks until the outstation has sent ActCon and ActTerm for it, or
// ctx is done. Spontaneous scan data arrives concurrently through
// ProcessSpontaneous and is not returned here.
func (a *ClientAdapter) SendInterrogation(ctx context.Context, qoi asdu.QualifierOfInterrogation) error {
	if !a.IsConnected() {
		return ErrNotConnected
	}
	key := pendingKey(asdu.InfoObjAddrIrrelevant, asdu.C_IC_NA_1)
	p, err := a.register(key, phaseInterrogation)
	if err != nil {
		return err
	}

	coa := asdu.CauseOfTransmission{Cause: asdu.Activation}
	if err := a.client.InterrogationCmd(coa, a.coa, qoi); err != nil {
		a.finishPending(key, nil)
		return err
	}
	return a.await(ctx, p, key)
}

// SendCommand issues a control-direction command for ioa/typeID. When
// selectBeforeExecute is true it runs the two-phase select/execute
// flow (blocking for the select ActCon before sending the execute
// command); otherwise it sends the command directly. It returns once
// the outstation has sent a positive ActCon and ActTerm, a negative
// ActCon (ErrRejected), or ctx expires (ErrTimedOut).
func (a *ClientAdapter) SendCommand(ctx context.Context, ioa asdu.InfoObjAddr, typeID asdu.TypeID, value interface{}, selectBeforeExecute bool) error {
	if !a.IsConnected() {
		return ErrNotConnected
	}
	key := pendingKey(ioa, typeID)

	if selectBeforeExecute {
		p, err := a.register(key, phaseSelect)
		if err != nil {
			return err
		}
		if err := a.sendCommandFrame(ioa, typeID, value, true); err != nil {
			a.finishPending(key, nil)
			return err
		}
		if err := a.await(ctx, p, key); err != nil {
			return err
		}
	}

	p, err := a.register(key, phaseExecute)
	if err != nil {
		return err
	}
	if err := a.sendCommandFrame(ioa, typeID, value, false); err != nil {
		a.finishPending(key, nil)
		return err
	}
	return a.await(ctx, p, key)
}

// SendSetpointEngineering issues a C_SE_NA_1 (normalized) or C_SE_NB_1
// (scaled) set-point command, converting real from engineering units
// to wire units through the range/factor registered for ioa via
// SetNormalizeRange/SetScaleFactor. It returns ErrNotSupported if ioa
// has no registered conversion for typeID.
func (a *ClientAdapter) SendSetpointEngineering(ctx context.Context, ioa asdu.InfoObjAddr, typeID asdu.TypeID, real float64, selectBeforeExecute bool) error {
	switch typeID {
	case asdu.C_SE_NA_1, asdu.C_SE_TA_1:
		v, ok := a.scaling.normalizedFromFloat64(ioa, real)
		if !ok {
			return ErrNotSupported
		}
		return a.SendCommand(ctx, ioa, typeID, v, selectBeforeExecute)

	case asdu.C_SE_NB_1, asdu.C_SE_TB_1:
		v, ok := a.scaling.scaledFromFloat64(ioa, real)
		if !ok {
			return ErrNotSupported
		}
		return a.SendCommand(ctx, ioa, typeID, v, selectBeforeExecute)

	default:
		return ErrNotSupported
	}
}

func (a *ClientAdapter) register(key string, ph phase) (*pendingCommand, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.pending[key]; exists {
		return nil, &CommandError{Kind: ErrDuplicate, Addr: key}
	}
	p := &pendingCommand{sentAt: time.Now(), phase: ph, result: make(chan error, 1)}
	a.pending[key] = p
	return p, nil
}

func (a *ClientAdapter) await(ctx context.Context, p *pendingCommand, key string) error {
	select {
	case err := <-p.result:
		return err
	case <-ctx.Done():
		a.finishPending(key, nil)
		return &CommandError{Kind: ErrTimedOut, Addr: key, Err: ctx.Err()}
	case <-a.connLost:
		a.finishPending(key, nil)
		return &CommandError{Kind: ErrNotConnected, Addr: key}
	}
}

func (a *ClientAdapter) sendCommandFrame(ioa asdu.InfoObjAddr, typeID asdu.TypeID, value interface{}, inSelect bool) error {
	coa := asdu.CauseOfTransmission{Cause: asdu.Activation}
	qoc := asdu.QualifierOfCommand{Qual: asdu.QOCNoAdditionalDefinition, InSelect: inSelect}
	qos := asdu.QualifierOfSetpointCmd{InSelect: inSelect}

	switch typeID {
	case asdu.C_SC_NA_1, asdu.C_SC_TA_1:
		v, _ := value.(bool)
		return asdu.SingleCmd(a.client, typeID, coa, a.coa, asdu.SingleCommandInfo{Ioa: ioa, Value: v, Qoc: qoc})

	case asdu.C_DC_NA_1, asdu.C_DC_TA_1:
		v, _ := value.(asdu.DoubleCommand)
		return asdu.DoubleCmd(a.client, typeID, coa, a.coa, asdu.DoubleCommandInfo{Ioa: ioa, Value: v, Qoc: qoc})

	case asdu.C_RC_NA_1, asdu.C_RC_TA_1:
		v, _ := value.(asdu.StepCommand)
		return asdu.StepCmd(a.client, typeID, coa, a.coa, asdu.StepCommandInfo{Ioa: ioa, Value: v, Qoc: qoc})

	case asdu.C_SE_NA_1, asdu.C_SE_TA_1:
		v, _ := value.(asdu.Normalize)
		return asdu.SetpointCmdNormal(a.client, typeID, coa, a.coa, asdu.SetpointCommandNormalInfo{Ioa: ioa, Value: v, Qos: qos})

	case asdu.C_SE_NB_1, asdu.C_SE_TB_1:
		v, _ := value.(int16)
		return asdu.SetpointCmdScaled(a.client, typeID, coa, a.coa, asdu.SetpointCommandScaledInfo{Ioa: ioa, Value: v, Qos: qos})

	case asdu.C_SE_NC_1, asdu.C_SE_TC_1:
		v, _ := value.(float32)
		return asdu.SetpointCmdFloat(a.client, typeID, coa, a.coa, asdu.SetpointCommandFloatInfo{Ioa: ioa, Value: v, Qos: qos})

	case asdu.C_BO_NA_1, asdu.C_BO_TA_1:
		v, _ := value.(uint32)
		return asdu.BitsString32Cmd(a.client, typeID, coa, a.coa, asdu.BitsString32CommandInfo{Ioa: ioa, Value: v})

	default:
		return ErrNotSupported
	}
}
