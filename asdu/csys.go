// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"time"
)

// System commands, control direction: general/counter interrogation,
// read, clock synchronization, test, process reset, and delay
// acquisition. Every one of these carries a single information object
// (SQ = 0) and most address InfoObjAddrIrrelevant rather than a real
// point. See companion standard 101, subclass 7.3.4.

// newSystemCmd builds the single-information-object ASDU every system
// command below sends: the header for typeID/coa/ca followed by ioa,
// ready for the caller to append whatever command-specific bytes come
// next and hand to c.Send.
func newSystemCmd(c Connect, typeID TypeID, coa CauseOfTransmission, ca CommonAddr, ioa InfoObjAddr) (*ASDU, error) {
	if err := c.Params().Valid(); err != nil {
		return nil, err
	}
	u := NewASDU(c.Params(), Identifier{
		Type:       typeID,
		Variable:   VariableStruct{IsSequence: false, Number: 1},
		Coa:        coa,
		CommonAddr: ca,
	})
	if err := u.AppendInfoObjAddr(ioa); err != nil {
		return nil, err
	}
	return u, nil
}

// InterrogationCmd sends a general interrogation command [C_IC_NA_1].
// coa.Cause must be Activation or Deactivation; the caller chooses
// which, since this one command both starts and stops interrogation.
// Monitoring-direction replies carry ActivationCon/DeactivationCon,
// ActivationTerm, or one of the UnknownXxx causes.
func InterrogationCmd(c Connect, coa CauseOfTransmission, ca CommonAddr, qoi QualifierOfInterrogation) error {
	if coa.Cause != Activation && coa.Cause != Deactivation {
		return ErrCmdCause
	}
	u, err := newSystemCmd(c, C_IC_NA_1, coa, ca, InfoObjAddrIrrelevant)
	if err != nil {
		return err
	}
	u.AppendBytes(byte(qoi))
	return c.Send(u)
}

// CounterInterrogationCmd sends a counter interrogation command
// [C_CI_NA_1]. Always an activation; coa.Cause is overwritten.
func CounterInterrogationCmd(c Connect, coa CauseOfTransmission, ca CommonAddr, qcc QualifierCountCall) error {
	coa.Cause = Activation
	u, err := newSystemCmd(c, C_CI_NA_1, coa, ca, InfoObjAddrIrrelevant)
	if err != nil {
		return err
	}
	u.AppendBytes(qcc.Value())
	return c.Send(u)
}

// ReadCmd sends a read command [C_RD_NA_1] for a single information
// object address. coa.Cause is always Request.
func ReadCmd(c Connect, coa CauseOfTransmission, ca CommonAddr, ioa InfoObjAddr) error {
	coa.Cause = Request
	u, err := newSystemCmd(c, C_RD_NA_1, coa, ca, ioa)
	if err != nil {
		return err
	}
	return c.Send(u)
}

// ClockSynchronizationCmd sends a clock synchronization command
// [C_CS_NA_1]. Always an activation; coa.Cause is overwritten.
func ClockSynchronizationCmd(c Connect, coa CauseOfTransmission, ca CommonAddr, t time.Time) error {
	coa.Cause = Activation
	u, err := newSystemCmd(c, C_CS_NA_1, coa, ca, InfoObjAddrIrrelevant)
	if err != nil {
		return err
	}
	u.AppendBytes(CP56Time2a(t, u.InfoObjTimeZone)...)
	return c.Send(u)
}

// TestCommand sends a link test command [C_TS_NA_1] carrying the fixed
// FBPTestWord. Always an activation; coa.Cause is overwritten.
func TestCommand(c Connect, coa CauseOfTransmission, ca CommonAddr) error {
	coa.Cause = Activation
	u, err := newSystemCmd(c, C_TS_NA_1, coa, ca, InfoObjAddrIrrelevant)
	if err != nil {
		return err
	}
	u.AppendBytes(byte(FBPTestWord&0xff), byte(FBPTestWord>>8))
	return c.Send(u)
}

// ResetProcessCmd sends a reset process command [C_RP_NA_1]. Always an
// activation; coa.Cause is overwritten.
func ResetProcessCmd(c Connect, coa CauseOfTransmission, ca CommonAddr, qrp QualifierOfResetProcessCmd) error {
	coa.Cause = Activation
	u, err := newSystemCmd(c, C_RP_NA_1, coa, ca, InfoObjAddrIrrelevant)
	if err != nil {
		return err
	}
	u.AppendBytes(byte(qrp))
	return c.Send(u)
}

// DelayAcquireCommand sends a delay acquisition command [C_CD_NA_1]
// carrying an elapsed time in milliseconds. coa.Cause must be
// Spontaneous or Activation.
func DelayAcquireCommand(c Connect, coa CauseOfTransmission, ca CommonAddr, msec uint16) error {
	if coa.Cause != Spontaneous && coa.Cause != Activation {
		return ErrCmdCause
	}
	u, err := newSystemCmd(c, C_CD_NA_1, coa, ca, InfoObjAddrIrrelevant)
	if err != nil {
		return err
	}
	u.AppendCP16Time2a(msec)
	return c.Send(u)
}

// TestCommandCP56Time2a sends the time-tagged link test command
// [C_TS_TA_1], carrying FBPTestWord plus the time it was sent.
func TestCommandCP56Time2a(c Connect, coa CauseOfTransmission, ca CommonAddr, t time.Time) error {
	u, err := newSystemCmd(c, C_TS_TA_1, coa, ca, InfoObjAddrIrrelevant)
	if err != nil {
		return err
	}
	u.AppendUint16(FBPTestWord)
	u.AppendCP56Time2a(t, u.InfoObjTimeZone)
	return c.Send(u)
}

// GetInterrogationCmd decodes [C_IC_NA_1]: information object address
// and the interrogation qualifier.
func (sf *ASDU) GetInterrogationCmd() (InfoObjAddr, QualifierOfInterrogation) {
	return sf.DecodeInfoObjAddr(), QualifierOfInterrogation(sf.infoObj[0])
}

// GetCounterInterrogationCmd decodes [C_CI_NA_1]: information object
// address and the counter-call qualifier.
func (sf *ASDU) GetCounterInterrogationCmd() (InfoObjAddr, QualifierCountCall) {
	return sf.DecodeInfoObjAddr(), ParseQualifierCountCall(sf.infoObj[0])
}

// GetReadCmd decodes [C_RD_NA_1]: the information object address to
// read.
func (sf *ASDU) GetReadCmd() InfoObjAddr {
	return sf.DecodeInfoObjAddr()
}

// GetClockSynchronizationCmd decodes [C_CS_NA_1]: information object
// address and the time to synchronize to.
func (sf *ASDU) GetClockSynchronizationCmd() (InfoObjAddr, time.Time) {
	return sf.DecodeInfoObjAddr(), sf.DecodeCP56Time2a()
}

// GetTestCommand decodes [C_TS_NA_1]: information object address and
// whether the test word matched FBPTestWord.
func (sf *ASDU) GetTestCommand() (InfoObjAddr, bool) {
	return sf.DecodeInfoObjAddr(), sf.DecodeUint16() == FBPTestWord
}

// GetResetProcessCmd decodes [C_RP_NA_1]: information object address
// and the reset qualifier.
func (sf *ASDU) GetResetProcessCmd() (InfoObjAddr, QualifierOfResetProcessCmd) {
	return sf.DecodeInfoObjAddr(), QualifierOfResetProcessCmd(sf.infoObj[0])
}

// GetDelayAcquireCommand decodes [C_CD_NA_1]: information object
// address and the delay in milliseconds.
func (sf *ASDU) GetDelayAcquireCommand() (InfoObjAddr, uint16) {
	return sf.DecodeInfoObjAddr(), sf.DecodeUint16()
}

// GetTestCommandCP56Time2a decodes [C_TS_TA_1]: information object
// address, whether the test word matched FBPTestWord, and the time it
// was sent.
func (sf *ASDU) GetTestCommandCP56Time2a() (InfoObjAddr, bool, time.Time) {
	return sf.DecodeInfoObjAddr(), sf.DecodeUint16() == FBPTestWord, sf.DecodeCP56Time2a()
}
