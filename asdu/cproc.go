// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"time"
)

// Process information in the control direction: single, double, and
// step commands; normalized/scaled/short-float setpoint commands; and
// the 32-bit bitstring command. Each comes in a plain and a
// CP56Time2a-tagged TypeID variant; coa.Cause must be Activation or
// Deactivation on the way out. See companion standard 101, subclass
// 7.3.2.

// newCommandASDU builds the header every control-direction command
// below sends: validates coa.Cause, then an ASDU with a single
// information object addressed at ioa, ready for the caller to append
// the command-specific value bytes and optional time tag.
func newCommandASDU(c Connect, typeID TypeID, coa CauseOfTransmission, ca CommonAddr, ioa InfoObjAddr) (*ASDU, error) {
	if coa.Cause != Activation && coa.Cause != Deactivation {
		return nil, ErrCmdCause
	}
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

// appendCmdTimeTag appends t's CP56Time2a encoding when typeID is the
// timed variant, does nothing for the plain variant, and rejects
// anything else with ErrTypeIDNotMatch.
func appendCmdTimeTag(u *ASDU, typeID, plain, timed TypeID, t time.Time) error {
	switch typeID {
	case plain:
	case timed:
		u.AppendBytes(CP56Time2a(t, u.InfoObjTimeZone)...)
	default:
		return ErrTypeIDNotMatch
	}
	return nil
}

// decodeCmdTimeTag is appendCmdTimeTag's decode-side counterpart. It
// panics with ErrTypeIDNotMatch rather than returning an error,
// matching every other Get* decoder in this package: callers only
// invoke these against an ASDU whose Type they already dispatched on.
func (sf *ASDU) decodeCmdTimeTag(plain, timed TypeID) time.Time {
	switch sf.Type {
	case plain:
		return time.Time{}
	case timed:
		return sf.DecodeCP56Time2a()
	default:
		panic(ErrTypeIDNotMatch)
	}
}

// SingleCommandInfo is the single-command message body.
type SingleCommandInfo struct {
	Ioa   InfoObjAddr
	Value bool
	Qoc   QualifierOfCommand
	Time  time.Time
}

// SingleCmd sends [C_SC_NA_1] or [C_SC_TA_1], a single command over a
// single information object (SQ = 0).
func SingleCmd(c Connect, typeID TypeID, coa CauseOfTransmission, ca CommonAddr, cmd SingleCommandInfo) error {
	u, err := newCommandASDU(c, typeID, coa, ca, cmd.Ioa)
	if err != nil {
		return err
	}
	value := cmd.Qoc.Value()
	if cmd.Value {
		value |= 0x01
	}
	u.AppendBytes(value)
	if err := appendCmdTimeTag(u, typeID, C_SC_NA_1, C_SC_TA_1, cmd.Time); err != nil {
		return err
	}
	return c.Send(u)
}

// GetSingleCmd decodes [C_SC_NA_1] or [C_SC_TA_1].
func (sf *ASDU) GetSingleCmd() SingleCommandInfo {
	var s SingleCommandInfo
	s.Ioa = sf.DecodeInfoObjAddr()
	value := sf.DecodeByte()
	s.Value = value&0x01 == 0x01
	s.Qoc = ParseQualifierOfCommand(value & 0xfe)
	s.Time = sf.decodeCmdTimeTag(C_SC_NA_1, C_SC_TA_1)
	return s
}

// DoubleCommandInfo is the double-command message body.
type DoubleCommandInfo struct {
	Ioa   InfoObjAddr
	Value DoubleCommand
	Qoc   QualifierOfCommand
	Time  time.Time
}

// DoubleCmd sends [C_DC_NA_1] or [C_DC_TA_1], a double command over a
// single information object (SQ = 0).
func DoubleCmd(c Connect, typeID TypeID, coa CauseOfTransmission, ca CommonAddr, cmd DoubleCommandInfo) error {
	u, err := newCommandASDU(c, typeID, coa, ca, cmd.Ioa)
	if err != nil {
		return err
	}
	u.AppendBytes(cmd.Qoc.Value() | byte(cmd.Value&0x03))
	if err := appendCmdTimeTag(u, typeID, C_DC_NA_1, C_DC_TA_1, cmd.Time); err != nil {
		return err
	}
	return c.Send(u)
}

// GetDoubleCmd decodes [C_DC_NA_1] or [C_DC_TA_1].
func (sf *ASDU) GetDoubleCmd() DoubleCommandInfo {
	var cmd DoubleCommandInfo
	cmd.Ioa = sf.DecodeInfoObjAddr()
	value := sf.DecodeByte()
	cmd.Value = DoubleCommand(value & 0x03)
	cmd.Qoc = ParseQualifierOfCommand(value & 0xfc)
	cmd.Time = sf.decodeCmdTimeTag(C_DC_NA_1, C_DC_TA_1)
	return cmd
}

// StepCommandInfo is the step-command message body.
type StepCommandInfo struct {
	Ioa   InfoObjAddr
	Value StepCommand
	Qoc   QualifierOfCommand
	Time  time.Time
}

// StepCmd sends [C_RC_NA_1] or [C_RC_TA_1], a step-adjustment command
// over a single information object (SQ = 0).
func StepCmd(c Connect, typeID TypeID, coa CauseOfTransmission, ca CommonAddr, cmd StepCommandInfo) error {
	u, err := newCommandASDU(c, typeID, coa, ca, cmd.Ioa)
	if err != nil {
		return err
	}
	u.AppendBytes(cmd.Qoc.Value() | byte(cmd.Value&0x03))
	if err := appendCmdTimeTag(u, typeID, C_RC_NA_1, C_RC_TA_1, cmd.Time); err != nil {
		return err
	}
	return c.Send(u)
}

// GetStepCmd decodes [C_RC_NA_1] or [C_RC_TA_1].
func (sf *ASDU) GetStepCmd() StepCommandInfo {
	var cmd StepCommandInfo
	cmd.Ioa = sf.DecodeInfoObjAddr()
	value := sf.DecodeByte()
	cmd.Value = StepCommand(value & 0x03)
	cmd.Qoc = ParseQualifierOfCommand(value & 0xfc)
	cmd.Time = sf.decodeCmdTimeTag(C_RC_NA_1, C_RC_TA_1)
	return cmd
}

// SetpointCommandNormalInfo is the normalized-value setpoint command
// message body.
type SetpointCommandNormalInfo struct {
	Ioa   InfoObjAddr
	Value Normalize
	Qos   QualifierOfSetpointCmd
	Time  time.Time
}

// SetpointCmdNormal sends [C_SE_NA_1] or [C_SE_TA_1], a normalized-value
// setpoint command over a single information object (SQ = 0).
func SetpointCmdNormal(c Connect, typeID TypeID, coa CauseOfTransmission, ca CommonAddr, cmd SetpointCommandNormalInfo) error {
	u, err := newCommandASDU(c, typeID, coa, ca, cmd.Ioa)
	if err != nil {
		return err
	}
	u.AppendNormalize(cmd.Value).AppendBytes(cmd.Qos.Value())
	if err := appendCmdTimeTag(u, typeID, C_SE_NA_1, C_SE_TA_1, cmd.Time); err != nil {
		return err
	}
	return c.Send(u)
}

// GetSetpointNormalCmd decodes [C_SE_NA_1] or [C_SE_TA_1].
func (sf *ASDU) GetSetpointNormalCmd() SetpointCommandNormalInfo {
	var cmd SetpointCommandNormalInfo
	cmd.Ioa = sf.DecodeInfoObjAddr()
	cmd.Value = sf.DecodeNormalize()
	cmd.Qos = ParseQualifierOfSetpointCmd(sf.DecodeByte())
	cmd.Time = sf.decodeCmdTimeTag(C_SE_NA_1, C_SE_TA_1)
	return cmd
}

// SetpointCommandScaledInfo is the scaled-value setpoint command
// message body.
type SetpointCommandScaledInfo struct {
	Ioa   InfoObjAddr
	Value int16
	Qos   QualifierOfSetpointCmd
	Time  time.Time
}

// SetpointCmdScaled sends [C_SE_NB_1] or [C_SE_TB_1], a scaled-value
// setpoint command over a single information object (SQ = 0).
func SetpointCmdScaled(c Connect, typeID TypeID, coa CauseOfTransmission, ca CommonAddr, cmd SetpointCommandScaledInfo) error {
	u, err := newCommandASDU(c, typeID, coa, ca, cmd.Ioa)
	if err != nil {
		return err
	}
	u.AppendScaled(cmd.Value).AppendBytes(cmd.Qos.Value())
	if err := appendCmdTimeTag(u, typeID, C_SE_NB_1, C_SE_TB_1, cmd.Time); err != nil {
		return err
	}
	return c.Send(u)
}

// GetSetpointCmdScaled decodes [C_SE_NB_1] or [C_SE_TB_1].
func (sf *ASDU) GetSetpointCmdScaled() SetpointCommandScaledInfo {
	var cmd SetpointCommandScaledInfo
	cmd.Ioa = sf.DecodeInfoObjAddr()
	cmd.Value = sf.DecodeScaled()
	cmd.Qos = ParseQualifierOfSetpointCmd(sf.DecodeByte())
	cmd.Time = sf.decodeCmdTimeTag(C_SE_NB_1, C_SE_TB_1)
	return cmd
}

// SetpointCommandFloatInfo is the short-float setpoint command message
// body.
type SetpointCommandFloatInfo struct {
	Ioa   InfoObjAddr
	Value float32
	Qos   QualifierOfSetpointCmd
	Time  time.Time
}

// SetpointCmdFloat sends [C_SE_NC_1] or [C_SE_TC_1], a short-float
// setpoint command over a single information object (SQ = 0).
func SetpointCmdFloat(c Connect, typeID TypeID, coa CauseOfTransmission, ca CommonAddr, cmd SetpointCommandFloatInfo) error {
	u, err := newCommandASDU(c, typeID, coa, ca, cmd.Ioa)
	if err != nil {
		return err
	}
	u.AppendFloat32(cmd.Value).AppendBytes(cmd.Qos.Value())
	if err := appendCmdTimeTag(u, typeID, C_SE_NC_1, C_SE_TC_1, cmd.Time); err != nil {
		return err
	}
	return c.Send(u)
}

// GetSetpointFloatCmd decodes [C_SE_NC_1] or [C_SE_TC_1].
func (sf *ASDU) GetSetpointFloatCmd() SetpointCommandFloatInfo {
	var cmd SetpointCommandFloatInfo
	cmd.Ioa = sf.DecodeInfoObjAddr()
	cmd.Value = sf.DecodeFloat32()
	cmd.Qos = ParseQualifierOfSetpointCmd(sf.DecodeByte())
	cmd.Time = sf.decodeCmdTimeTag(C_SE_NC_1, C_SE_TC_1)
	return cmd
}

// BitsString32CommandInfo is the 32-bit bitstring command message
// body.
type BitsString32CommandInfo struct {
	Ioa   InfoObjAddr
	Value uint32
	Time  time.Time
}

// BitsString32Cmd sends [C_BO_NA_1] or [C_BO_TA_1], a 32-bit bitstring
// command over a single information object (SQ = 0).
func BitsString32Cmd(c Connect, typeID TypeID, coa CauseOfTransmission, ca CommonAddr, cmd BitsString32CommandInfo) error {
	u, err := newCommandASDU(c, typeID, coa, ca, cmd.Ioa)
	if err != nil {
		return err
	}
	u.AppendBitsString32(cmd.Value)
	if err := appendCmdTimeTag(u, typeID, C_BO_NA_1, C_BO_TA_1, cmd.Time); err != nil {
		return err
	}
	return c.Send(u)
}

// GetBitsString32Cmd decodes [C_BO_NA_1] or [C_BO_TA_1].
func (sf *ASDU) GetBitsString32Cmd() BitsString32CommandInfo {
	var cmd BitsString32CommandInfo
	cmd.Ioa = sf.DecodeInfoObjAddr()
	cmd.Value = sf.DecodeBitsString32()
	cmd.Time = sf.decodeCmdTimeTag(C_BO_NA_1, C_BO_TA_1)
	return cmd
}
