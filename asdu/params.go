// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import "time"

// ASDUSizeMax is the largest ASDU payload an APDU can carry: the APDU
// length byte (§3) tops out at 253, of which 4 bytes are the I-frame
// control field, leaving 249 for the ASDU itself.
const ASDUSizeMax = 249

// Identifier is the 6-byte fixed portion of an ASDU header (§3):
// TypeID, VSQ, COT, originator address, and common address (COA).
type Identifier struct {
	Type       TypeID
	Variable   VariableStruct
	Coa        CauseOfTransmission
	OrigAddr   OriginAddr
	CommonAddr CommonAddr
}

// Params is the set of wire-format widths negotiated for a link. IEC
// 60870-5-104 always uses the "wide" profile: 2-byte COT (with
// originator address), 2-byte COA, 3-byte IOA.
type Params struct {
	CommonAddrSize  int
	CauseSize       int
	InfoObjAddrSize int
	InfoObjTimeZone *time.Location
}

// ParamsWide is the standard IEC 60870-5-104 parameter set.
var ParamsWide = &Params{
	CommonAddrSize:  2,
	CauseSize:       2,
	InfoObjAddrSize: 3,
	InfoObjTimeZone: time.UTC,
}

// Valid reports whether the configured widths are within the standard's
// allowed set.
func (sf *Params) Valid() error {
	if sf == nil {
		return ErrParam
	}
	if sf.CommonAddrSize != 1 && sf.CommonAddrSize != 2 {
		return ErrParam
	}
	if sf.CauseSize != 1 && sf.CauseSize != 2 {
		return ErrParam
	}
	if sf.InfoObjAddrSize < 1 || sf.InfoObjAddrSize > 3 {
		return ErrParam
	}
	if sf.InfoObjTimeZone == nil {
		sf.InfoObjTimeZone = time.UTC
	}
	return nil
}

// IdentifierSize returns the encoded size of the fixed ASDU header:
// TypeID(1) + VSQ(1) + COT(CauseSize) + COA(CommonAddrSize).
func (sf *Params) IdentifierSize() int {
	return 2 + sf.CauseSize + sf.CommonAddrSize
}

// Connect is the narrow interface the asdu package needs from a
// transport in order to build and send commands/measurements; satisfied
// by cs104.Client.
type Connect interface {
	Params() *Params
	Send(a *ASDU) error
}
