// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"strconv"
)

// Identifier fields: TypeID, VariableStruct (VSQ), CauseOfTransmission
// (COT), OriginAddr, and CommonAddr (COA). Together these form the
// fixed 6 (or 4, in the narrow profile) leading bytes of every ASDU;
// see Identifier in params.go for the struct that groups them.

// TypeID names one of the 127 standard ASDU type identifications.
// See companion standard 101, subclass 7.2.1.
type TypeID uint8

// The TypeID space is carved into five bands. M_xxx identifiers report
// process data toward the master; C_xxx identifiers carry commands
// toward the outstation; the S_xxx band covers the companion security
// extension; P_xxx carries parameter loading; F_xxx is file transfer.
//
//	<0>        unused
//	<1..127>   standard, interoperable across vendors
//	<128..135> reserved for routed packets (private)
//	<136..255> special application, vendor-specific
//
// A type with and without a trailing time tag gets its own identifier
// rather than a flag, which is why the monitoring band below has two
// runs (1-21 untagged/CP24Time2a, 30-41 CP56Time2a) instead of one.
const (
	_ TypeID = iota // 0: not defined

	// Monitoring direction, process information <1..44>
	M_SP_NA_1 // 1: single-point information
	M_SP_TA_1 // 2: single-point information with time tag
	M_DP_NA_1 // 3: double-point information
	M_DP_TA_1 // 4: double-point information with time tag
	M_ST_NA_1 // 5: step position information
	M_ST_TA_1 // 6: step position information with time tag
	M_BO_NA_1 // 7: bitstring of 32 bit
	M_BO_TA_1 // 8: bitstring of 32 bit with time tag
	M_ME_NA_1 // 9: measured value, normalized value
	M_ME_TA_1 // 10: measured value, normalized value with time tag
	M_ME_NB_1 // 11: measured value, scaled value
	M_ME_TB_1 // 12: measured value, scaled value with time tag
	M_ME_NC_1 // 13: measured value, short floating point number
	M_ME_TC_1 // 14: measured value, short floating point number with time tag
	M_IT_NA_1 // 15: integrated totals
	M_IT_TA_1 // 16: integrated totals with time tag
	M_EP_TA_1 // 17: event of protection equipment with time tag
	M_EP_TB_1 // 18: packed start events of protection equipment with time tag
	M_EP_TC_1 // 19: packed output circuit information of protection equipment with time tag
	M_PS_NA_1 // 20: packed single-point information with status change detection
	M_ME_ND_1 // 21: measured value, normalized value without quality descriptor
	_         // 22: reserved
	_         // 23: reserved
	_         // 24: reserved
	_         // 25: reserved
	_         // 26: reserved
	_         // 27: reserved
	_         // 28: reserved
	_         // 29: reserved
	M_SP_TB_1 // 30: single-point information with CP56Time2a
	M_DP_TB_1 // 31: double-point information with CP56Time2a
	M_ST_TB_1 // 32: step position information with CP56Time2a
	M_BO_TB_1 // 33: bitstring of 32 bits with CP56Time2a
	M_ME_TD_1 // 34: measured value, normalized value with CP56Time2a
	M_ME_TE_1 // 35: measured value, scaled value with CP56Time2a
	M_ME_TF_1 // 36: measured value, short floating point number with CP56Time2a
	M_IT_TB_1 // 37: integrated totals with CP56Time2a
	M_EP_TD_1 // 38: event of protection equipment with CP56Time2a
	M_EP_TE_1 // 39: packed start events of protection equipment with CP56Time2a
	M_EP_TF_1 // 40: packed output circuit information of protection equipment with CP56Time2a
	S_IT_TC_1 // 41: integrated totals containing time-tagged security statistics
	_         // 42: reserved
	_         // 43: reserved
	_         // 44: reserved

	// Control direction, commands <45..69>
	C_SC_NA_1 // 45: single command
	C_DC_NA_1 // 46: double command
	C_RC_NA_1 // 47: regulating step command
	C_SE_NA_1 // 48: set-point command, normalized value
	C_SE_NB_1 // 49: set-point command, scaled value
	C_SE_NC_1 // 50: set-point command, short floating point number
	C_BO_NA_1 // 51: bitstring of 32 bits
	_         // 52: reserved
	_         // 53: reserved
	_         // 54: reserved
	_         // 55: reserved
	_         // 56: reserved
	_         // 57: reserved
	C_SC_TA_1 // 58: single command with CP56Time2a
	C_DC_TA_1 // 59: double command with CP56Time2a
	C_RC_TA_1 // 60: regulating step command with CP56Time2a
	C_SE_TA_1 // 61: set-point command with CP56Time2a, normalized value
	C_SE_TB_1 // 62: set-point command with CP56Time2a, scaled value
	C_SE_TC_1 // 63: set-point command with CP56Time2a, short floating point number
	C_BO_TA_1 // 64: bitstring of 32-bit with CP56Time2a
	_         // 65: reserved
	_         // 66: reserved
	_         // 67: reserved
	_         // 68: reserved
	_         // 69: reserved

	// Monitoring direction, system information and the companion
	// security extension <70..99>
	M_EI_NA_1 // 70: end of initialization
	_         // 71: reserved
	_         // 72: reserved
	_         // 73: reserved
	_         // 74: reserved
	_         // 75: reserved
	_         // 76: reserved
	_         // 77: reserved
	_         // 78: reserved
	_         // 79: reserved
	_         // 80: reserved
	S_CH_NA_1 // 81: authentication challenge
	S_RP_NA_1 // 82: authentication reply
	S_AR_NA_1 // 83: aggressive mode authentication request
	S_KR_NA_1 // 84: session key status request
	S_KS_NA_1 // 85: session key status
	S_KC_NA_1 // 86: session key change
	S_ER_NA_1 // 87: authentication error
	_         // 88: reserved
	_         // 89: reserved
	S_US_NA_1 // 90: user status change
	S_UQ_NA_1 // 91: update key change request
	S_UR_NA_1 // 92: update key change reply
	S_UK_NA_1 // 93: update key change, symmetric
	S_UA_NA_1 // 94: update key change, asymmetric
	S_UC_NA_1 // 95: update key change confirmation
	_         // 96: reserved
	_         // 97: reserved
	_         // 98: reserved
	_         // 99: reserved

	// Control direction, system commands <100..109>
	C_IC_NA_1 // 100: interrogation command
	C_CI_NA_1 // 101: counter interrogation command
	C_RD_NA_1 // 102: read command
	C_CS_NA_1 // 103: clock synchronization command
	C_TS_NA_1 // 104: test command
	C_RP_NA_1 // 105: reset process command
	C_CD_NA_1 // 106: delay acquisition command
	C_TS_TA_1 // 107: test command with CP56Time2a
	_         // 108: reserved
	_         // 109: reserved

	// Control direction, parameter loading <110..119>
	P_ME_NA_1 // 110: parameter of measured value, normalized value
	P_ME_NB_1 // 111: parameter of measured value, scaled value
	P_ME_NC_1 // 112: parameter of measured value, short floating point number
	P_AC_NA_1 // 113: parameter activation
	_         // 114: reserved
	_         // 115: reserved
	_         // 116: reserved
	_         // 117: reserved
	_         // 118: reserved
	_         // 119: reserved

	// File transfer <120..127>
	F_FR_NA_1 // 120: file ready
	F_SR_NA_1 // 121: section ready
	F_SC_NA_1 // 122: call directory, select file, call file, call section
	F_LS_NA_1 // 123: last section, last segment
	F_AF_NA_1 // 124: ack file, ack section
	F_SG_NA_1 // 125: segment
	F_DR_TA_1 // 126: directory
	F_SC_NB_1 // 127: query log, request archive file (companion 104)
)

// typeIDDescriptor pairs a TypeID's canonical name with the octet size
// of one serialized information object of that type, so String() and
// GetInfoObjSize() share a single source of truth instead of keeping
// a name table and a size table in sync by hand. A TypeID with no
// entry (among them F_SG_NA_1, whose object is variable length) is
// rejected by GetInfoObjSize; a zero size is returned as is.
type typeIDDescriptor struct {
	name string
	size int
}

var typeIDTable = map[TypeID]typeIDDescriptor{
	M_SP_NA_1: {"M_SP_NA_1", 1},
	M_SP_TA_1: {"M_SP_TA_1", 4},
	M_DP_NA_1: {"M_DP_NA_1", 1},
	M_DP_TA_1: {"M_DP_TA_1", 4},
	M_ST_NA_1: {"M_ST_NA_1", 2},
	M_ST_TA_1: {"M_ST_TA_1", 5},
	M_BO_NA_1: {"M_BO_NA_1", 5},
	M_BO_TA_1: {"M_BO_TA_1", 8},
	M_ME_NA_1: {"M_ME_NA_1", 3},
	M_ME_TA_1: {"M_ME_TA_1", 6},
	M_ME_NB_1: {"M_ME_NB_1", 3},
	M_ME_TB_1: {"M_ME_TB_1", 6},
	M_ME_NC_1: {"M_ME_NC_1", 5},
	M_ME_TC_1: {"M_ME_TC_1", 8},
	M_IT_NA_1: {"M_IT_NA_1", 5},
	M_IT_TA_1: {"M_IT_TA_1", 8},
	M_EP_TA_1: {"M_EP_TA_1", 6},
	M_EP_TB_1: {"M_EP_TB_1", 7},
	M_EP_TC_1: {"M_EP_TC_1", 7},
	M_PS_NA_1: {"M_PS_NA_1", 5},
	M_ME_ND_1: {"M_ME_ND_1", 2},

	M_SP_TB_1: {"M_SP_TB_1", 8},
	M_DP_TB_1: {"M_DP_TB_1", 8},
	M_ST_TB_1: {"M_ST_TB_1", 9},
	M_BO_TB_1: {"M_BO_TB_1", 12},
	M_ME_TD_1: {"M_ME_TD_1", 10},
	M_ME_TE_1: {"M_ME_TE_1", 10},
	M_ME_TF_1: {"M_ME_TF_1", 12},
	M_IT_TB_1: {"M_IT_TB_1", 12},
	M_EP_TD_1: {"M_EP_TD_1", 11},
	M_EP_TE_1: {"M_EP_TE_1", 11},
	M_EP_TF_1: {"M_EP_TF_1", 11},
	S_IT_TC_1: {"S_IT_TC_1", 12},

	C_SC_NA_1: {"C_SC_NA_1", 1},
	C_DC_NA_1: {"C_DC_NA_1", 1},
	C_RC_NA_1: {"C_RC_NA_1", 1},
	C_SE_NA_1: {"C_SE_NA_1", 3},
	C_SE_NB_1: {"C_SE_NB_1", 3},
	C_SE_NC_1: {"C_SE_NC_1", 5},
	C_BO_NA_1: {"C_BO_NA_1", 4},
	C_SC_TA_1: {"C_SC_TA_1", 8},
	C_DC_TA_1: {"C_DC_TA_1", 8},
	C_RC_TA_1: {"C_RC_TA_1", 8},
	C_SE_TA_1: {"C_SE_TA_1", 10},
	C_SE_TB_1: {"C_SE_TB_1", 10},
	C_SE_TC_1: {"C_SE_TC_1", 12},
	C_BO_TA_1: {"C_BO_TA_1", 11},

	M_EI_NA_1: {"M_EI_NA_1", 1},

	S_CH_NA_1: {"S_CH_NA_1", 0},
	S_RP_NA_1: {"S_RP_NA_1", 0},
	S_AR_NA_1: {"S_AR_NA_1", 0},
	S_KR_NA_1: {"S_KR_NA_1", 0},
	S_KS_NA_1: {"S_KS_NA_1", 0},
	S_KC_NA_1: {"S_KC_NA_1", 0},
	S_ER_NA_1: {"S_ER_NA_1", 0},
	S_US_NA_1: {"S_US_NA_1", 0},
	S_UQ_NA_1: {"S_UQ_NA_1", 0},
	S_UR_NA_1: {"S_UR_NA_1", 0},
	S_UK_NA_1: {"S_UK_NA_1", 0},
	S_UA_NA_1: {"S_UA_NA_1", 0},
	S_UC_NA_1: {"S_UC_NA_1", 0},

	C_IC_NA_1: {"C_IC_NA_1", 1},
	C_CI_NA_1: {"C_CI_NA_1", 1},
	C_RD_NA_1: {"C_RD_NA_1", 0},
	C_CS_NA_1: {"C_CS_NA_1", 7},
	C_TS_NA_1: {"C_TS_NA_1", 2},
	C_RP_NA_1: {"C_RP_NA_1", 1},
	C_CD_NA_1: {"C_CD_NA_1", 2},
	C_TS_TA_1: {"C_TS_TA_1", 9},

	P_ME_NA_1: {"P_ME_NA_1", 3},
	P_ME_NB_1: {"P_ME_NB_1", 3},
	P_ME_NC_1: {"P_ME_NC_1", 5},
	P_AC_NA_1: {"P_AC_NA_1", 1},

	F_FR_NA_1: {"F_FR_NA_1", 6},
	F_SR_NA_1: {"F_SR_NA_1", 7},
	F_SC_NA_1: {"F_SC_NA_1", 4},
	F_LS_NA_1: {"F_LS_NA_1", 5},
	F_AF_NA_1: {"F_AF_NA_1", 4},
	// F_SG_NA_1 carries a variable-length segment and has no fixed
	// per-object size, so it is deliberately absent from this table;
	// GetInfoObjSize rejects it like any other unregistered TypeID.
	F_DR_TA_1: {"F_DR_TA_1", 13},
}

// GetInfoObjSize returns the encoded size, in bytes, of one information
// object of the given TypeID. Extensions must register an entry in
// typeIDTable.
func GetInfoObjSize(id TypeID) (int, error) {
	d, exists := typeIDTable[id]
	if !exists {
		return 0, ErrTypeIdentifier
	}
	return d.size, nil
}

func (t TypeID) String() string {
	if d, ok := typeIDTable[t]; ok {
		return "TID<" + d.name + ">"
	}
	return "TID<" + strconv.FormatInt(int64(t), 10) + ">"
}

// VariableStruct is the variable structure qualifier (VSQ): an object
// count in the low 7 bits plus a structure flag in the top bit.
// See companion standard 101, subclass 7.2.2.
//
// When IsSequence is false the payload is N (address, element) pairs,
// each carrying its own information object address. When true, a
// single leading address is followed by N consecutive elements implied
// to occupy consecutive addresses.
type VariableStruct struct {
	Number     byte
	IsSequence bool
}

// ParseVariableStruct decodes a VSQ byte.
func ParseVariableStruct(b byte) VariableStruct {
	return VariableStruct{
		Number:     b & 0x7f,
		IsSequence: b&0x80 != 0,
	}
}

// Value encodes the VSQ back to its wire byte.
func (v VariableStruct) Value() byte {
	if v.IsSequence {
		return v.Number | 0x80
	}
	return v.Number
}

func (v VariableStruct) String() string {
	if v.IsSequence {
		return "VSQ<sq," + strconv.Itoa(int(v.Number)) + ">"
	}
	return "VSQ<" + strconv.Itoa(int(v.Number)) + ">"
}

// CauseOfTransmission (COT) says why an ASDU was sent: a free-running
// scan, a reply to a request, a command confirmation, and so on. See
// companion standard 101, subclass 7.2.3.
//
//	bit7  bit6  bit5..bit0
//	 T    P/N    cause
//
// T marks a test frame; P/N marks a negative (1) confirmation of an
// activation the local station requested.
type CauseOfTransmission struct {
	IsTest     bool
	IsNegative bool
	Cause      Cause
}

// OriginAddr is the originator address carried alongside the cause
// when Params.CauseSize is 2 (the IEC 60870-5-104 default). 0 means
// unused; 1-255 identify the station that originated the activation
// being confirmed or terminated.
type OriginAddr byte

// Cause is the 6-bit transmission-reason code inside a
// CauseOfTransmission. <1..47> are standard; <48..63> are reserved for
// vendor-specific use.
type Cause byte

// The standard cause values, grouped by what kind of exchange they
// belong to: unsolicited reporting, the activation/confirmation/
// termination triplet used by every command and by interrogation,
// station/group interrogation replies, counter-freeze replies, and the
// four "rejected because ..." causes an outstation sends back instead
// of ever executing a malformed request.
const (
	Unused                Cause = iota // 0: unused
	Periodic                           // 1: periodic, cyclic
	Background                         // 2: background scan
	Spontaneous                        // 3: spontaneous
	Initialized                        // 4: initialized
	Request                            // 5: request or requested
	Activation                         // 6: activation
	ActivationCon                      // 7: activation confirmation
	Deactivation                       // 8: deactivation
	DeactivationCon                    // 9: deactivation confirmation
	ActivationTerm                     // 10: activation termination
	ReturnInfoRemote                   // 11: return information caused by a remote command
	ReturnInfoLocal                    // 12: return information caused by a local command
	FileTransfer                       // 13: file transfer
	Authentication                     // 14: authentication
	SessionKey                         // 15: maintenance of authentication session key
	UserRoleAndUpdateKey               // 16: maintenance of user role and update key
	_                                  // 17: reserved
	_                                  // 18: reserved
	_                                  // 19: reserved
	InterrogatedByStation              // 20: interrogated by station interrogation
	InterrogatedByGroup1               // 21: interrogated by group 1 interrogation
	InterrogatedByGroup2               // 22: interrogated by group 2 interrogation
	InterrogatedByGroup3               // 23: interrogated by group 3 interrogation
	InterrogatedByGroup4               // 24: interrogated by group 4 interrogation
	InterrogatedByGroup5               // 25: interrogated by group 5 interrogation
	InterrogatedByGroup6               // 26: interrogated by group 6 interrogation
	InterrogatedByGroup7               // 27: interrogated by group 7 interrogation
	InterrogatedByGroup8               // 28: interrogated by group 8 interrogation
	InterrogatedByGroup9               // 29: interrogated by group 9 interrogation
	InterrogatedByGroup10              // 30: interrogated by group 10 interrogation
	InterrogatedByGroup11              // 31: interrogated by group 11 interrogation
	InterrogatedByGroup12              // 32: interrogated by group 12 interrogation
	InterrogatedByGroup13              // 33: interrogated by group 13 interrogation
	InterrogatedByGroup14              // 34: interrogated by group 14 interrogation
	InterrogatedByGroup15              // 35: interrogated by group 15 interrogation
	InterrogatedByGroup16              // 36: interrogated by group 16 interrogation
	RequestByGeneralCounter            // 37: requested by general counter request
	RequestByGroup1Counter             // 38: requested by group 1 counter request
	RequestByGroup2Counter             // 39: requested by group 2 counter request
	RequestByGroup3Counter             // 40: requested by group 3 counter request
	RequestByGroup4Counter             // 41: requested by group 4 counter request
	_                                  // 42: reserved
	_                                  // 43: reserved
	UnknownTypeID                      // 44: unknown type identification
	UnknownCOT                         // 45: unknown cause of transmission
	UnknownCA                          // 46: unknown common address of ASDU
	UnknownIOA                         // 47: unknown information object address
)

// causeName renders a Cause for logs without keeping a second table in
// lockstep with the const block above: named causes fall through to
// their declared constant name by way of causeNames, anything in the
// standard's reserved or vendor-private ranges prints as a number.
var causeNames = map[Cause]string{
	Unused: "Unused", Periodic: "Periodic", Background: "Background",
	Spontaneous: "Spontaneous", Initialized: "Initialized", Request: "Request",
	Activation: "Activation", ActivationCon: "ActivationCon",
	Deactivation: "Deactivation", DeactivationCon: "DeactivationCon",
	ActivationTerm: "ActivationTerm", ReturnInfoRemote: "ReturnInfoRemote",
	ReturnInfoLocal: "ReturnInfoLocal", FileTransfer: "FileTransfer",
	Authentication: "Authentication", SessionKey: "SessionKey",
	UserRoleAndUpdateKey: "UserRoleAndUpdateKey",
	InterrogatedByStation: "InterrogatedByStation", InterrogatedByGroup1: "InterrogatedByGroup1",
	InterrogatedByGroup2: "InterrogatedByGroup2", InterrogatedByGroup3: "InterrogatedByGroup3",
	InterrogatedByGroup4: "InterrogatedByGroup4", InterrogatedByGroup5: "InterrogatedByGroup5",
	InterrogatedByGroup6: "InterrogatedByGroup6", InterrogatedByGroup7: "InterrogatedByGroup7",
	InterrogatedByGroup8: "InterrogatedByGroup8", InterrogatedByGroup9: "InterrogatedByGroup9",
	InterrogatedByGroup10: "InterrogatedByGroup10", InterrogatedByGroup11: "InterrogatedByGroup11",
	InterrogatedByGroup12: "InterrogatedByGroup12", InterrogatedByGroup13: "InterrogatedByGroup13",
	InterrogatedByGroup14: "InterrogatedByGroup14", InterrogatedByGroup15: "InterrogatedByGroup15",
	InterrogatedByGroup16:   "InterrogatedByGroup16",
	RequestByGeneralCounter: "RequestByGeneralCounter", RequestByGroup1Counter: "RequestByGroup1Counter",
	RequestByGroup2Counter: "RequestByGroup2Counter", RequestByGroup3Counter: "RequestByGroup3Counter",
	RequestByGroup4Counter: "RequestByGroup4Counter",
	UnknownTypeID:          "UnknownTypeID", UnknownCOT: "UnknownCOT",
	UnknownCA: "UnknownCA", UnknownIOA: "UnknownIOA",
}

func (c Cause) String() string {
	if name, ok := causeNames[c]; ok {
		return name
	}
	return strconv.Itoa(int(c))
}

// ParseCauseOfTransmission decodes a COT byte.
func ParseCauseOfTransmission(b byte) CauseOfTransmission {
	return CauseOfTransmission{
		IsTest:     b&0x80 != 0,
		IsNegative: b&0x40 != 0,
		Cause:      Cause(b & 0x3f),
	}
}

// Value encodes the COT back to its wire byte.
func (c CauseOfTransmission) Value() byte {
	v := byte(c.Cause)
	if c.IsNegative {
		v |= 0x40
	}
	if c.IsTest {
		v |= 0x80
	}
	return v
}

func (c CauseOfTransmission) String() string {
	s := "COT<" + c.Cause.String()
	switch {
	case c.IsNegative && c.IsTest:
		s += ",neg,test"
	case c.IsNegative:
		s += ",neg"
	case c.IsTest:
		s += ",test"
	}
	return s + ">"
}

// CommonAddr (COA) names the outstation (or group of outstations) an
// ASDU addresses. Its width is Params.CommonAddrSize.
//
//	width 1: <0> unused, <1..254> station, <255> global
//	width 2: <0> unused, <1..65534> station, <65535> global
type CommonAddr uint16

const (
	// InvalidCommonAddr marks an unset/unused common address.
	InvalidCommonAddr CommonAddr = 0
	// GlobalCommonAddr addresses every outstation on the link at
	// once. Only C_IC_NA_1, C_CI_NA_1, C_CS_NA_1 and C_RP_NA_1 may
	// target it.
	GlobalCommonAddr CommonAddr = 65535
)
