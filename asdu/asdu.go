// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

// ASDU (Application Service Data Unit) is one complete application-layer
// message: a fixed 6-byte identifier followed by a variable number of
// information objects. Encoding widths come from the embedded Params;
// header fields come from the embedded Identifier. Construction functions
// across this package (SingleCmd, InterrogationCmd, ...) build one of
// these, append encoded information objects through the Append* helpers
// in codec.go, and hand it to a Connect for sending. Decoding functions
// (GetSinglePoint, ...) consume infoObj front-to-back through the
// matching Decode* helpers.
type ASDU struct {
	*Params
	Identifier
	infoObj []byte
}

// NewASDU creates an empty ASDU ready to have information objects
// appended to it, using the given identifier.
func NewASDU(p *Params, identifier Identifier) *ASDU {
	return &ASDU{
		Params:     p,
		Identifier: identifier,
		infoObj:    make([]byte, 0, ASDUSizeMax),
	}
}

// NewEmptyASDU creates an ASDU with a zero Identifier, used as the
// decode target for UnmarshalBinary.
func NewEmptyASDU(p *Params) *ASDU {
	return &ASDU{Params: p}
}

// SetVariableNumber sets the VSQ element count. n must fit the 7-bit
// count field (0-127); IsSequence is left as previously set.
func (sf *ASDU) SetVariableNumber(n int) error {
	if n < 0 || n > 127 {
		return ErrParam
	}
	sf.Variable.Number = byte(n)
	return nil
}

// InfoObj returns the raw, not-yet-decoded information object bytes
// remaining after the fixed header.
func (sf *ASDU) InfoObj() []byte {
	return sf.infoObj
}

// String implements fmt.Stringer, rendering the ASDU header for logs.
func (sf *ASDU) String() string {
	return sf.Type.String() + " " + sf.Variable.String() + " " + sf.Coa.String()
}

// MarshalBinary encodes the ASDU per the widths in Params: TypeID(1) +
// VSQ(1) + COT(CauseSize, plus an originator-address byte when
// CauseSize is 2) + COA(CommonAddrSize, little-endian) + the already
// appended information object bytes.
func (sf *ASDU) MarshalBinary() ([]byte, error) {
	if err := sf.Params.Valid(); err != nil {
		return nil, err
	}

	raw := make([]byte, 0, sf.IdentifierSize()+len(sf.infoObj))
	raw = append(raw, byte(sf.Type), sf.Variable.Value())

	cot := sf.Coa.Value()
	switch sf.CauseSize {
	case 1:
		raw = append(raw, cot)
	case 2:
		raw = append(raw, cot, byte(sf.OrigAddr))
	default:
		return nil, ErrParam
	}

	switch sf.CommonAddrSize {
	case 1:
		if sf.CommonAddr > 255 {
			return nil, ErrParam
		}
		raw = append(raw, byte(sf.CommonAddr))
	case 2:
		raw = append(raw, byte(sf.CommonAddr), byte(sf.CommonAddr>>8))
	default:
		return nil, ErrParam
	}

	if len(raw)+len(sf.infoObj) > ASDUSizeMax {
		return nil, ErrLengthOutOfRange
	}
	raw = append(raw, sf.infoObj...)
	return raw, nil
}

// UnmarshalBinary decodes the fixed header and validates that the
// remaining bytes match exactly what the TypeID's information object
// layout and VSQ count predict; it never panics on malformed input.
func (sf *ASDU) UnmarshalBinary(raw []byte) error {
	if err := sf.Params.Valid(); err != nil {
		return err
	}
	if len(raw) < sf.IdentifierSize() {
		return ErrShortFrame
	}

	sf.Type = TypeID(raw[0])
	sf.Variable = ParseVariableStruct(raw[1])
	raw = raw[2:]

	switch sf.CauseSize {
	case 1:
		sf.Coa = ParseCauseOfTransmission(raw[0])
		sf.OrigAddr = 0
		raw = raw[1:]
	case 2:
		sf.Coa = ParseCauseOfTransmission(raw[0])
		sf.OrigAddr = OriginAddr(raw[1])
		raw = raw[2:]
	default:
		return ErrParam
	}

	switch sf.CommonAddrSize {
	case 1:
		sf.CommonAddr = CommonAddr(raw[0])
		raw = raw[1:]
	case 2:
		sf.CommonAddr = CommonAddr(raw[0]) | CommonAddr(raw[1])<<8
		raw = raw[2:]
	default:
		return ErrParam
	}

	objSize, err := GetInfoObjSize(sf.Type)
	if err != nil {
		return ErrTypeIdentifier
	}

	var want int
	if sf.Variable.IsSequence {
		want = sf.InfoObjAddrSize + int(sf.Variable.Number)*objSize
	} else {
		want = int(sf.Variable.Number) * (sf.InfoObjAddrSize + objSize)
	}
	switch {
	case len(raw) < want:
		return ErrTruncated
	case len(raw) > want:
		return ErrBadLength
	}

	if kind := timeTagLayouts[sf.Type]; kind != noTimeTag {
		if err := validateTimeTags(raw, sf.Variable, sf.InfoObjAddrSize, objSize, kind); err != nil {
			return err
		}
	}

	sf.infoObj = raw
	return nil
}

// timeTagKind names which trailing time-tag field, if any, a time-tagged
// TypeID carries at the end of each fixed-size information object.
type timeTagKind int

const (
	noTimeTag timeTagKind = iota
	cp24Trailer
	cp56Trailer
)

// timeTagLayouts lists every TypeID whose information object ends in a
// plain CP24Time2a or CP56Time2a field, so UnmarshalBinary can reject
// an out-of-range subfield (e.g. minute=60) up front with
// ErrBadTimestamp instead of deferring to whichever Get* decoder the
// caller happens to invoke, which would otherwise silently return the
// zero time.Time. Protection-equipment types (M_EP_*) interleave a
// CP16Time2a relay-operating-time field ahead of the trailing time tag
// and are deliberately left out: their layout isn't "value then time
// tag" and validating them needs the companion standard's subclause
// 7.3.1.16-19 field order, not this generic trailer check.
var timeTagLayouts = map[TypeID]timeTagKind{
	M_SP_TA_1: cp24Trailer, M_DP_TA_1: cp24Trailer, M_ST_TA_1: cp24Trailer,
	M_BO_TA_1: cp24Trailer, M_ME_TA_1: cp24Trailer, M_ME_TB_1: cp24Trailer,
	M_ME_TC_1: cp24Trailer, M_IT_TA_1: cp24Trailer,

	M_SP_TB_1: cp56Trailer, M_DP_TB_1: cp56Trailer, M_ST_TB_1: cp56Trailer,
	M_BO_TB_1: cp56Trailer, M_ME_TD_1: cp56Trailer, M_ME_TE_1: cp56Trailer,
	M_ME_TF_1: cp56Trailer, M_IT_TB_1: cp56Trailer,
	C_SC_TA_1: cp56Trailer, C_DC_TA_1: cp56Trailer, C_RC_TA_1: cp56Trailer,
	C_SE_TA_1: cp56Trailer, C_SE_TB_1: cp56Trailer, C_SE_TC_1: cp56Trailer,
	C_BO_TA_1: cp56Trailer, C_TS_TA_1: cp56Trailer,
}

// validateTimeTags checks the trailing time tag of every information
// object raw holds, per the VSQ's sequence/non-sequence layout
// (mirroring the "want" arithmetic above it in UnmarshalBinary).
func validateTimeTags(raw []byte, vsq VariableStruct, addrSize, objSize int, kind timeTagKind) error {
	width := 3
	if kind == cp56Trailer {
		width = 7
	}

	valid := validCP24Fields
	if kind == cp56Trailer {
		valid = validCP56Fields
	}

	n := int(vsq.Number)
	pos := 0
	if vsq.IsSequence {
		pos = addrSize
	}
	for i := 0; i < n; i++ {
		if !vsq.IsSequence {
			pos += addrSize
		}
		if !valid(raw[pos+objSize-width : pos+objSize]) {
			return ErrBadTimestamp
		}
		pos += objSize
	}
	return nil
}
