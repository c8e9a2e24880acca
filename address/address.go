// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package address parses and formats the COA.IOA.TypeID addressing
// scheme used to name a single data point (or the general
// interrogation pseudo-point) across the rest of this module, mirroring
// the narrow, single-concrete-type style the asdu package uses for its
// own identifiers.
package address

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gridedge/iec104master/asdu"
)

// Errors returned by Parse and the New* constructors.
var (
	ErrInvalidAddress = errors.New("address: could not parse COA.IOA.TypeID")
	ErrOutOfRange     = errors.New("address: field outside its valid range")
)

// Category classifies a TypeID into the three ranges the rest of the
// module cares about: whether an incoming ASDU carries a measurement,
// an outgoing ASDU carries a command, or the TypeID is a system
// control/monitoring type such as interrogation.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryMonitoring
	CategoryControl
	CategorySystem
)

func (c Category) String() string {
	switch c {
	case CategoryMonitoring:
		return "monitoring"
	case CategoryControl:
		return "control"
	case CategorySystem:
		return "system"
	default:
		return "unknown"
	}
}

// ClassifyTypeID resolves the Open Question left by the source's
// overlapping IsMeasurementTypeID/IsCommandTypeID checks: monitoring is
// 1..40, control is 45..69, system is 100..113, with no overlap.
func ClassifyTypeID(t asdu.TypeID) Category {
	switch {
	case t >= 1 && t <= 40:
		return CategoryMonitoring
	case t >= 45 && t <= 69:
		return CategoryControl
	case t >= 100 && t <= 113:
		return CategorySystem
	default:
		return CategoryUnknown
	}
}

// defaultTypeID is used when a relaxed address form omits the TypeID:
// 13 (M_ME_NC_1, short-floating-point measurement).
const defaultTypeID asdu.TypeID = 13

// defaultCOA is used when a relaxed address form omits the COA.
const defaultCOA = 1

const (
	minCOA = 1
	maxCOA = 65534
	minIOA = 1
	maxIOA = 16777215
)

// IEC104Address names one data point: the outstation (COA), the point
// within it (IOA), and the ASDU TypeID that governs how its value is
// encoded. It is the only address type in this module — the source's
// polymorphic Address hierarchy collapses to this single struct.
type IEC104Address struct {
	COA    uint16
	IOA    uint32
	TypeID asdu.TypeID
}

// Category classifies the address's TypeID.
func (a IEC104Address) Category() Category {
	return ClassifyTypeID(a.TypeID)
}

// String formats the address back into COA.IOA.TypeID form.
func (a IEC104Address) String() string {
	return strconv.Itoa(int(a.COA)) + "." + strconv.Itoa(int(a.IOA)) + "." + strconv.Itoa(int(a.TypeID))
}

func validate(coa uint16, ioa uint32, typeID asdu.TypeID) (IEC104Address, error) {
	if coa < minCOA || coa > maxCOA {
		return IEC104Address{}, ErrOutOfRange
	}
	if ioa < minIOA || ioa > maxIOA {
		return IEC104Address{}, ErrOutOfRange
	}
	return IEC104Address{COA: coa, IOA: ioa, TypeID: typeID}, nil
}

// New validates and builds an address from already-parsed fields.
func New(coa uint16, ioa uint32, typeID asdu.TypeID) (IEC104Address, error) {
	return validate(coa, ioa, typeID)
}

// Parse accepts three forms:
//
//   - "a.b.c"  -> COA=a, IOA=b, TypeID=c
//   - "a.b"    -> if b is a recognized TypeID, IOA=a, TypeID=b, COA=defaultCOA;
//     otherwise COA=a, IOA=b, TypeID=defaultTypeID
//   - "a"      -> IOA=a, COA=defaultCOA, TypeID=defaultTypeID
//
// Hexadecimal is not accepted; fields are decimal only.
func Parse(s string) (IEC104Address, error) {
	parts := strings.Split(s, ".")
	switch len(parts) {
	case 1:
		ioa, err := parseUint(parts[0], 32)
		if err != nil {
			return IEC104Address{}, ErrInvalidAddress
		}
		return validate(defaultCOA, uint32(ioa), defaultTypeID)

	case 2:
		first, err := parseUint(parts[0], 32)
		if err != nil {
			return IEC104Address{}, ErrInvalidAddress
		}
		second, err := parseUint(parts[1], 32)
		if err != nil {
			return IEC104Address{}, ErrInvalidAddress
		}
		if second <= 255 {
			if _, err := asdu.GetInfoObjSize(asdu.TypeID(second)); err == nil {
				return validate(defaultCOA, uint32(first), asdu.TypeID(second))
			}
		}
		if first > maxCOA {
			return IEC104Address{}, ErrOutOfRange
		}
		return validate(uint16(first), uint32(second), defaultTypeID)

	case 3:
		coa, err := parseUint(parts[0], 16)
		if err != nil {
			return IEC104Address{}, ErrInvalidAddress
		}
		ioa, err := parseUint(parts[1], 32)
		if err != nil {
			return IEC104Address{}, ErrInvalidAddress
		}
		typeID, err := parseUint(parts[2], 8)
		if err != nil {
			return IEC104Address{}, ErrInvalidAddress
		}
		return validate(uint16(coa), uint32(ioa), asdu.TypeID(typeID))

	default:
		return IEC104Address{}, ErrInvalidAddress
	}
}

func parseUint(s string, bits int) (uint64, error) {
	if s == "" {
		return 0, ErrInvalidAddress
	}
	return strconv.ParseUint(s, 10, bits)
}

// GeneralInterrogation returns the pseudo-address used to request a
// station-wide interrogation of coa: IOA=0 (information-object address
// is irrelevant for this TypeID), TypeID=C_IC_NA_1.
func GeneralInterrogation(coa uint16) (IEC104Address, error) {
	if coa < minCOA || coa > maxCOA {
		return IEC104Address{}, ErrOutOfRange
	}
	return IEC104Address{COA: coa, IOA: 0, TypeID: asdu.C_IC_NA_1}, nil
}

// ForMeasurement builds an address for a monitoring point, defaulting
// to the short-floating-point TypeID when none is given.
func ForMeasurement(coa uint16, ioa uint32, typeID asdu.TypeID) (IEC104Address, error) {
	if typeID == 0 {
		typeID = defaultTypeID
	}
	return validate(coa, ioa, typeID)
}

// ForCommand builds an address for a control point.
func ForCommand(coa uint16, ioa uint32, typeID asdu.TypeID) (IEC104Address, error) {
	return validate(coa, ioa, typeID)
}
