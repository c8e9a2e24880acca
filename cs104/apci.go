// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs104

import (
	"fmt"

	"github.com/gridedge/iec104master/asdu"
)

const startFrame byte = 0x68 // APDU start character

// APDU layout, 255 bytes max:
//
//	| start |  length  |        control field        |   ASDU   |
//	|   1   |    1     |             4                |          |
//	                    \----------- apduFieldSizeMax ----------/
const (
	apciCtrlFieldSize = 4 // the 4 control-field bytes following the length byte

	apduSizeMax      = 255
	apduFieldSizeMax = apciCtrlFieldSize + asdu.ASDUSizeMax
)

// U-frame control field function bits. Exactly one of each pair is
// ever set in a given U-frame; STARTDT/STOPDT/TESTFR each get their
// own activation and confirmation bit rather than sharing a direction
// bit, so a garbled frame can't be misread as the opposite function.
const (
	uStartDtActive  byte = 1 << (iota + 2) // 0x04
	uStartDtConfirm                        // 0x08
	uStopDtActive                          // 0x10
	uStopDtConfirm                         // 0x20
	uTestFrActive                          // 0x40
	uTestFrConfirm                         // 0x80
)

var uFunctionNames = map[byte]string{
	uStartDtActive:  "StartDtActive",
	uStartDtConfirm: "StartDtConfirm",
	uStopDtActive:   "StopDtActive",
	uStopDtConfirm:  "StopDtConfirm",
	uTestFrActive:   "TestFrActive",
	uTestFrConfirm:  "TestFrConfirm",
}

// iAPCI is a numbered I-frame's control-field sequence numbers: the
// frame's own send count and the highest receive count the sender has
// acknowledged so far. Each is a 15-bit counter packed into 2 bytes.
type iAPCI struct {
	sendSN, rcvSN uint16
}

func (i iAPCI) String() string {
	return fmt.Sprintf("I[sendNO: %d, recvNO: %d]", i.sendSN, i.rcvSN)
}

// sAPCI is an unnumbered supervisory frame: a bare acknowledgment of
// received I-frames, carrying no payload of its own.
type sAPCI struct {
	rcvSN uint16
}

func (s sAPCI) String() string {
	return fmt.Sprintf("S[recvNO: %d]", s.rcvSN)
}

// uAPCI is an unnumbered control frame: STARTDT/STOPDT/TESTFR and
// their confirmations, used to bring the link up, tear it down, or
// keep it alive.
type uAPCI struct {
	function byte
}

func (u uAPCI) String() string {
	name, ok := uFunctionNames[u.function]
	if !ok {
		name = "Unknown"
	}
	return fmt.Sprintf("U[function: %s]", name)
}

// newIFrame packs an I-frame APDU: start byte, length, the two
// sequence numbers each split low-bit-shifted across 2 bytes per
// companion standard 104 subclass 4.4, then the ASDU payload.
func newIFrame(sendSN, rcvSN uint16, payload []byte) ([]byte, error) {
	if len(payload) > asdu.ASDUSizeMax {
		return nil, fmt.Errorf("ASDU filed large than max %d", asdu.ASDUSizeMax)
	}

	b := make([]byte, len(payload)+6)
	b[0] = startFrame
	b[1] = byte(len(payload) + 4)
	b[2] = byte(sendSN << 1)
	b[3] = byte(sendSN >> 7)
	b[4] = byte(rcvSN << 1)
	b[5] = byte(rcvSN >> 7)
	copy(b[6:], payload)
	return b, nil
}

// newSFrame packs a bare acknowledgment of rcvSN received I-frames.
func newSFrame(rcvSN uint16) []byte {
	return []byte{startFrame, 4, 0x01, 0x00, byte(rcvSN << 1), byte(rcvSN >> 7)}
}

// newUFrame packs a U-frame carrying exactly one function bit, plus
// the fixed 0x03 low bits that mark every U-frame's control field.
func newUFrame(function byte) []byte {
	return []byte{startFrame, 4, function | 0x03, 0x00, 0x00, 0x00}
}

// apci holds the 6 leading bytes common to every APDU before it's
// classified into an iAPCI, sAPCI, or uAPCI by the low bits of ctrl0.
type apci struct {
	start                      byte
	length                     byte
	ctrl0, ctrl1, ctrl2, ctrl3 byte
}

// kind reports which of the three frame types ctrl0's low bits select.
// Companion standard 104 subclass 4.4: bit0 clear means I-frame
// regardless of the other bits; bit0 set and bit1 clear means
// S-frame; both set means U-frame.
func (a apci) kind() interface{} {
	switch {
	case a.ctrl0&0x01 == 0:
		return iAPCI{
			sendSN: uint16(a.ctrl0)>>1 + uint16(a.ctrl1)<<7,
			rcvSN:  uint16(a.ctrl2)>>1 + uint16(a.ctrl3)<<7,
		}
	case a.ctrl0&0x03 == 0x01:
		return sAPCI{
			rcvSN: uint16(a.ctrl2)>>1 + uint16(a.ctrl3)<<7,
		}
	default:
		return uAPCI{function: a.ctrl0 & 0xfc}
	}
}

// parse splits a raw APDU into its classified frame header and the
// bytes following it (the ASDU payload for an I-frame, empty for S/U).
func parse(apdu []byte) (interface{}, []byte) {
	a := apci{apdu[0], apdu[1], apdu[2], apdu[3], apdu[4], apdu[5]}
	return a.kind(), apdu[6:]
}
