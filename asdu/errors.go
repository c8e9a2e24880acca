// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import "errors"

// Errors returned by the codec. Decoders never panic on malformed input;
// every fallible operation returns one of these.
var (
	ErrParam            = errors.New("asdu: invalid params")
	ErrTypeIdentifier   = errors.New("asdu: unknown type identifier")
	ErrCmdCause         = errors.New("asdu: cause of transmission not valid for this command")
	ErrTypeIDNotMatch   = errors.New("asdu: type identification does not match the requested variant")
	ErrInfoObjAddrFit   = errors.New("asdu: information object address does not fit in configured width")
	ErrNotAnyObjInfo    = errors.New("asdu: no information object supplied")
	ErrLengthOutOfRange = errors.New("asdu: encoded length exceeds ASDUSizeMax")

	// ErrShortFrame: fewer bytes than the declared fixed header.
	ErrShortFrame = errors.New("asdu: frame shorter than fixed header")
	// ErrBadLength: VSQ count and remaining payload length disagree.
	ErrBadLength = errors.New("asdu: variable structure qualifier count does not match payload length")
	// ErrTruncated: a payload ended mid-information-object.
	ErrTruncated = errors.New("asdu: truncated information object")
	// ErrBadTimestamp: a CP56Time2a/CP24Time2a field carries an out-of-range subfield.
	ErrBadTimestamp = errors.New("asdu: invalid time-tag field")
)
