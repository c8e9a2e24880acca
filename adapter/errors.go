// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package adapter

import "errors"

// Errors returned by ClientAdapter.SendCommand and SendInterrogation. A
// CommandError always carries one of these as its Kind so callers can
// branch on outcome without parsing strings.
var (
	// ErrRejected is returned when the outstation answers with a
	// negative confirmation (IsNegative set on the ActivationCon).
	ErrRejected = errors.New("adapter: command rejected by outstation")
	// ErrTimedOut is returned when no ActCon/ActTerm arrived before the
	// caller's context deadline.
	ErrTimedOut = errors.New("adapter: command timed out waiting for confirmation")
	// ErrNotConnected is returned when the connection is not Active.
	ErrNotConnected = errors.New("adapter: connection is not active")
	// ErrDuplicate is returned when a command is already pending for
	// the same address.
	ErrDuplicate = errors.New("adapter: a command is already pending for this address")
	// ErrNotSupported is returned for a TypeID this adapter has no
	// encoder for.
	ErrNotSupported = errors.New("adapter: unsupported command type")
	// ErrQueueOverflow is not returned by any ClientAdapter method;
	// spontaneous-queue overflows are counted by OverflowCount instead.
	ErrQueueOverflow = errors.New("adapter: spontaneous queue overflowed")
)

// CommandError wraps one of the sentinel errors above with the address
// and underlying cause it pertains to.
type CommandError struct {
	Kind error
	Addr string
	Err  error
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return "adapter: " + e.Addr + ": " + e.Kind.Error() + ": " + e.Err.Error()
	}
	return "adapter: " + e.Addr + ": " + e.Kind.Error()
}

func (e *CommandError) Unwrap() error { return e.Kind }
