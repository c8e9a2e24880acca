// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs104

import "errors"

// Errors returned by Client.Start and Client.Send, except ErrBadStart,
// which is never returned: recvLoop skips bytes until it finds a start
// byte. A Start failure
// always leaves the Client in StateClosed or StateBroken; callers
// decide whether and when to retry.
var (
	ErrAlreadyStarted   = errors.New("cs104: client already started")
	ErrNotConnected     = errors.New("cs104: not connected")
	ErrNotActive        = errors.New("cs104: data transfer not active (STARTDT not confirmed)")
	ErrBufferFull       = errors.New("cs104: outbound i-frame queue full")
	ErrBadStart         = errors.New("cs104: apdu missing the 0x68 start byte")
	ErrConnectTimeout   = errors.New("cs104: connect timeout exceeded (t0)")
	ErrHandshakeTimeout = errors.New("cs104: u-frame confirmation timeout (t1)")
	ErrSequenceViolation = errors.New("cs104: received sequence number out of order")
	ErrWindowExceeded   = errors.New("cs104: unacknowledged i-frame timeout (t1)")
	ErrPeerStopped      = errors.New("cs104: peer closed the transport")
	ErrTransportIO      = errors.New("cs104: transport i/o error")
)
