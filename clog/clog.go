// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package clog is the logging seam asdu and cs104 call through: both
// packages log only via a LogProvider they're handed, never against a
// concrete logger, so a caller can route frame-level tracing into
// whatever structured logger the rest of the program already uses (see
// LogrusProvider) without asdu/cs104 importing it directly.
package clog

import (
	"log"
	"os"
	"sync/atomic"
)

// LogProvider is the four severities asdu/cs104 ever emit: Critical
// (protocol state is no longer trustworthy), Error, Warn, and Debug
// frame tracing. There is no Info level — nothing in the codec or
// APCI state machine logs at a level between Warn and Debug.
type LogProvider interface {
	Critical(format string, v ...interface{})
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// stdoutLogger is the LogProvider used when nothing else is wired in:
// it writes to os.Stdout through the standard library logger with a
// one-letter severity tag, so asdu/cs104 are usable stand-alone
// without requiring a caller to supply a provider first.
type stdoutLogger struct {
	*log.Logger
}

var _ LogProvider = stdoutLogger{}

func (l stdoutLogger) Critical(format string, v ...interface{}) { l.Printf("[C]: "+format, v...) }
func (l stdoutLogger) Error(format string, v ...interface{})    { l.Printf("[E]: "+format, v...) }
func (l stdoutLogger) Warn(format string, v ...interface{})     { l.Printf("[W]: "+format, v...) }
func (l stdoutLogger) Debug(format string, v ...interface{})    { l.Printf("[D]: "+format, v...) }

// Clog forwards to a LogProvider only while enabled, so embedding types
// (ASDU, Client) can carry logging as a zero-cost no-op until a caller
// opts in with LogMode(true). The enabled flag is an atomic uint32
// rather than a bool so LogMode/Critical/etc. are safe to call from
// whatever goroutine owns the embedding type's I/O loop concurrently
// with the goroutine that flips it.
type Clog struct {
	provider LogProvider
	enabled  uint32
}

// NewLogger returns a Clog whose default provider prefixes every line
// written to stdout with prefix. Logging starts disabled; call
// LogMode(true) to activate it. SetLogProvider only changes where
// output goes and does not enable it.
func NewLogger(prefix string) Clog {
	return Clog{
		provider: stdoutLogger{log.New(os.Stdout, prefix, log.LstdFlags)},
	}
}

// LogMode enables or disables forwarding to the current provider.
func (c *Clog) LogMode(enable bool) {
	v := uint32(0)
	if enable {
		v = 1
	}
	atomic.StoreUint32(&c.enabled, v)
}

// SetLogProvider swaps in p as the forwarding target. A nil p is
// ignored so a caller can't accidentally blank out logging.
func (c *Clog) SetLogProvider(p LogProvider) {
	if p != nil {
		c.provider = p
	}
}

func (c Clog) active() bool {
	return atomic.LoadUint32(&c.enabled) == 1
}

// Critical logs a message indicating the caller's internal state can
// no longer be trusted (e.g. a protocol invariant was violated).
func (c Clog) Critical(format string, v ...interface{}) {
	if c.active() {
		c.provider.Critical(format, v...)
	}
}

// Error logs a recoverable failure.
func (c Clog) Error(format string, v ...interface{}) {
	if c.active() {
		c.provider.Error(format, v...)
	}
}

// Warn logs a condition worth a human's attention but not a failure.
func (c Clog) Warn(format string, v ...interface{}) {
	if c.active() {
		c.provider.Warn(format, v...)
	}
}

// Debug logs frame-level tracing.
func (c Clog) Debug(format string, v ...interface{}) {
	if c.active() {
		c.provider.Debug(format, v...)
	}
}
