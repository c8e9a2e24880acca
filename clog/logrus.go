// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package clog

import "github.com/sirupsen/logrus"

// LogrusProvider adapts a *logrus.Entry to LogProvider, so the asdu/cs104
// frame-level tracing can be folded into the structured logging the
// rest of the module (adapter, reader, driver, config) uses.
type LogrusProvider struct {
	entry *logrus.Entry
}

var _ LogProvider = LogrusProvider{}

// NewLogrusProvider wraps entry. A nil entry falls back to the standard
// logger at the default level.
func NewLogrusProvider(entry *logrus.Entry) LogrusProvider {
	if entry == nil {
		entry = logrus.NewEntry(logrus.StandardLogger())
	}
	return LogrusProvider{entry: entry}
}

func (p LogrusProvider) Critical(format string, v ...interface{}) {
	p.entry.Errorf("CRITICAL: "+format, v...)
}

func (p LogrusProvider) Error(format string, v ...interface{}) {
	p.entry.Errorf(format, v...)
}

func (p LogrusProvider) Warn(format string, v ...interface{}) {
	p.entry.Warnf(format, v...)
}

func (p LogrusProvider) Debug(format string, v ...interface{}) {
	p.entry.Debugf(format, v...)
}
