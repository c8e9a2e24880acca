// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package config parses the pipe-delimited DeviceID string (and the
// comma-delimited Blocks sub-grammar it carries) into the structures
// cs104 and adapter need to dial and poll one outstation, plus an
// optional .ini-backed fleet loader for operators who prefer a static
// file over constructing DeviceIDs in code.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gridedge/iec104master/asdu"
	"github.com/gridedge/iec104master/cs104"
	"github.com/sirupsen/logrus"
)

// PollMode says whether a Block relies on the outstation's own cyclic
// or spontaneous transmission, or is actively polled with C_RD_NA_1.
type PollMode int

const (
	Cyclic PollMode = iota
	Polled
)

func (m PollMode) String() string {
	if m == Polled {
		return "polled"
	}
	return "cyclic"
}

// Block names a contiguous range of information-object addresses that
// share a TypeID and polling behavior.
type Block struct {
	StartIOA asdu.InfoObjAddr
	Count    int
	TypeID   asdu.TypeID
	Mode     PollMode
}

// Contains reports whether ioa falls within the block's range.
func (b Block) Contains(ioa asdu.InfoObjAddr) bool {
	return ioa >= b.StartIOA && uint32(ioa) < uint32(b.StartIOA)+uint32(b.Count)
}

// DeviceID is the parsed form of one outstation's configuration
// string: dial target, station address, protocol timers, and the
// polling blocks a DeviceReader works from.
type DeviceID struct {
	IP                    string
	Port                  int
	COA                   asdu.CommonAddr
	K                     uint16
	W                     uint16
	T0, T1, T2, T3        time.Duration
	InterrogationType     asdu.QualifierOfInterrogation
	InterrogationInterval time.Duration
	Blocks                []Block
}

// Addr formats the dial target cs104.NewClient expects.
func (d DeviceID) Addr() string {
	return fmt.Sprintf("%s:%d", d.IP, d.Port)
}

// CS104Config converts the timer/window fields into a cs104.Config.
// Zero fields fall back to cs104.DefaultConfig's values through
// Config.Valid.
func (d DeviceID) CS104Config() cs104.Config {
	cfg := cs104.Config{
		ConnectTimeout0:   d.T0,
		SendUnAckLimitK:   d.K,
		SendUnAckTimeout1: d.T1,
		RecvUnAckLimitW:   d.W,
		RecvUnAckTimeout2: d.T2,
		IdleTimeout3:      d.T3,
	}
	_ = cfg.Valid()
	return cfg
}

// ParseDeviceID parses the pipe grammar:
//
//	IP|Port|COA|K|W|T0|T1|T2|T3|InterrogationType|InterrogationInterval|Blocks
//
// Trailing fields may be omitted; an omitted or unparseable field is
// logged and defaulted rather than treated as fatal, matching the
// original's tolerant DeviceID parsing. Only IP is mandatory.
func ParseDeviceID(s string) (DeviceID, error) {
	fields := strings.Split(s, "|")
	if len(fields) == 0 || fields[0] == "" {
		return DeviceID{}, fmt.Errorf("config: device id %q has no ip", s)
	}

	d := DeviceID{
		IP:                    fields[0],
		Port:                  cs104.Port,
		COA:                   1,
		InterrogationType:     asdu.QOIStation,
		InterrogationInterval: 60 * time.Second,
	}

	get := func(i int) (string, bool) {
		if i < len(fields) && fields[i] != "" {
			return fields[i], true
		}
		return "", false
	}

	if v, ok := get(1); ok {
		if n, err := strconv.Atoi(v); err == nil {
			d.Port = n
		} else {
			logrus.Warnf("config: device id %q: bad port %q, defaulting to %d", s, v, d.Port)
		}
	}
	if v, ok := get(2); ok {
		if n, err := strconv.ParseUint(v, 10, 16); err == nil {
			d.COA = asdu.CommonAddr(n)
		} else {
			logrus.Warnf("config: device id %q: bad coa %q, defaulting to %d", s, v, d.COA)
		}
	}
	if v, ok := get(3); ok {
		if n, err := strconv.ParseUint(v, 10, 16); err == nil {
			d.K = uint16(n)
		} else {
			logrus.Warnf("config: device id %q: bad k %q, ignored", s, v)
		}
	}
	if v, ok := get(4); ok {
		if n, err := strconv.ParseUint(v, 10, 16); err == nil {
			d.W = uint16(n)
		} else {
			logrus.Warnf("config: device id %q: bad w %q, ignored", s, v)
		}
	}
	if v, ok := get(5); ok {
		d.T0 = parseSeconds(s, "t0", v)
	}
	if v, ok := get(6); ok {
		d.T1 = parseSeconds(s, "t1", v)
	}
	if v, ok := get(7); ok {
		d.T2 = parseSeconds(s, "t2", v)
	}
	if v, ok := get(8); ok {
		d.T3 = parseSeconds(s, "t3", v)
	}
	if v, ok := get(9); ok {
		if n, err := strconv.ParseUint(v, 10, 8); err == nil {
			d.InterrogationType = asdu.QualifierOfInterrogation(n)
		} else {
			logrus.Warnf("config: device id %q: bad interrogation type %q, defaulting to station", s, v)
		}
	}
	if v, ok := get(10); ok {
		d.InterrogationInterval = parseSeconds(s, "interrogation interval", v)
	}
	if v, ok := get(11); ok {
		blocks, err := ParseBlockSettings(v)
		if err != nil {
			logrus.Warnf("config: device id %q: %v, blocks ignored", s, err)
		} else {
			d.Blocks = blocks
		}
	}

	return d, nil
}

func parseSeconds(deviceID, field, v string) time.Duration {
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.Warnf("config: device id %q: bad %s %q, ignored", deviceID, field, v)
		return 0
	}
	return time.Duration(n) * time.Second
}

// ParseBlockSettings parses the comma-delimited Blocks sub-grammar:
// "startIOA:count:typeID:mode" entries, mode in {c, p}.
func ParseBlockSettings(s string) ([]Block, error) {
	if s == "" {
		return nil, nil
	}
	entries := strings.Split(s, ",")
	blocks := make([]Block, 0, len(entries))
	for _, e := range entries {
		parts := strings.Split(e, ":")
		if len(parts) != 4 {
			return nil, fmt.Errorf("config: block %q: want startIOA:count:typeID:mode", e)
		}
		startIOA, err := strconv.ParseUint(parts[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("config: block %q: bad startIOA: %w", e, err)
		}
		count, err := strconv.Atoi(parts[1])
		if err != nil || count <= 0 {
			return nil, fmt.Errorf("config: block %q: bad count", e)
		}
		typeID, err := strconv.ParseUint(parts[2], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("config: block %q: bad typeID: %w", e, err)
		}
		var mode PollMode
		switch parts[3] {
		case "c":
			mode = Cyclic
		case "p":
			mode = Polled
		default:
			return nil, fmt.Errorf("config: block %q: mode must be c or p, got %q", e, parts[3])
		}
		blocks = append(blocks, Block{
			StartIOA: asdu.InfoObjAddr(startIOA),
			Count:    count,
			TypeID:   asdu.TypeID(typeID),
			Mode:     mode,
		})
	}
	return blocks, nil
}
