// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs104

import (
	"errors"
	"time"
)

const (
	// Port is the IANA registered port number for unsecure connection.
	Port = 2404

	// PortSecure is the IANA registered port number for secure connection.
	PortSecure = 19998
)

// Valid ranges for the timers and window sizes IEC 60870-5-104 names
// t0..t3, k and w. Config.Valid rejects anything outside these bounds
// that wasn't left at zero (zero means "use the protocol default").
const (
	ConnectTimeout0Min = 1 * time.Second   // "t₀", figure 18
	ConnectTimeout0Max = 255 * time.Second
	SendUnAckTimeout1Min = 1 * time.Second // "t₁", figure 18
	SendUnAckTimeout1Max = 255 * time.Second
	RecvUnAckTimeout2Min = 1 * time.Second // "t₂", figure 10
	RecvUnAckTimeout2Max = 255 * time.Second
	IdleTimeout3Min = 1 * time.Second      // "t₃", subclass 5.2
	IdleTimeout3Max = 48 * time.Hour
	SendUnAckLimitKMin = 1 // "k", subclass 5.5
	SendUnAckLimitKMax = 32767
	RecvUnAckLimitWMin = 1 // "w", subclass 5.5
	RecvUnAckLimitWMax = 32767
)

// Config holds the IEC 60870-5-104 link parameters: the connect
// timeout, the three protocol timers t1-t3, and the send/receive
// window k/w. A zero field takes the protocol's own default when
// Valid runs; an explicitly out-of-range field is rejected.
type Config struct {
	// ConnectTimeout0 "t₀" bounds TCP connection establishment.
	// range [1, 255]s, default 30s.
	ConnectTimeout0 time.Duration

	// SendUnAckLimitK "k" caps outstanding unacknowledged I-frames;
	// the sender stalls once this many are in flight awaiting an S
	// or I-frame acknowledgment. range [1, 32767], default 12.
	SendUnAckLimitK uint16

	// SendUnAckTimeout1 "t₁" is how long an I-frame may go
	// unacknowledged before the connection is torn down.
	// range [1, 255]s, default 15s.
	SendUnAckTimeout1 time.Duration

	// RecvUnAckLimitW "w" caps how many received I-frames accumulate
	// before an S-frame acknowledges them; by convention w <= 2k/3.
	// range [1, 32767], default 8.
	RecvUnAckLimitW uint16

	// RecvUnAckTimeout2 "t₂" bounds how long a received but
	// unacknowledged I-frame may wait before an S-frame is forced out.
	// range [1, 255]s, default 10s.
	RecvUnAckTimeout2 time.Duration

	// IdleTimeout3 "t₃" is the quiet-link interval that triggers a
	// TESTFR keepalive. range [1s, 48h], default 20s.
	IdleTimeout3 time.Duration
}

// configBound names one timer/window field for table-driven
// validation: get reads the current value, set applies a resolved
// (defaulted or validated) one back onto the Config.
type configBound struct {
	get         func(*Config) time.Duration
	set         func(*Config, time.Duration)
	def, lo, hi time.Duration
	rangeErr    string
}

var configBounds = []configBound{
	{func(c *Config) time.Duration { return c.ConnectTimeout0 },
		func(c *Config, v time.Duration) { c.ConnectTimeout0 = v },
		30 * time.Second, ConnectTimeout0Min, ConnectTimeout0Max,
		`ConnectTimeout0 "t₀" not in [1, 255]s`},
	{func(c *Config) time.Duration { return c.SendUnAckTimeout1 },
		func(c *Config, v time.Duration) { c.SendUnAckTimeout1 = v },
		15 * time.Second, SendUnAckTimeout1Min, SendUnAckTimeout1Max,
		`SendUnAckTimeout1 "t₁" not in [1, 255]s`},
	{func(c *Config) time.Duration { return c.RecvUnAckTimeout2 },
		func(c *Config, v time.Duration) { c.RecvUnAckTimeout2 = v },
		10 * time.Second, RecvUnAckTimeout2Min, RecvUnAckTimeout2Max,
		`RecvUnAckTimeout2 "t₂" not in [1, 255]s`},
	{func(c *Config) time.Duration { return c.IdleTimeout3 },
		func(c *Config, v time.Duration) { c.IdleTimeout3 = v },
		20 * time.Second, IdleTimeout3Min, IdleTimeout3Max,
		`IdleTimeout3 "t₃" not in [1 second, 48 hours]`},
}

// Valid fills every unset (zero) field with its protocol default and
// rejects any explicitly set field outside the ranges above. k and w
// are validated separately from configBounds since they're counts, not
// durations.
func (c *Config) Valid() error {
	if c == nil {
		return errors.New("invalid pointer")
	}

	for _, b := range configBounds {
		v := b.get(c)
		switch {
		case v == 0:
			b.set(c, b.def)
		case v < b.lo || v > b.hi:
			return errors.New(b.rangeErr)
		}
	}

	if c.SendUnAckLimitK == 0 {
		c.SendUnAckLimitK = 12
	} else if c.SendUnAckLimitK < SendUnAckLimitKMin || c.SendUnAckLimitK > SendUnAckLimitKMax {
		return errors.New(`SendUnAckLimitK "k" not in [1, 32767]`)
	}

	if c.RecvUnAckLimitW == 0 {
		c.RecvUnAckLimitW = 8
	} else if c.RecvUnAckLimitW < RecvUnAckLimitWMin || c.RecvUnAckLimitW > RecvUnAckLimitWMax {
		return errors.New(`RecvUnAckLimitW "w" not in [1, 32767]`)
	}

	return nil
}

// DefaultConfig returns the IEC 60870-5-104 default timers and window.
func DefaultConfig() Config {
	return Config{
		ConnectTimeout0:   30 * time.Second,
		SendUnAckLimitK:   12,
		SendUnAckTimeout1: 15 * time.Second,
		RecvUnAckLimitW:   8,
		RecvUnAckTimeout2: 10 * time.Second,
		IdleTimeout3:      20 * time.Second,
	}
}
