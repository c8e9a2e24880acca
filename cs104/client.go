// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs104

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gridedge/iec104master/asdu"
	"github.com/gridedge/iec104master/clog"
)

// timeoutResolution is how often the run loop wakes up to check the
// T0-T3 timers even when no frame arrives.
const timeoutResolution = 100 * time.Millisecond

// seqPending remembers when an outbound I-frame with a given send
// sequence number left the wire, for T1 timeout bookkeeping.
type seqPending struct {
	seq      uint16
	sendTime time.Time
}

// seqNoCount returns the number of sequence numbers between from and
// to in the 15-bit (0-32767) I-frame sequence space.
func seqNoCount(from, to uint16) uint16 {
	if to >= from {
		return to - from
	}
	return 32768 - from + to
}

// Client is the APCI/I-S-U frame state machine for one outstation TCP
// connection: dialing, the sliding send/receive window, the T0-T3
// timers, and the STARTDT/STOPDT/TESTFR handshake. It has no notion of
// which ASDU TypeIDs mean what; decoded ASDUs are handed to whatever
// handler the owner installed via SetASDUHandler. adapter.ClientAdapter
// is the layer that owns a Client and gives meaning to what it carries.
type Client struct {
	addr   string
	cfg    Config
	params *asdu.Params

	conn net.Conn

	sendASDU chan []byte // outbound, already-marshaled ASDUs
	rcvASDU  chan []byte // inbound, still-undecoded ASDUs
	rcvRaw   chan []byte // inbound raw APDUs off the wire
	sendRaw  chan []byte // outbound raw APDUs onto the wire

	seqNoSend uint16 // next outbound I-frame sequence number
	ackNoSend uint16 // outbound sequence number the peer has acked up to
	seqNoRcv  uint16 // next expected inbound I-frame sequence number
	ackNoRcv  uint16 // inbound sequence number we have acked up to
	pending   []seqPending

	startDtSince atomic.Value // time.Time: since StartDT-Active was sent, unconfirmed
	stopDtSince  atomic.Value // time.Time: since StopDT-Active was sent, unconfirmed

	state    atomic.Int32
	isActive atomic.Bool
	rwMux    sync.RWMutex

	clog.Clog

	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	closeCancel context.CancelFunc

	onConnect        func(c *Client)
	onConnectionLost func(c *Client)
	onActivated      func(c *Client)
	onDeactivated    func(c *Client)
	onASDU           func(c *Client, a *asdu.ASDU) error
}

// NewClient returns a Client ready to Start against addr. A nil params
// defaults to asdu.ParamsWide, the IEC 60870-5-104 wire profile.
func NewClient(addr string, cfg Config, params *asdu.Params) (*Client, error) {
	if err := cfg.Valid(); err != nil {
		return nil, err
	}
	if params == nil {
		params = asdu.ParamsWide
	}
	if err := params.Valid(); err != nil {
		return nil, err
	}

	sf := &Client{
		addr:             addr,
		cfg:              cfg,
		params:           params,
		sendASDU:         make(chan []byte, int(cfg.SendUnAckLimitK)*4),
		rcvASDU:          make(chan []byte, int(cfg.RecvUnAckLimitW)*4),
		rcvRaw:           make(chan []byte, int(cfg.RecvUnAckLimitW)*8),
		sendRaw:          make(chan []byte, int(cfg.SendUnAckLimitK)*8),
		Clog:             clog.NewLogger(fmt.Sprintf("cs104(%s) => ", addr)),
		onConnect:        func(*Client) {},
		onConnectionLost: func(*Client) {},
		onActivated:      func(*Client) {},
		onDeactivated:    func(*Client) {},
		onASDU:           func(*Client, *asdu.ASDU) error { return nil },
	}
	sf.state.Store(int32(StateClosed))
	return sf, nil
}

// SetOnConnectHandler installs a callback fired once the TCP connection
// is established (before STARTDT is exchanged).
func (sf *Client) SetOnConnectHandler(f func(c *Client)) *Client {
	if f != nil {
		sf.onConnect = f
	}
	return sf
}

// SetConnectionLostHandler installs a callback fired when the
// connection tears down, for any reason.
func (sf *Client) SetConnectionLostHandler(f func(c *Client)) *Client {
	if f != nil {
		sf.onConnectionLost = f
	}
	return sf
}

// SetOnActivatedHandler installs a callback fired once STARTDT is
// confirmed by the outstation.
func (sf *Client) SetOnActivatedHandler(f func(c *Client)) *Client {
	if f != nil {
		sf.onActivated = f
	}
	return sf
}

// SetOnDeactivatedHandler installs a callback fired once STOPDT is
// confirmed by the outstation.
func (sf *Client) SetOnDeactivatedHandler(f func(c *Client)) *Client {
	if f != nil {
		sf.onDeactivated = f
	}
	return sf
}

// SetASDUHandler installs the callback that receives every decoded
// inbound ASDU. The default handler discards them.
func (sf *Client) SetASDUHandler(f func(c *Client, a *asdu.ASDU) error) *Client {
	if f != nil {
		sf.onASDU = f
	}
	return sf
}

// State reports the current lifecycle state.
func (sf *Client) State() State {
	return State(sf.state.Load())
}

func (sf *Client) setState(s State) {
	sf.rwMux.Lock()
	sf.state.Store(int32(s))
	sf.rwMux.Unlock()
}

// Start dials addr and runs the connection state machine until ctx is
// canceled or a fatal protocol/timeout error occurs. It blocks for the
// lifetime of the connection; callers typically run it in its own
// goroutine and use ctx to stop it.
func (sf *Client) Start(ctx context.Context) error {
	if !sf.state.CompareAndSwap(int32(StateClosed), int32(StateConnecting)) &&
		!sf.state.CompareAndSwap(int32(StateBroken), int32(StateConnecting)) {
		return ErrAlreadyStarted
	}

	sf.rwMux.Lock()
	ctx, sf.closeCancel = context.WithCancel(ctx)
	sf.rwMux.Unlock()

	select {
	case <-ctx.Done():
		sf.setState(StateClosed)
		return ctx.Err()
	default:
	}

	sf.Debug("connecting to %s", sf.addr)
	conn, err := sf.dial(ctx)
	if err != nil {
		sf.Error("connect failed, %v", err)
		sf.setState(StateClosed)
		return err
	}
	sf.Debug("connected")
	sf.conn = conn

	runErr := sf.run(ctx)
	switch {
	case errors.Is(runErr, ErrPeerStopped), errors.Is(runErr, ErrTransportIO):
		sf.Error("connection broken, %v", runErr)
		sf.setState(StateBroken)
	case errors.Is(runErr, context.Canceled), errors.Is(runErr, context.DeadlineExceeded):
		sf.Debug("disconnected, %v", runErr)
		sf.setState(StateClosed)
	default:
		sf.Error("run failed, %v", runErr)
		sf.setState(StateBroken)
	}
	return runErr
}

func (sf *Client) dial(ctx context.Context) (net.Conn, error) {
	dialer := net.Dialer{Timeout: sf.cfg.ConnectTimeout0}
	conn, err := dialer.DialContext(ctx, "tcp", sf.addr)
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return nil, fmt.Errorf("%w: %v", ErrConnectTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTransportIO, err)
	}
	return conn, nil
}

func (sf *Client) recvLoop(fail func(error)) {
	sf.Debug("recvLoop started")
	defer func() {
		sf.cancel()
		sf.wg.Done()
		sf.Debug("recvLoop stopped")
	}()

	for {
		rawData := make([]byte, apduSizeMax)
		for rdCnt, length := 0, 2; rdCnt < length; {
			n, err := io.ReadFull(sf.conn, rawData[rdCnt:length])
			if err != nil {
				if isClosedConnErr(err) {
					sf.Debug("remote closed, %v", err)
					fail(fmt.Errorf("%w: %v", ErrPeerStopped, err))
					return
				}
				if ne, ok := err.(net.Error); ok && !ne.Temporary() {
					sf.Error("receive failed, %v", err)
					fail(fmt.Errorf("%w: %v", ErrTransportIO, err))
					return
				}
				if rdCnt == 0 && err == io.EOF {
					sf.Debug("remote closed, %v", err)
					fail(fmt.Errorf("%w: %v", ErrPeerStopped, err))
					return
				}
			}

			rdCnt += n
			switch {
			case rdCnt == 0:
				continue
			case rdCnt == 1:
				if rawData[0] != startFrame {
					rdCnt = 0
					continue
				}
			default:
				if rawData[0] != startFrame {
					rdCnt, length = 0, 2
					continue
				}
				length = int(rawData[1]) + 2
				if length < apciCtrlFieldSize+2 || length > apduSizeMax {
					rdCnt, length = 0, 2
					continue
				}
				if rdCnt == length {
					apdu := rawData[:length]
					sf.Debug("RX raw [% x]", apdu)
					sf.rcvRaw <- apdu
				}
			}
		}
	}
}

func isClosedConnErr(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) ||
		strings.Contains(err.Error(), "use of closed network connection")
}

func (sf *Client) sendLoop(fail func(error)) {
	sf.Debug("sendLoop started")
	defer func() {
		sf.cancel()
		sf.wg.Done()
		sf.Debug("sendLoop stopped")
	}()

	for {
		select {
		case <-sf.ctx.Done():
			return
		case apdu := <-sf.sendRaw:
			sf.Debug("TX raw [% x]", apdu)
			for wrCnt := 0; wrCnt < len(apdu); {
				n, err := sf.conn.Write(apdu[wrCnt:])
				if err != nil {
					if isClosedConnErr(err) {
						fail(fmt.Errorf("%w: %v", ErrPeerStopped, err))
						return
					}
					if ne, ok := err.(net.Error); !ok || !ne.Temporary() {
						sf.Error("send failed, %v", err)
						fail(fmt.Errorf("%w: %v", ErrTransportIO, err))
						return
					}
				}
				wrCnt += n
			}
		}
	}
}

// run is the protocol state machine: one select loop driving the
// sliding window, the T0-T3 timers, and STARTDT/STOPDT/TESTFR.
func (sf *Client) run(ctx context.Context) error {
	sf.Debug("run started")
	sf.cleanUp()

	sf.ctx, sf.cancel = context.WithCancel(ctx)
	sf.setState(StateUnconfirmed)

	var failMu sync.Mutex
	var failErr error
	fail := func(err error) {
		failMu.Lock()
		if failErr == nil {
			failErr = err
		}
		failMu.Unlock()
		sf.cancel()
	}

	sf.wg.Add(3)
	go sf.recvLoop(fail)
	go sf.sendLoop(fail)
	go sf.handlerLoop()

	checkTicker := time.NewTicker(timeoutResolution)
	willNotTimeout := time.Now().Add(100 * 365 * 24 * time.Hour)

	unAckRcvSince := willNotTimeout
	idleSince := time.Now()
	testFrSince := willNotTimeout

	sf.startDtSince.Store(willNotTimeout)
	sf.stopDtSince.Store(willNotTimeout)

	sendSFrame := func(rcvSN uint16) {
		sf.Debug("TX s-frame %v", sAPCI{rcvSN})
		sf.sendRaw <- newSFrame(rcvSN)
	}
	sendIFrame := func(raw []byte) error {
		seqNo := sf.seqNoSend
		iframe, err := newIFrame(seqNo, sf.seqNoRcv, raw)
		if err != nil {
			return err
		}
		sf.ackNoRcv = sf.seqNoRcv
		sf.seqNoSend = (seqNo + 1) & 32767
		sf.pending = append(sf.pending, seqPending{seqNo & 32767, time.Now()})
		sf.Debug("TX i-frame %v", iAPCI{seqNo, sf.seqNoRcv})
		sf.sendRaw <- iframe
		return nil
	}
	runErr := func() error {
		failMu.Lock()
		defer failMu.Unlock()
		if failErr != nil {
			return failErr
		}
		return sf.ctx.Err()
	}

	defer func() {
		sf.isActive.Store(false)
		checkTicker.Stop()
		_ = sf.conn.Close()
		sf.wg.Wait()
		sf.onConnectionLost(sf)
		sf.Debug("run stopped")
	}()

	sf.onConnect(sf)
	for {
		if sf.isActive.Load() && seqNoCount(sf.ackNoSend, sf.seqNoSend) <= sf.cfg.SendUnAckLimitK {
			select {
			case raw := <-sf.sendASDU:
				if err := sendIFrame(raw); err != nil {
					sf.Warn("drop outbound asdu, %v", err)
				}
				idleSince = time.Now()
				continue
			case <-sf.ctx.Done():
				return runErr()
			default:
			}
		}

		select {
		case <-sf.ctx.Done():
			return runErr()

		case now := <-checkTicker.C:
			if now.Sub(testFrSince) >= sf.cfg.SendUnAckTimeout1 ||
				now.Sub(sf.startDtSince.Load().(time.Time)) >= sf.cfg.SendUnAckTimeout1 ||
				now.Sub(sf.stopDtSince.Load().(time.Time)) >= sf.cfg.SendUnAckTimeout1 {
				sf.Error("u-frame confirmation timeout t1")
				return ErrHandshakeTimeout
			}
			if sf.ackNoSend != sf.seqNoSend && len(sf.pending) > 0 &&
				now.Sub(sf.pending[0].sendTime) >= sf.cfg.SendUnAckTimeout1 {
				sf.Error("unacknowledged i-frame timeout t1")
				return ErrWindowExceeded
			}
			if sf.ackNoRcv != sf.seqNoRcv &&
				(now.Sub(unAckRcvSince) >= sf.cfg.RecvUnAckTimeout2 ||
					now.Sub(idleSince) >= timeoutResolution) {
				sendSFrame(sf.seqNoRcv)
				sf.ackNoRcv = sf.seqNoRcv
			}
			if now.Sub(idleSince) >= sf.cfg.IdleTimeout3 {
				sf.sendUFrame(uTestFrActive)
				testFrSince = time.Now()
				idleSince = testFrSince
			}

		case apdu, ok := <-sf.rcvRaw:
			if !ok {
				return ErrTransportIO
			}
			idleSince = time.Now()
			apci, body := parse(apdu)
			switch head := apci.(type) {
			case sAPCI:
				sf.Debug("RX s-frame %v", head)
				if !sf.updateAckNoOut(head.rcvSN) {
					sf.Error("sequence violation on s-frame ack")
					return ErrSequenceViolation
				}

			case iAPCI:
				sf.Debug("RX i-frame %v", head)
				if !sf.isActive.Load() {
					sf.Warn("i-frame received while inactive, discarded")
					break
				}
				if !sf.updateAckNoOut(head.rcvSN) || head.sendSN != sf.seqNoRcv {
					sf.Error("sequence violation on i-frame")
					return ErrSequenceViolation
				}

				sf.rcvASDU <- body
				if sf.ackNoRcv == sf.seqNoRcv {
					unAckRcvSince = time.Now()
				}
				sf.seqNoRcv = (sf.seqNoRcv + 1) & 32767
				if seqNoCount(sf.ackNoRcv, sf.seqNoRcv) >= sf.cfg.RecvUnAckLimitW {
					sendSFrame(sf.seqNoRcv)
					sf.ackNoRcv = sf.seqNoRcv
				}

			case uAPCI:
				sf.Debug("RX u-frame %v", head)
				switch head.function {
				case uStartDtConfirm:
					sf.isActive.Store(true)
					sf.startDtSince.Store(willNotTimeout)
					sf.setState(StateActive)
					sf.onActivated(sf)
				case uStopDtConfirm:
					sf.isActive.Store(false)
					sf.stopDtSince.Store(willNotTimeout)
					sf.setState(StateUnconfirmed)
					sf.onDeactivated(sf)
				case uTestFrActive:
					sf.sendUFrame(uTestFrConfirm)
				case uTestFrConfirm:
					testFrSince = willNotTimeout
				default:
					sf.Warn("unknown u-frame function 0x%02x ignored", head.function)
				}
			}
		}
	}
}

func (sf *Client) handlerLoop() {
	sf.Debug("handlerLoop started")
	defer func() {
		sf.wg.Done()
		sf.Debug("handlerLoop stopped")
	}()

	for {
		select {
		case <-sf.ctx.Done():
			return
		case raw := <-sf.rcvASDU:
			a := asdu.NewEmptyASDU(sf.params)
			if err := a.UnmarshalBinary(raw); err != nil {
				sf.Warn("asdu decode failed, %v", err)
				continue
			}
			if err := sf.onASDU(sf, a); err != nil {
				sf.Warn("asdu handler failed, %v", err)
			}
		}
	}
}

func (sf *Client) cleanUp() {
	sf.ackNoRcv, sf.ackNoSend = 0, 0
	sf.seqNoRcv, sf.seqNoSend = 0, 0
	sf.pending = nil
loop:
	for {
		select {
		case <-sf.sendRaw:
		case <-sf.rcvRaw:
		case <-sf.rcvASDU:
		case <-sf.sendASDU:
		default:
			break loop
		}
	}
}

func (sf *Client) sendUFrame(which byte) {
	sf.Debug("TX u-frame %v", uAPCI{which})
	sf.sendRaw <- newUFrame(which)
}

func (sf *Client) updateAckNoOut(ackNo uint16) bool {
	if ackNo == sf.ackNoSend {
		return true
	}
	if seqNoCount(sf.ackNoSend, sf.seqNoSend) < seqNoCount(ackNo, sf.seqNoSend) {
		return false
	}
	for i, p := range sf.pending {
		if p.seq == (ackNo - 1) {
			sf.pending = sf.pending[i+1:]
			break
		}
	}
	sf.ackNoSend = ackNo
	return true
}

// IsConnected reports whether the TCP connection is up (regardless of
// whether data transfer has been activated).
func (sf *Client) IsConnected() bool {
	switch sf.State() {
	case StateUnconfirmed, StateActive, StateStopping:
		return true
	default:
		return false
	}
}

// IsActive reports whether STARTDT has been confirmed.
func (sf *Client) IsActive() bool {
	return sf.isActive.Load()
}

// Params returns the wire-format parameters this connection decodes
// and encodes with, satisfying asdu.Connect.
func (sf *Client) Params() *asdu.Params {
	return sf.params
}

// Send marshals and queues an ASDU for transmission as an I-frame.
// It fails fast if the connection is down, inactive, or the outbound
// queue is saturated (backpressure from a peer that stopped acking).
func (sf *Client) Send(a *asdu.ASDU) error {
	if !sf.IsConnected() {
		return ErrNotConnected
	}
	if !sf.isActive.Load() {
		return ErrNotActive
	}
	raw, err := a.MarshalBinary()
	if err != nil {
		return err
	}
	select {
	case sf.sendASDU <- raw:
	default:
		return ErrBufferFull
	}
	return nil
}

// UnderlyingConn exposes the raw net.Conn, mainly for tests and
// diagnostics.
func (sf *Client) UnderlyingConn() net.Conn {
	return sf.conn
}

// Close tears the connection down and unblocks Start.
func (sf *Client) Close() error {
	sf.rwMux.Lock()
	if sf.closeCancel != nil {
		sf.closeCancel()
	}
	sf.rwMux.Unlock()
	return nil
}

// SendStartDt requests data transfer start (STARTDT-ACT).
func (sf *Client) SendStartDt() {
	sf.startDtSince.Store(time.Now())
	sf.setState(StateUnconfirmed)
	sf.sendUFrame(uStartDtActive)
}

// SendStopDt requests data transfer stop (STOPDT-ACT).
func (sf *Client) SendStopDt() {
	sf.stopDtSince.Store(time.Now())
	sf.setState(StateStopping)
	sf.sendUFrame(uStopDtActive)
}

// InterrogationCmd wraps asdu.InterrogationCmd.
func (sf *Client) InterrogationCmd(coa asdu.CauseOfTransmission, ca asdu.CommonAddr, qoi asdu.QualifierOfInterrogation) error {
	return asdu.InterrogationCmd(sf, coa, ca, qoi)
}

// CounterInterrogationCmd wraps asdu.CounterInterrogationCmd.
func (sf *Client) CounterInterrogationCmd(coa asdu.CauseOfTransmission, ca asdu.CommonAddr, qcc asdu.QualifierCountCall) error {
	return asdu.CounterInterrogationCmd(sf, coa, ca, qcc)
}

// ReadCmd wraps asdu.ReadCmd.
func (sf *Client) ReadCmd(coa asdu.CauseOfTransmission, ca asdu.CommonAddr, ioa asdu.InfoObjAddr) error {
	return asdu.ReadCmd(sf, coa, ca, ioa)
}

// ClockSynchronizationCmd wraps asdu.ClockSynchronizationCmd.
func (sf *Client) ClockSynchronizationCmd(coa asdu.CauseOfTransmission, ca asdu.CommonAddr, t time.Time) error {
	return asdu.ClockSynchronizationCmd(sf, coa, ca, t)
}

// ResetProcessCmd wraps asdu.ResetProcessCmd.
func (sf *Client) ResetProcessCmd(coa asdu.CauseOfTransmission, ca asdu.CommonAddr, qrp asdu.QualifierOfResetProcessCmd) error {
	return asdu.ResetProcessCmd(sf, coa, ca, qrp)
}

// DelayAcquireCommand wraps asdu.DelayAcquireCommand.
func (sf *Client) DelayAcquireCommand(coa asdu.CauseOfTransmission, ca asdu.CommonAddr, msec uint16) error {
	return asdu.DelayAcquireCommand(sf, coa, ca, msec)
}

// TestCommand wraps asdu.TestCommand.
func (sf *Client) TestCommand(coa asdu.CauseOfTransmission, ca asdu.CommonAddr) error {
	return asdu.TestCommand(sf, coa, ca)
}
