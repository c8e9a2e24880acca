package cs104

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listenLoopback opens a TCP listener an outstation-side test double can
// accept connections on, returning it alongside the dial address Client
// uses.
func listenLoopback(t *testing.T) net.Listener {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })
	return ln
}

func TestStartSurfacesPeerCloseAsBroken(t *testing.T) {
	ln := listenLoopback(t)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		_ = conn.Close() // simulate the outstation dropping the TCP connection
	}()

	c, err := NewClient(ln.Addr().String(), Config{}, nil)
	require.NoError(t, err)

	err = c.Start(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPeerStopped)
	assert.Equal(t, StateBroken, c.State())
}

func TestStartReportsCleanOnCallerInitiatedClose(t *testing.T) {
	ln := listenLoopback(t)
	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			accepted <- conn
		}
	}()

	c, err := NewClient(ln.Addr().String(), Config{}, nil)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- c.Start(context.Background()) }()

	conn := <-accepted
	defer conn.Close()

	// let run() reach its select loop before tearing the client down, so
	// Close races the handshake rather than Start's initial dial.
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, c.Close())

	err = <-done
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateClosed, c.State())
}
