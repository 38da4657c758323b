package net

import (
	"bytes"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hoverpick/hoverpick/internal/config"
	"github.com/hoverpick/hoverpick/internal/net/packet"
	"go.uber.org/zap"
)

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte{packet.C_OPCODE_POINTER_LEAVE, 0xAA}
	if err := WriteFrame(&buf, payload); err != nil {
		t.Fatal(err)
	}
	if got := buf.Bytes()[:2]; got[0] != 4 || got[1] != 0 {
		t.Errorf("header = %x, want 0400", got)
	}
	got, err := ReadFrame(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("payload = %x", got)
	}
}

func TestFrameInvalidLength(t *testing.T) {
	_, err := ReadFrame(bytes.NewReader([]byte{0x02, 0x00}))
	if !errors.Is(err, ErrFrameSize) {
		t.Errorf("err = %v, want ErrFrameSize", err)
	}
	if err := WriteFrame(&bytes.Buffer{}, nil); !errors.Is(err, ErrFrameSize) {
		t.Errorf("empty write err = %v", err)
	}
}

func TestSessionPipe(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	sess := NewSession(server, 1, 4, 4, 0, zap.NewNop())
	sess.Start()
	defer sess.Close()

	if sess.State() != packet.StateHandshake {
		t.Fatalf("initial state = %v", sess.State())
	}

	w := packet.NewWriterWithOpcode(packet.C_OPCODE_POINTER)
	w.WriteF(10)
	w.WriteF(20)
	go WriteFrame(client, w.Bytes())

	select {
	case got := <-sess.InQueue:
		r := packet.NewReader(got)
		if r.Opcode() != packet.C_OPCODE_POINTER || r.ReadF() != 10 || r.ReadF() != 20 {
			t.Errorf("unexpected inbound payload %x", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for inbound packet")
	}

	out := packet.NewWriterWithOpcode(packet.S_OPCODE_WELCOME)
	out.WriteD(packet.ProtocolVersion)
	sess.Send(out.Bytes())
	sess.FlushOutput()

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	got, err := ReadFrame(client)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != packet.S_OPCODE_WELCOME {
		t.Errorf("outbound opcode = %#x", got[0])
	}

	sess.Close()
	if !sess.IsClosed() || sess.State() != packet.StateDisconnecting {
		t.Error("session should be closed and disconnecting")
	}
	select {
	case <-sess.Done():
	default:
		t.Error("Done not closed")
	}
}

func TestSessionRateLimit(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	sess := NewSession(server, 2, 8, 1, 2, zap.NewNop())
	sess.Start()

	go func() {
		for i := 0; i < 5; i++ {
			if err := WriteFrame(client, []byte{packet.C_OPCODE_POINTER_LEAVE}); err != nil {
				return
			}
		}
	}()

	select {
	case <-sess.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("session should close after exceeding the packet rate")
	}
}

func TestServerAdopt(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("listen unavailable: %v", err)
	}
	cfg := config.NetworkConfig{InQueueSize: 4, OutQueueSize: 4}
	srv := newServer(ln, cfg, zap.NewNop())
	go srv.AcceptLoop()
	defer srv.Shutdown()

	conn, err := net.Dial("tcp", srv.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	select {
	case sess := <-srv.NewSessions():
		if sess.ID != 1 {
			t.Errorf("first session id = %d", sess.ID)
		}
		sess.Close()
	case <-time.After(2 * time.Second):
		t.Fatal("no session accepted")
	}
}

// failingListener fails every Accept, like a process out of descriptors.
type failingListener struct {
	calls atomic.Int32
}

func (l *failingListener) Accept() (net.Conn, error) {
	l.calls.Add(1)
	return nil, errors.New("too many open files")
}

func (l *failingListener) Close() error   { return nil }
func (l *failingListener) Addr() net.Addr { return &net.TCPAddr{} }

func TestAcceptLoopBacksOff(t *testing.T) {
	ln := &failingListener{}
	srv := newServer(ln, config.NetworkConfig{}, zap.NewNop())

	done := make(chan struct{})
	go func() {
		srv.AcceptLoop()
		close(done)
	}()

	// 5+10+20+40ms of backoff fits at most five attempts in 60ms.
	time.Sleep(60 * time.Millisecond)
	srv.Shutdown()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("AcceptLoop did not stop after Shutdown")
	}
	if n := ln.calls.Load(); n > 6 {
		t.Errorf("accept called %d times in 60ms, want backoff", n)
	}
}
