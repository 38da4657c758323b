package handler

import (
	stdnet "net"
	"testing"
	"time"

	"github.com/hoverpick/hoverpick/internal/component"
	"github.com/hoverpick/hoverpick/internal/core/event"
	"github.com/hoverpick/hoverpick/internal/net"
	"github.com/hoverpick/hoverpick/internal/net/packet"
	"github.com/hoverpick/hoverpick/internal/world"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestDeps() *Deps {
	return &Deps{
		World: world.NewState(),
		Bus:   event.NewBus(),
		Log:   zap.NewNop(),
	}
}

// newPipeSession returns a started session and the client end of its pipe.
func newPipeSession(t *testing.T) (*net.Session, stdnet.Conn) {
	t.Helper()
	client, server := stdnet.Pipe()
	sess := net.NewSession(server, 1, 8, 8, 0, zap.NewNop())
	sess.Start()
	t.Cleanup(func() {
		sess.Close()
		client.Close()
	})
	return sess, client
}

func readPayload(t *testing.T, c stdnet.Conn) *packet.Reader {
	t.Helper()
	c.SetReadDeadline(time.Now().Add(2 * time.Second))
	data, err := net.ReadFrame(c)
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return packet.NewReader(data)
}

func dispatch(t *testing.T, reg *packet.Registry, sess *net.Session, w *packet.Writer) {
	t.Helper()
	if err := reg.Dispatch(sess, sess.State(), w.Bytes()); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
}

func hello(token string) *packet.Writer {
	w := packet.NewWriterWithOpcode(packet.C_OPCODE_HELLO)
	w.WriteS(token)
	return w
}

func TestHelloSendsWelcomeAndSlots(t *testing.T) {
	deps := newTestDeps()
	deps.World.SpawnUIText("mouse_position", "(1, 2)", 0, 0)
	reg := packet.NewRegistry(zap.NewNop())
	RegisterAll(reg, deps)

	sess, client := newPipeSession(t)
	dispatch(t, reg, sess, hello("anything"))
	if sess.State() != packet.StateReady {
		t.Fatalf("state = %v, want Ready", sess.State())
	}
	sess.FlushOutput()

	r := readPayload(t, client)
	if r.Opcode() != packet.S_OPCODE_WELCOME || r.ReadD() != packet.ProtocolVersion {
		t.Fatal("expected WELCOME with protocol version")
	}
	r = readPayload(t, client)
	if r.Opcode() != packet.S_OPCODE_UI_TEXT {
		t.Fatalf("opcode = %#x, want UI_TEXT", r.Opcode())
	}
	if key, text := r.ReadS(), r.ReadS(); key != "mouse_position" || text != "(1, 2)" {
		t.Errorf("slot = %q %q", key, text)
	}
}

func TestHelloAuth(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("wrong token closes", func(t *testing.T) {
		deps := newTestDeps()
		deps.AuthHash = string(hash)
		reg := packet.NewRegistry(zap.NewNop())
		RegisterAll(reg, deps)

		sess, _ := newPipeSession(t)
		dispatch(t, reg, sess, hello("guess"))
		if !sess.IsClosed() {
			t.Error("session should be closed after a bad token")
		}
	})

	t.Run("right token admits", func(t *testing.T) {
		deps := newTestDeps()
		deps.AuthHash = string(hash)
		reg := packet.NewRegistry(zap.NewNop())
		RegisterAll(reg, deps)

		sess, _ := newPipeSession(t)
		dispatch(t, reg, sess, hello("s3cret"))
		if sess.State() != packet.StateReady {
			t.Errorf("state = %v, want Ready", sess.State())
		}
	})
}

func TestPointerBeforeHelloRejected(t *testing.T) {
	deps := newTestDeps()
	reg := packet.NewRegistry(zap.NewNop())
	RegisterAll(reg, deps)
	sess, _ := newPipeSession(t)

	w := packet.NewWriterWithOpcode(packet.C_OPCODE_POINTER)
	w.WriteF(1)
	w.WriteF(2)
	if err := reg.Dispatch(sess, sess.State(), w.Bytes()); err == nil {
		t.Error("POINTER in Handshake should be rejected")
	}
	if deps.World.Pointer.Present {
		t.Error("pointer should not move")
	}
}

func TestPointerLeaveResize(t *testing.T) {
	deps := newTestDeps()
	reg := packet.NewRegistry(zap.NewNop())
	RegisterAll(reg, deps)
	sess, _ := newPipeSession(t)
	sess.SetState(packet.StateReady)

	w := packet.NewWriterWithOpcode(packet.C_OPCODE_POINTER)
	w.WriteF(640)
	w.WriteF(360)
	dispatch(t, reg, sess, w)
	if p := deps.World.Pointer; !p.Present || p.X != 640 || p.Y != 360 {
		t.Errorf("pointer = %+v", p)
	}

	dispatch(t, reg, sess, packet.NewWriterWithOpcode(packet.C_OPCODE_POINTER_LEAVE))
	if deps.World.Pointer.Present {
		t.Error("pointer should be absent after leave")
	}

	w = packet.NewWriterWithOpcode(packet.C_OPCODE_RESIZE)
	w.WriteF(800)
	w.WriteF(600)
	dispatch(t, reg, sess, w)
	if s := deps.World.Screen; s.Width != 800 || s.Height != 600 {
		t.Errorf("screen = %+v", s)
	}

	w = packet.NewWriterWithOpcode(packet.C_OPCODE_RESIZE)
	w.WriteF(0)
	w.WriteF(600)
	dispatch(t, reg, sess, w)
	if deps.World.Screen.Width != 800 {
		t.Error("zero width must be ignored")
	}
}

func TestCameraSelect(t *testing.T) {
	deps := newTestDeps()
	deps.World.SpawnCamera(component.Camera{Name: "main"}, component.NewTransform(0, 0, 10))
	top := deps.World.SpawnCamera(component.Camera{Name: "top"}, component.NewTransform(0, 0, 50))

	var changes []event.ActiveCameraChanged
	event.Subscribe(deps.Bus, func(e event.ActiveCameraChanged) { changes = append(changes, e) })

	reg := packet.NewRegistry(zap.NewNop())
	RegisterAll(reg, deps)
	sess, _ := newPipeSession(t)
	sess.SetState(packet.StateReady)

	cam := func(name string) *packet.Writer {
		w := packet.NewWriterWithOpcode(packet.C_OPCODE_CAMERA)
		w.WriteS(name)
		return w
	}

	dispatch(t, reg, sess, cam("top"))
	if id, ok := deps.World.ActiveCamera(); !ok || id != top {
		t.Fatalf("active = %v %v, want %v", id, ok, top)
	}
	dispatch(t, reg, sess, cam("missing"))
	if id, _ := deps.World.ActiveCamera(); id != top {
		t.Error("unknown name must leave the active camera unchanged")
	}
	dispatch(t, reg, sess, cam(""))
	if _, ok := deps.World.ActiveCamera(); ok {
		t.Error("empty name should clear the active camera")
	}

	deps.Bus.SwapBuffers()
	deps.Bus.DispatchAll()
	if len(changes) != 2 || changes[0].Name != "top" || !changes[1].Camera.IsZero() {
		t.Errorf("changes = %+v", changes)
	}
}
