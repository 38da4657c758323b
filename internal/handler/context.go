package handler

import (
	"github.com/hoverpick/hoverpick/internal/core/event"
	"github.com/hoverpick/hoverpick/internal/net"
	"github.com/hoverpick/hoverpick/internal/net/packet"
	"github.com/hoverpick/hoverpick/internal/world"
	"go.uber.org/zap"
)

// Deps holds what the feed handlers touch. Handlers run on the frame loop,
// so World is mutated without locks.
type Deps struct {
	World    *world.State
	Bus      *event.Bus
	Log      *zap.Logger
	AuthHash string // bcrypt hash; empty accepts any token
}

// RegisterAll registers the pointer-feed handlers.
func RegisterAll(reg *packet.Registry, deps *Deps) {
	reg.Register(packet.C_OPCODE_HELLO,
		[]packet.SessionState{packet.StateHandshake},
		func(sess any, r *packet.Reader) {
			HandleHello(sess.(*net.Session), r, deps)
		},
	)

	ready := []packet.SessionState{packet.StateReady}

	reg.Register(packet.C_OPCODE_POINTER, ready,
		func(sess any, r *packet.Reader) {
			HandlePointer(sess.(*net.Session), r, deps)
		},
	)
	reg.Register(packet.C_OPCODE_POINTER_LEAVE, ready,
		func(sess any, r *packet.Reader) {
			HandlePointerLeave(sess.(*net.Session), r, deps)
		},
	)
	reg.Register(packet.C_OPCODE_RESIZE, ready,
		func(sess any, r *packet.Reader) {
			HandleResize(sess.(*net.Session), r, deps)
		},
	)
	reg.Register(packet.C_OPCODE_CAMERA, ready,
		func(sess any, r *packet.Reader) {
			HandleCamera(sess.(*net.Session), r, deps)
		},
	)
}
