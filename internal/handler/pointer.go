package handler

import (
	"math"

	"github.com/hoverpick/hoverpick/internal/net"
	"github.com/hoverpick/hoverpick/internal/net/packet"
	"go.uber.org/zap"
)

// HandlePointer processes POINTER.
// Format: [opcode][F x][F y] in window pixels.
func HandlePointer(sess *net.Session, r *packet.Reader, deps *Deps) {
	if r.Remaining() < 8 {
		return
	}
	x, y := r.ReadF(), r.ReadF()
	if !finite(x) || !finite(y) {
		sess.Log().Debug("non-finite pointer dropped")
		return
	}
	deps.World.Pointer.MoveTo(x, y)
}

// HandlePointerLeave processes POINTER_LEAVE. No payload.
func HandlePointerLeave(_ *net.Session, _ *packet.Reader, deps *Deps) {
	deps.World.Pointer.Leave()
}

// HandleResize processes RESIZE.
// Format: [opcode][F width][F height]
func HandleResize(sess *net.Session, r *packet.Reader, deps *Deps) {
	if r.Remaining() < 8 {
		return
	}
	w, h := r.ReadF(), r.ReadF()
	if !finite(w) || !finite(h) || w <= 0 || h <= 0 {
		sess.Log().Debug("invalid resize dropped", zap.Float64("w", w), zap.Float64("h", h))
		return
	}
	deps.World.Screen.Width = w
	deps.World.Screen.Height = h
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
