package handler

import (
	"github.com/hoverpick/hoverpick/internal/core/event"
	"github.com/hoverpick/hoverpick/internal/net"
	"github.com/hoverpick/hoverpick/internal/net/packet"
	"go.uber.org/zap"
)

// HandleCamera processes CAMERA.
// Format: [opcode][name\0]; an empty name clears the active camera.
func HandleCamera(sess *net.Session, r *packet.Reader, deps *Deps) {
	name := r.ReadS()
	if name == "" {
		ClearCamera(deps)
		return
	}
	if !SelectCamera(deps, name) {
		sess.Log().Debug("unknown camera", zap.String("name", name))
	}
}

// SelectCamera makes the camera named name active. It reports false when
// no such camera exists; the active reference is then left unchanged.
func SelectCamera(deps *Deps, name string) bool {
	id, ok := deps.World.CameraByName(name)
	if !ok {
		return false
	}
	if cur, set := deps.World.ActiveCamera(); set && cur == id {
		return true
	}
	deps.World.Active.Set(id)
	event.Emit(deps.Bus, event.ActiveCameraChanged{Camera: id, Name: name})
	return true
}

// ClearCamera drops the active reference so picking falls back to the
// lowest-id camera.
func ClearCamera(deps *Deps) {
	if _, set := deps.World.ActiveCamera(); !set {
		return
	}
	deps.World.Active.Clear()
	event.Emit(deps.Bus, event.ActiveCameraChanged{})
}
