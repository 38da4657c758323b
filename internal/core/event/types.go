package event

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hoverpick/hoverpick/internal/core/ecs"
)

// HoverChanged fires when the hovered object differs from the previous
// successful frame. An empty name means "nothing hovered".
type HoverChanged struct {
	Frame  uint64
	PrevID ecs.EntityID
	Prev   string
	NextID ecs.EntityID
	Next   string
	Point  mgl64.Vec3
}

// ActiveCameraChanged fires when the active camera reference is set or cleared.
type ActiveCameraChanged struct {
	Camera ecs.EntityID // zero when cleared
	Name   string
}
