package world

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hoverpick/hoverpick/internal/core/ecs"
)

// ActiveCamera is an optional reference to one camera entity. It is set or
// cleared by scene bootstrap, the network camera handler and Lua bindings;
// the picking core only reads it.
type ActiveCamera struct {
	entity ecs.EntityID
	set    bool
}

func (a *ActiveCamera) Set(id ecs.EntityID) {
	a.entity = id
	a.set = !id.IsZero()
}

func (a *ActiveCamera) Clear() {
	a.entity = 0
	a.set = false
}

func (a *ActiveCamera) Get() (ecs.EntityID, bool) {
	return a.entity, a.set
}

// ScreenDimensions is the current window size in pixels.
type ScreenDimensions struct {
	Width, Height float64
}

// Pointer is the mouse position in window pixels. Present is false while the
// pointer is outside the window.
type Pointer struct {
	X, Y    float64
	Present bool
}

func (p *Pointer) MoveTo(x, y float64) {
	p.X, p.Y, p.Present = x, y, true
}

func (p *Pointer) Leave() {
	p.Present = false
}

// PickResult hands one frame's picking outcome from PickingSystem to the
// output systems. Valid is false when the frame was skipped.
type PickResult struct {
	Frame   uint64
	Valid   bool
	Point   mgl64.Vec3
	Hovered ecs.EntityID
	Name    string
	Hit     bool
}
