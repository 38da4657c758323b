package component

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ProjectionKind selects how a Camera maps view space to clip space.
type ProjectionKind int

const (
	Perspective ProjectionKind = iota
	Orthographic
)

func (k ProjectionKind) String() string {
	if k == Orthographic {
		return "orthographic"
	}
	return "perspective"
}

// Camera stores projection parameters only; placement lives in Transform.
// Pure data. Projection math lives in the picking package.
type Camera struct {
	Name string
	Kind ProjectionKind

	// Perspective
	FovY   float64 // radians
	Aspect float64

	// Orthographic extents in view units
	Left, Right float64
	Bottom, Top float64

	Near float64
	Far  float64
}

// Standard3D is a 60° perspective camera for a width×height viewport.
func Standard3D(width, height float64) Camera {
	return Camera{
		Kind:   Perspective,
		FovY:   math.Pi / 3,
		Aspect: width / height,
		Near:   0.1,
		Far:    2000,
	}
}

// Standard2D is an orthographic camera showing width×height world units
// centered on the camera.
func Standard2D(width, height float64) Camera {
	return Camera{
		Kind:   Orthographic,
		Left:   -width / 2,
		Right:  width / 2,
		Bottom: -height / 2,
		Top:    height / 2,
		Near:   0.1,
		Far:    2000,
	}
}

// Projection returns the OpenGL-style projection matrix (NDC z in [-1, 1]).
func (c *Camera) Projection() mgl64.Mat4 {
	if c.Kind == Orthographic {
		return mgl64.Ortho(c.Left, c.Right, c.Bottom, c.Top, c.Near, c.Far)
	}
	return mgl64.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
}
