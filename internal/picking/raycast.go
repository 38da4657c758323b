package picking

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hoverpick/hoverpick/internal/component"
	"github.com/hoverpick/hoverpick/internal/geom"
)

// GroundPlane is the plane pointer rays are intersected with.
var GroundPlane = geom.PlaneZ(0)

// ScreenRay casts a world-space ray from cam through the pixel (px, py) of a
// width×height window. Pixel (0, 0) is the top-left corner. ok is false for
// an empty window or a singular camera matrix.
func ScreenRay(cam *component.Camera, tf *component.Transform, px, py, width, height float64) (geom.Ray, bool) {
	if width <= 0 || height <= 0 {
		return geom.Ray{}, false
	}
	ndcX := 2*px/width - 1
	ndcY := 1 - 2*py/height

	view := tf.Matrix().Inv()
	inv := cam.Projection().Mul4(view).Inv()

	near, ok := unproject(inv, ndcX, ndcY, -1)
	if !ok {
		return geom.Ray{}, false
	}
	far, ok := unproject(inv, ndcX, ndcY, 1)
	if !ok {
		return geom.Ray{}, false
	}
	return geom.NewRay(near, far)
}

func unproject(inv mgl64.Mat4, x, y, z float64) (mgl64.Vec3, bool) {
	p := inv.Mul4x1(mgl64.Vec4{x, y, z, 1})
	if p.W() == 0 {
		return mgl64.Vec3{}, false
	}
	return p.Vec3().Mul(1 / p.W()), true
}

// ScreenToWorld returns the point where the pointer ray meets GroundPlane.
// All failures wrap ErrNoIntersection.
func ScreenToWorld(view CameraView, px, py, width, height float64) (mgl64.Vec3, error) {
	ray, ok := ScreenRay(view.Camera, view.Transform, px, py, width, height)
	if !ok {
		return mgl64.Vec3{}, fmt.Errorf("%w: degenerate ray for %.0fx%.0f window", ErrNoIntersection, width, height)
	}
	t, err := ray.IntersectPlane(GroundPlane)
	if err != nil {
		return mgl64.Vec3{}, fmt.Errorf("%w: %w", ErrNoIntersection, err)
	}
	return ray.At(t), nil
}
