// Package geom holds the small amount of 3D geometry picking needs: rays,
// planes and axis-aligned rectangles. Vector math comes from mgl64.
package geom

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ParallelEpsilon is the smallest |n·d| treated as a real crossing.
const ParallelEpsilon = 1e-9

var (
	ErrParallel = errors.New("ray parallel to plane")
	ErrBehind   = errors.New("plane behind ray origin")
)

// Ray is a half-line. Direction is kept normalized by NewRay.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// NewRay builds a ray through two points. ok is false when they coincide.
func NewRay(from, to mgl64.Vec3) (Ray, bool) {
	dir := to.Sub(from)
	l := dir.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Ray{}, false
	}
	return Ray{Origin: from, Direction: dir.Mul(1 / l)}, true
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Plane is the set of points p with Normal·p = Dist.
type Plane struct {
	Normal mgl64.Vec3
	Dist   float64
}

// PlaneZ returns the horizontal plane Z = z.
func PlaneZ(z float64) Plane {
	return Plane{Normal: mgl64.Vec3{0, 0, 1}, Dist: z}
}

// IntersectPlane returns the distance along r where it meets p.
// Intersections behind the origin are rejected.
func (r Ray) IntersectPlane(p Plane) (float64, error) {
	denom := p.Normal.Dot(r.Direction)
	if math.Abs(denom) <= ParallelEpsilon {
		return 0, ErrParallel
	}
	t := (p.Dist - p.Normal.Dot(r.Origin)) / denom
	if t < 0 {
		return 0, ErrBehind
	}
	return t, nil
}
