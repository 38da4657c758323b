package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is an entity's placement in world space. There is no hierarchy,
// so local and global are the same.
type Transform struct {
	Translation mgl64.Vec3
	Rotation    mgl64.Quat
	Scale       mgl64.Vec3
}

// NewTransform returns an identity transform at the given position.
func NewTransform(x, y, z float64) Transform {
	return Transform{
		Translation: mgl64.Vec3{x, y, z},
		Rotation:    mgl64.QuatIdent(),
		Scale:       mgl64.Vec3{1, 1, 1},
	}
}

// SetRotationEuler sets rotation from roll (x), pitch (y) and yaw (z) in
// radians, applied in x, then y, then z order.
func (t *Transform) SetRotationEuler(x, y, z float64) {
	qx := mgl64.QuatRotate(x, mgl64.Vec3{1, 0, 0})
	qy := mgl64.QuatRotate(y, mgl64.Vec3{0, 1, 0})
	qz := mgl64.QuatRotate(z, mgl64.Vec3{0, 0, 1})
	t.Rotation = qz.Mul(qy).Mul(qx).Normalize()
}

// Matrix returns translation · rotation · scale.
func (t *Transform) Matrix() mgl64.Mat4 {
	tr := mgl64.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z())
	sc := mgl64.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return tr.Mul4(t.Rotation.Mat4()).Mul4(sc)
}
