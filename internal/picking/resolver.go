package picking

import (
	"github.com/hoverpick/hoverpick/internal/component"
	"github.com/hoverpick/hoverpick/internal/core/ecs"
)

// CameraSource is the narrow query surface the resolver needs.
type CameraSource interface {
	ActiveCamera() (ecs.EntityID, bool)
	Camera(id ecs.EntityID) (*component.Camera, *component.Transform, bool)
	FirstCamera() (ecs.EntityID, *component.Camera, *component.Transform, bool)
}

// CameraView is the camera chosen for one frame.
type CameraView struct {
	Entity    ecs.EntityID
	Camera    *component.Camera
	Transform *component.Transform
	Fallback  bool // true when the active reference was unset or stale
}

// ResolveCamera returns the active camera if it still has both components.
// Otherwise it falls back to the camera with the lowest entity id. The
// fallback is only a convenience for scenes with one camera; scenes with
// several should set the active reference explicitly.
func ResolveCamera(src CameraSource) (CameraView, error) {
	if id, ok := src.ActiveCamera(); ok {
		if cam, tf, ok := src.Camera(id); ok {
			return CameraView{Entity: id, Camera: cam, Transform: tf}, nil
		}
	}
	id, cam, tf, ok := src.FirstCamera()
	if !ok {
		return CameraView{}, ErrNoCamera
	}
	return CameraView{Entity: id, Camera: cam, Transform: tf, Fallback: true}, nil
}
