package world

import (
	"github.com/hoverpick/hoverpick/internal/component"
	"github.com/hoverpick/hoverpick/internal/core/ecs"
)

// State is the scene as the frame loop sees it: the ECS world, one typed
// store per component kind, and the singleton resources the picking core
// reads. Accessed only from the game loop goroutine, so no locks.
type State struct {
	ECS *ecs.World

	Transforms *ecs.PtrComponentStore[component.Transform]
	Cameras    *ecs.PtrComponentStore[component.Camera]
	Sprites    *ecs.PtrComponentStore[component.SpriteRender]
	Names      *ecs.PtrComponentStore[component.Named]
	Lights     *ecs.PtrComponentStore[component.Light]
	UITexts    *ecs.PtrComponentStore[component.UIText]

	Active  ActiveCamera
	Screen  ScreenDimensions
	Pointer Pointer
	Pick    PickResult

	Sheets *SpriteSheets
	UI     *UIFinder
}

func NewState() *State {
	w := ecs.NewWorld()
	reg := w.Registry()
	s := &State{
		ECS:        w,
		Transforms: ecs.NewStore[component.Transform](reg),
		Cameras:    ecs.NewStore[component.Camera](reg),
		Sprites:    ecs.NewStore[component.SpriteRender](reg),
		Names:      ecs.NewStore[component.Named](reg),
		Lights:     ecs.NewStore[component.Light](reg),
		UITexts:    ecs.NewStore[component.UIText](reg),
		Sheets:     NewSpriteSheets(),
	}
	s.UI = newUIFinder(s.UITexts)
	reg.Register(s.UI)
	return s
}

// ── Picking query surface ─────────────────────────────────────────

// ActiveCamera returns the active camera reference, if one is set.
func (s *State) ActiveCamera() (ecs.EntityID, bool) {
	return s.Active.Get()
}

// Camera returns the camera components of id if it has both.
func (s *State) Camera(id ecs.EntityID) (*component.Camera, *component.Transform, bool) {
	if !s.ECS.Alive(id) {
		return nil, nil, false
	}
	return ecs.Get2(s.Cameras, s.Transforms, id)
}

// FirstCamera returns the (Camera, Transform) pair with the lowest entity id.
func (s *State) FirstCamera() (ecs.EntityID, *component.Camera, *component.Transform, bool) {
	return ecs.First2(s.Cameras, s.Transforms)
}

// EachPickable visits every entity carrying Transform, SpriteRender and Named.
func (s *State) EachPickable(fn func(ecs.EntityID, *component.Transform, *component.SpriteRender, *component.Named)) {
	ecs.Each3(s.Transforms, s.Sprites, s.Names, fn)
}

// CameraByName finds a camera entity by its Camera.Name.
func (s *State) CameraByName(name string) (ecs.EntityID, bool) {
	var found ecs.EntityID
	ok := false
	ecs.Each2(s.Cameras, s.Transforms, func(id ecs.EntityID, c *component.Camera, _ *component.Transform) {
		if !ok && c.Name == name {
			found, ok = id, true
		}
	})
	return found, ok
}

// CameraName returns the Name of a camera entity, or "" if it is not one.
func (s *State) CameraName(id ecs.EntityID) string {
	if c, ok := s.Cameras.Get(id); ok {
		return c.Name
	}
	return ""
}
