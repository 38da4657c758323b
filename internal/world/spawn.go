package world

import (
	"github.com/hoverpick/hoverpick/internal/component"
	"github.com/hoverpick/hoverpick/internal/core/ecs"
)

// SpawnCamera creates a camera entity.
func (s *State) SpawnCamera(cam component.Camera, tf component.Transform) ecs.EntityID {
	id := s.ECS.CreateEntity()
	s.Cameras.Set(id, &cam)
	s.Transforms.Set(id, &tf)
	return id
}

// SpawnPickable creates a named, sprite-bearing object.
func (s *State) SpawnPickable(name string, tf component.Transform, sprite component.SpriteRender) ecs.EntityID {
	id := s.ECS.CreateEntity()
	s.Transforms.Set(id, &tf)
	s.Sprites.Set(id, &sprite)
	s.Names.Set(id, &component.Named{Name: name})
	return id
}

// SpawnLight creates a light entity.
func (s *State) SpawnLight(light component.Light, tf component.Transform) ecs.EntityID {
	id := s.ECS.CreateEntity()
	s.Lights.Set(id, &light)
	s.Transforms.Set(id, &tf)
	return id
}

// SpawnUIText creates a text slot and indexes it by key. A second slot with
// the same key replaces the index entry.
func (s *State) SpawnUIText(key, text string, x, y int) ecs.EntityID {
	id := s.ECS.CreateEntity()
	s.UITexts.Set(id, &component.UIText{Key: key, Text: text, X: x, Y: y})
	s.UI.byKey[key] = id
	return id
}

// Destroy queues id for removal at the end of the frame.
func (s *State) Destroy(id ecs.EntityID) {
	if id == s.Active.entity {
		s.Active.Clear()
	}
	s.ECS.MarkForDestruction(id)
}
