package picking

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hoverpick/hoverpick/internal/component"
	"github.com/hoverpick/hoverpick/internal/core/ecs"
	"github.com/hoverpick/hoverpick/internal/geom"
)

// PickableSource iterates entities with Transform, SpriteRender and Named.
type PickableSource interface {
	EachPickable(fn func(ecs.EntityID, *component.Transform, *component.SpriteRender, *component.Named))
}

// SpriteResolver looks up a sprite's size in world units.
type SpriteResolver interface {
	Resolve(sheet component.SheetHandle, index int) (w, h float64, ok bool)
}

// HitResult is the outcome of one hit-test pass.
type HitResult struct {
	Entity ecs.EntityID
	Name   string
	Found  bool

	// Unresolved lists candidates skipped because their sprite is not loaded.
	Unresolved []ecs.EntityID
}

// HitTest finds the named sprite whose box strictly contains point's X/Y.
// Boxes are centered on the translation with the sprite's width and height;
// rotation, scale and Z are ignored. When boxes overlap, the entity whose
// translation is nearest to eye wins, then the lowest entity id.
func HitTest(point, eye mgl64.Vec3, src PickableSource, sheets SpriteResolver) HitResult {
	var res HitResult
	best := 0.0
	src.EachPickable(func(id ecs.EntityID, tf *component.Transform, sr *component.SpriteRender, n *component.Named) {
		w, h, ok := sheets.Resolve(sr.Sheet, sr.Index)
		if !ok {
			res.Unresolved = append(res.Unresolved, id)
			return
		}
		box := geom.CenteredRect(tf.Translation.X(), tf.Translation.Y(), w, h)
		if !box.ContainsStrict(point.X(), point.Y()) {
			return
		}
		d := tf.Translation.Sub(eye).Len()
		if !res.Found || d < best || (d == best && id < res.Entity) {
			res.Entity, res.Name, res.Found = id, n.Name, true
			best = d
		}
	})
	return res
}
