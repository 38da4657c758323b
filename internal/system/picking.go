package system

import (
	"errors"
	"time"

	"github.com/hoverpick/hoverpick/internal/core/ecs"
	"github.com/hoverpick/hoverpick/internal/core/event"
	coresys "github.com/hoverpick/hoverpick/internal/core/system"
	"github.com/hoverpick/hoverpick/internal/picking"
	"github.com/hoverpick/hoverpick/internal/world"
	"go.uber.org/zap"
)

// PickingSystem turns the pointer into a world point and a hovered entity,
// then publishes the result in State.Pick. Phase 3 (PostUpdate).
//
// A frame with no pointer, no camera or no ground intersection leaves
// Pick.Valid false; the previous slot text stays on screen.
type PickingSystem struct {
	state *world.State
	bus   *event.Bus
	log   *zap.Logger

	frame    uint64
	prevID   ecs.EntityID
	prevName string

	// last logged failure, so a persistent condition logs once
	lastErr error
}

func NewPickingSystem(state *world.State, bus *event.Bus, log *zap.Logger) *PickingSystem {
	return &PickingSystem{state: state, bus: bus, log: log}
}

func (s *PickingSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *PickingSystem) Update(_ time.Duration) {
	s.frame++
	pick := &s.state.Pick
	pick.Frame = s.frame
	pick.Valid = false

	ptr := s.state.Pointer
	if !ptr.Present {
		return
	}

	view, err := picking.ResolveCamera(s.state)
	if err != nil {
		s.fail(err)
		return
	}

	scr := s.state.Screen
	point, err := picking.ScreenToWorld(view, ptr.X, ptr.Y, scr.Width, scr.Height)
	if err != nil {
		s.fail(err)
		return
	}
	s.lastErr = nil

	hit := picking.HitTest(point, view.Transform.Translation, s.state, s.state.Sheets)
	if len(hit.Unresolved) > 0 {
		s.log.Debug("pickables skipped",
			zap.Error(picking.ErrUnresolvedSprite),
			zap.Int("count", len(hit.Unresolved)),
		)
	}

	pick.Valid = true
	pick.Point = point
	pick.Hit = hit.Found
	pick.Hovered = hit.Entity
	pick.Name = hit.Name

	if hit.Entity != s.prevID {
		event.Emit(s.bus, event.HoverChanged{
			Frame:  s.frame,
			PrevID: s.prevID,
			Prev:   s.prevName,
			NextID: hit.Entity,
			Next:   hit.Name,
			Point:  point,
		})
		s.prevID, s.prevName = hit.Entity, hit.Name
	}
}

func (s *PickingSystem) fail(err error) {
	if s.lastErr != nil && errors.Is(err, s.lastErr) {
		return
	}
	switch {
	case errors.Is(err, picking.ErrNoCamera):
		s.lastErr = picking.ErrNoCamera
	case errors.Is(err, picking.ErrNoIntersection):
		s.lastErr = picking.ErrNoIntersection
	default:
		s.lastErr = err
	}
	s.log.Debug("picking skipped", zap.Uint64("frame", s.frame), zap.Error(err))
}
