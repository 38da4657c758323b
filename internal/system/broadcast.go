package system

import (
	"time"

	"github.com/hoverpick/hoverpick/internal/component"
	"github.com/hoverpick/hoverpick/internal/core/ecs"
	coresys "github.com/hoverpick/hoverpick/internal/core/system"
	"github.com/hoverpick/hoverpick/internal/handler"
	"github.com/hoverpick/hoverpick/internal/net"
	"github.com/hoverpick/hoverpick/internal/net/packet"
	"github.com/hoverpick/hoverpick/internal/world"
)

// BroadcastSystem sends UI_TEXT to every ready feed client when a slot's
// text changes, then flushes all session output. Phase 4 (Output), after
// FeedbackSystem.
type BroadcastSystem struct {
	state *world.State
	store *net.SessionStore
	sent  map[ecs.EntityID]uint64 // slot → last broadcast Version
}

func NewBroadcastSystem(state *world.State, store *net.SessionStore) *BroadcastSystem {
	return &BroadcastSystem{
		state: state,
		store: store,
		sent:  make(map[ecs.EntityID]uint64),
	}
}

func (s *BroadcastSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *BroadcastSystem) Update(_ time.Duration) {
	s.state.UITexts.Each(func(id ecs.EntityID, t *component.UIText) {
		if v, ok := s.sent[id]; ok && v == t.Version {
			return
		}
		s.sent[id] = t.Version
		s.store.ForEach(func(sess *net.Session) {
			if sess.State() == packet.StateReady {
				handler.SendUIText(sess, t.Key, t.Text)
			}
		})
	})
	for id := range s.sent {
		if !s.state.UITexts.Has(id) {
			delete(s.sent, id)
		}
	}

	s.store.ForEach(func(sess *net.Session) {
		sess.FlushOutput()
	})
}
