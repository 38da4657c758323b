package system

import (
	"time"

	coresys "github.com/hoverpick/hoverpick/internal/core/system"
	"github.com/hoverpick/hoverpick/internal/picking"
	"github.com/hoverpick/hoverpick/internal/world"
	"go.uber.org/zap"
)

// FeedbackSystem writes the frame's pick into the UI slots. Phase 4 (Output).
type FeedbackSystem struct {
	state *world.State
	log   *zap.Logger

	warned bool
}

func NewFeedbackSystem(state *world.State, log *zap.Logger) *FeedbackSystem {
	return &FeedbackSystem{state: state, log: log}
}

func (s *FeedbackSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *FeedbackSystem) Update(_ time.Duration) {
	pick := s.state.Pick
	if !pick.Valid {
		return
	}
	hit := picking.HitResult{Entity: pick.Hovered, Name: pick.Name, Found: pick.Hit}
	if n := picking.WriteFeedback(s.state.UI, pick.Point, hit); n < 2 && !s.warned {
		s.log.Debug("ui slots not ready", zap.Int("written", n))
		s.warned = true
	}
}
