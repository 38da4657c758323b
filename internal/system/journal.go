package system

import (
	"context"
	"time"

	"github.com/hoverpick/hoverpick/internal/core/event"
	coresys "github.com/hoverpick/hoverpick/internal/core/system"
	"github.com/hoverpick/hoverpick/internal/persist"
	"github.com/hoverpick/hoverpick/internal/world"
	"go.uber.org/zap"
)

// JournalSystem buffers hover transitions and writes them to the journal
// every interval frames. Phase 5 (Persist).
type JournalSystem struct {
	writer    persist.JournalWriter
	state     *world.State
	log       *zap.Logger
	buf       []persist.JournalEntry
	maxBuf    int
	tickCount int
	interval  int
}

func NewJournalSystem(w persist.JournalWriter, state *world.State, bus *event.Bus, log *zap.Logger, intervalTicks, maxBuffered int) *JournalSystem {
	s := &JournalSystem{
		writer:   w,
		state:    state,
		log:      log,
		maxBuf:   maxBuffered,
		interval: intervalTicks,
	}
	event.Subscribe(bus, s.onHoverChanged)
	return s
}

func (s *JournalSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *JournalSystem) onHoverChanged(e event.HoverChanged) {
	cam := ""
	if id, ok := s.state.ActiveCamera(); ok {
		cam = s.state.CameraName(id)
	}
	s.buf = append(s.buf, persist.JournalEntry{
		Frame:  e.Frame,
		Prev:   e.Prev,
		Next:   e.Next,
		WorldX: e.Point.X(),
		WorldY: e.Point.Y(),
		Camera: cam,
	})
	if s.maxBuf > 0 && len(s.buf) > s.maxBuf {
		dropped := len(s.buf) - s.maxBuf
		s.buf = append(s.buf[:0], s.buf[dropped:]...)
		s.log.Warn("hover journal backlog trimmed", zap.Int("dropped", dropped))
	}
}

func (s *JournalSystem) Update(_ time.Duration) {
	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0
	s.Flush()
}

// Flush writes everything buffered. Also called on shutdown. A failed
// batch stays buffered for the next attempt.
func (s *JournalSystem) Flush() {
	if len(s.buf) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.writer.WriteBatch(ctx, s.buf); err != nil {
		s.log.Error("hover journal flush failed", zap.Int("pending", len(s.buf)), zap.Error(err))
		return
	}
	s.log.Debug("hover journal flushed", zap.Int("entries", len(s.buf)))
	s.buf = s.buf[:0]
}

// Pending returns the number of buffered entries.
func (s *JournalSystem) Pending() int { return len(s.buf) }
