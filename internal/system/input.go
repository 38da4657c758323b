package system

import (
	"time"

	coresys "github.com/hoverpick/hoverpick/internal/core/system"
	"github.com/hoverpick/hoverpick/internal/net"
	"github.com/hoverpick/hoverpick/internal/net/packet"
	"go.uber.org/zap"
)

// SessionFeed is where new sessions come from. Closed sessions are noticed
// and dropped by InputSystem itself.
type SessionFeed interface {
	NewSessions() <-chan *net.Session
}

// InputSystem drains pointer-feed packets from every session and dispatches
// them through the registry. Phase 0 (Input).
type InputSystem struct {
	feed       SessionFeed
	registry   *packet.Registry
	store      *net.SessionStore
	maxPerTick int
	log        *zap.Logger
}

func NewInputSystem(feed SessionFeed, registry *packet.Registry, store *net.SessionStore, maxPerTick int, log *zap.Logger) *InputSystem {
	return &InputSystem{
		feed:       feed,
		registry:   registry,
		store:      store,
		maxPerTick: maxPerTick,
		log:        log,
	}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	for {
		select {
		case sess := <-s.feed.NewSessions():
			s.store.Add(sess)
		default:
			goto doneNew
		}
	}
doneNew:

	var closed []uint64
	s.store.ForEach(func(sess *net.Session) {
		s.drain(sess)
		if sess.IsClosed() {
			closed = append(closed, sess.ID)
		}
	})
	for _, id := range closed {
		s.log.Info("feed client disconnected", zap.Uint64("session", id))
		s.store.Remove(id)
	}
}

// drain dispatches up to maxPerTick queued packets. Packets that arrived
// before a disconnect are still applied.
func (s *InputSystem) drain(sess *net.Session) {
	for i := 0; i < s.maxPerTick; i++ {
		select {
		case data := <-sess.InQueue:
			if err := s.registry.Dispatch(sess, sess.State(), data); err != nil {
				s.log.Debug("packet dispatch error",
					zap.Uint64("session", sess.ID),
					zap.Error(err),
				)
			}
		default:
			return
		}
	}
}
