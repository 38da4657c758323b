package net

import (
	"net"
	"sync/atomic"
	"time"

	"github.com/hoverpick/hoverpick/internal/config"
	"go.uber.org/zap"
)

// Server accepts pointer-feed connections. New sessions reach the frame
// loop through a channel.
type Server struct {
	listener net.Listener
	nextID   atomic.Uint64
	newConns chan *Session
	cfg      config.NetworkConfig
	log      *zap.Logger
	closeCh  chan struct{}
}

func NewServer(cfg config.NetworkConfig, log *zap.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", cfg.BindAddress)
	if err != nil {
		return nil, err
	}
	return newServer(ln, cfg, log), nil
}

func newServer(ln net.Listener, cfg config.NetworkConfig, log *zap.Logger) *Server {
	return &Server{
		listener: ln,
		newConns: make(chan *Session, 64),
		cfg:      cfg,
		log:      log,
		closeCh:  make(chan struct{}),
	}
}

const maxAcceptDelay = time.Second

// AcceptLoop runs in its own goroutine until Shutdown. Repeated accept
// errors back off from 5ms up to maxAcceptDelay.
func (s *Server) AcceptLoop() {
	var delay time.Duration
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.closeCh:
				return
			default:
			}
			if delay == 0 {
				delay = 5 * time.Millisecond
			} else {
				delay *= 2
			}
			if delay > maxAcceptDelay {
				delay = maxAcceptDelay
			}
			s.log.Error("accept failed", zap.Error(err), zap.Duration("retry_in", delay))
			select {
			case <-s.closeCh:
				return
			case <-time.After(delay):
			}
			continue
		}
		delay = 0
		s.adopt(conn)
	}
}

func (s *Server) adopt(conn net.Conn) {
	id := s.nextID.Add(1)
	sess := NewSession(conn, id, s.cfg.InQueueSize, s.cfg.OutQueueSize, s.cfg.PacketsPerSecond, s.log)
	sess.SetWriteTimeout(s.cfg.WriteTimeout)
	sess.Start()

	s.log.Info("feed client connected", zap.Uint64("session", id), zap.String("ip", sess.IP))

	select {
	case s.newConns <- sess:
	default:
		s.log.Warn("connection queue full, rejecting client")
		sess.Close()
	}
}

func (s *Server) NewSessions() <-chan *Session {
	return s.newConns
}

// Shutdown stops accepting new connections.
func (s *Server) Shutdown() {
	close(s.closeCh)
	s.listener.Close()
}

func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}
