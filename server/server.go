package server

import (
	"errors"
	"sync"
	"time"

	"github.com/s00inx/httpsink/server/engine"
)

// New(cfg, c)         - server with config and request consumer
// ListenAndServe()    - bind cfg address and run accept loop
// Serve(ln)           - run accept loop on already bound listener
// Close()             - stop accepting, in-flight connections are left alone

var ErrServerClosed = errors.New("server closed")

type Server struct {
	cfg Config
	h   *Handler

	mu   sync.Mutex
	ln   *engine.Listener
	ring *engine.Ring
	done bool
}

// New makes a server, nil consumer means LogConsumer on cfg logger
func New(cfg Config, c Consumer) *Server {
	if c == nil {
		c = LogConsumer{Logger: cfg.Logger}
	}
	return &Server{
		cfg: cfg,
		h:   &Handler{Consumer: c, Logger: cfg.Logger},
	}
}

func (s *Server) ListenAndServe() error {
	ln, err := engine.Listen(s.cfg.Addr, s.cfg.Port)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections from ln until Close and starts one detached
// goroutine per connection, it never waits for them
func (s *Server) Serve(ln *engine.Listener) error {
	log := s.cfg.logger()

	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		ln.Close()
		return ErrServerClosed
	}
	s.ln = ln
	if s.cfg.Ring && s.ring == nil {
		ring, err := engine.NewRing(s.cfg.RingEntries)
		if err != nil {
			s.mu.Unlock()
			ln.Close()
			return err
		}
		s.ring = ring
	}
	s.mu.Unlock()

	log.Info("listening", "port", ln.Port(), "ring", s.ring != nil)

	var delay time.Duration // how long to sleep on accept failure
	for {
		c, err := ln.Accept()
		if err != nil {
			if errors.Is(err, engine.ErrListenerClosed) {
				return ErrServerClosed
			}

			// e.g. out of fds, back off so we don't spin
			if delay == 0 {
				delay = 5 * time.Millisecond
			} else {
				delay = min(2*delay, time.Second)
			}
			log.Error("accept", "err", err, "retry_in", delay)
			time.Sleep(delay)
			continue
		}
		delay = 0

		go s.serveConn(c)
	}
}

func (s *Server) serveConn(c *engine.Conn) {
	var st engine.Stream = c
	if s.ring != nil {
		st = s.ring.Wrap(c)
	}

	sess := engine.NewSession(st, c.RemoteAddr())
	if err := s.h.Serve(sess); err != nil {
		s.cfg.logger().Error("connection handler terminated", "remote", c.RemoteAddr(), "err", err)
	}
}

// Close stops the accept loop. connections already accepted keep running,
// with ring enabled their pending I/O fails once the ring is gone
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return nil
	}
	s.done = true

	var err error
	if s.ln != nil {
		err = s.ln.Close()
	}
	if s.ring != nil {
		s.ring.Close()
	}
	return err
}
