package server

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/s00inx/httpsink/server/engine"
	"github.com/s00inx/httpsink/server/protocol"
)

// State is how far handling of a connection got
type State uint8

const (
	StateStart State = iota
	StateRequestLine
	StateHeaders
	StateBodyExpected
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateRequestLine:
		return "request-line"
	case StateHeaders:
		return "headers"
	case StateBodyExpected:
		return "body"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

var ErrHandlerPanic = errors.New("handler panic")

// Handler owns one connection at a time: parse, give request to consumer, close.
// on success nothing is written back to the client
type Handler struct {
	Consumer Consumer
	Logger   *slog.Logger
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}

// Serve handles sess from first byte to close, sess is released on every path.
// returned error means the handling task died on something it could not recover from
func (h *Handler) Serve(sess *engine.Session) (err error) {
	defer sess.Release()
	defer func() {
		// consumer bugs stay inside this task
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()

	req, st, err := parse(protocol.NewHTTPParser(sess.R))
	if err == nil {
		if h.Consumer != nil {
			h.Consumer.Consume(sess.Remote, req)
		}
		return nil
	}

	if !protocol.Recoverable(err) {
		return fmt.Errorf("%s in %s: %w", StateFailed, st, err)
	}

	log := h.logger().With("remote", sess.Remote, "state", st)
	switch protocol.KindOf(err) {
	case protocol.KindTokenTooLong:
		// best-effort, client may be gone already.
		// unread request bytes are not drained: with no read deadline a drain
		// could block forever, so a peer still sending may see RST instead of FIN
		if _, werr := sess.Write(protocol.BadRequest); werr != nil {
			log.Debug("write bad request", "err", werr)
		}
		log.Warn("bad request", "err", err)
	default:
		log.Debug("client went away", "err", err)
	}
	return nil
}

var stageStates = [...]State{
	protocol.StageRequestLine: StateRequestLine,
	protocol.StageHeaders:     StateHeaders,
	protocol.StageBody:        StateBodyExpected,
}

// parse follows parser stages, on error returned state is the one that failed
func parse(p *protocol.HTTPParser) (*protocol.Request, State, error) {
	st := StateStart
	req, err := p.ParseStages(func(s protocol.Stage) {
		st = stageStates[s]
	})
	if err != nil {
		return nil, st, err
	}
	return req, StateDone, nil
}
