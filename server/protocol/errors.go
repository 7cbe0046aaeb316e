package protocol

import (
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
)

// errors for parsing
var (
	ErrTokenTooLong     = errors.New("token too long")
	ErrUnexpectedEOS    = errors.New("unexpected end of stream")
	ErrConnectionClosed = errors.New("connection closed")
)

// Kind is a closed set of parser failure classes,
// everything that is not recoverable by the handler is KindUnexpected
type Kind uint8

const (
	KindUnexpected Kind = iota
	KindTokenTooLong
	KindEndOfStream
	KindConnectionClosed
)

func (k Kind) String() string {
	switch k {
	case KindTokenTooLong:
		return "token too long"
	case KindEndOfStream:
		return "end of stream"
	case KindConnectionClosed:
		return "connection closed"
	default:
		return "unexpected"
	}
}

// KindOf classifies err, nil is reported as KindUnexpected
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrTokenTooLong):
		return KindTokenTooLong
	case errors.Is(err, ErrUnexpectedEOS):
		return KindEndOfStream
	case errors.Is(err, ErrConnectionClosed):
		return KindConnectionClosed
	}
	return KindUnexpected
}

// Recoverable reports whether the handler can deal with err by itself
func Recoverable(err error) bool {
	return err != nil && KindOf(err) != KindUnexpected
}

// isDisconnect reports transport errors that mean the peer is gone
func isDisconnect(err error) bool {
	return errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.ECONNABORTED) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, io.ErrClosedPipe)
}

// transportErr maps a raw read error, eof is what the caller decides EOF means
func transportErr(err, eof error) error {
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: %w", eof, err)
	case isDisconnect(err):
		return fmt.Errorf("%w: %w", ErrConnectionClosed, err)
	}
	return err
}
