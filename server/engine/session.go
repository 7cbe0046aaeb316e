package engine

import (
	"bufio"
	"io"
)

// Stream is what a session works over: Conn, RingConn or anything else in tests
type Stream interface {
	io.ReadWriteCloser
}

// Session is the per-connection owner of the stream and its read buffer.
// it lives for exactly one connection, Release ends it
type Session struct {
	Remote string
	R      *bufio.Reader

	s Stream
}

func NewSession(s Stream, remote string) *Session {
	return &Session{
		Remote: remote,
		R:      getReader(s),
		s:      s,
	}
}

// Write goes straight to the stream, there is no write buffering
func (s *Session) Write(p []byte) (int, error) {
	return s.s.Write(p)
}

// Release closes the stream and gives read buffer back to pool,
// session must not be used after that
func (s *Session) Release() error {
	if s.R != nil {
		putReader(s.R)
		s.R = nil
	}
	return s.s.Close()
}
