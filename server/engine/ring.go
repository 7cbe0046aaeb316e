package engine

import (
	"io"
	"syscall"

	"github.com/iceber/iouring-go"
)

// Ring is a shared io_uring instance for connection I/O,
// one per server, every RingConn submits into it
type Ring struct {
	iour *iouring.IOURing
}

func NewRing(entries uint) (*Ring, error) {
	iour, err := iouring.New(entries)
	if err != nil {
		return nil, err
	}
	return &Ring{iour: iour}, nil
}

func (r *Ring) Close() {
	r.iour.Close()
}

// Wrap makes c do its reads and writes through the ring,
// closing is still done by Conn
func (r *Ring) Wrap(c *Conn) *RingConn {
	return &RingConn{Conn: c, ring: r}
}

// RingConn is a Conn whose Read and Write are io_uring recv/send
type RingConn struct {
	*Conn
	ring *Ring
}

// submit waits for one recv/send completion.
// these ops have no resolver in iouring-go, the raw cqe result is the
// byte count or -errno
func (c *RingConn) submit(prep iouring.PrepRequest) (int, error) {
	req, err := c.ring.iour.SubmitRequest(prep, nil)
	if err != nil {
		return 0, err
	}
	<-req.Done()

	n, err := req.GetRes()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, syscall.Errno(-n)
	}
	return n, nil
}

func (c *RingConn) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n, err := c.submit(iouring.Recv(c.Fd(), p, 0))
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

func (c *RingConn) Write(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		w, err := c.submit(iouring.Send(c.Fd(), p[n:], 0))
		if err != nil {
			return n, err
		}
		if w <= 0 {
			return n, io.ErrShortWrite
		}
		n += w
	}
	return n, nil
}
