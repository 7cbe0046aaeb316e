package engine

import (
	"io"
	"net/netip"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// Conn is one accepted client socket in blocking mode,
// reads and writes block the calling goroutine (and its thread)
type Conn struct {
	fd     int
	remote string
	closed atomic.Bool
}

func newConn(fd int, sa unix.Sockaddr) *Conn {
	return &Conn{fd: fd, remote: sockaddrString(sa)}
}

func sockaddrString(sa unix.Sockaddr) string {
	switch a := sa.(type) {
	case *unix.SockaddrInet4:
		return netip.AddrPortFrom(netip.AddrFrom4(a.Addr), uint16(a.Port)).String()
	case *unix.SockaddrInet6:
		return netip.AddrPortFrom(netip.AddrFrom16(a.Addr), uint16(a.Port)).String()
	case *unix.SockaddrUnix:
		return a.Name
	}
	return ""
}

func (c *Conn) Fd() int {
	return c.fd
}

func (c *Conn) RemoteAddr() string {
	return c.remote
}

// Read returns io.EOF when peer closed its side
func (c *Conn) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for {
		n, err := unix.Read(c.fd, p)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, err
		}
		if n == 0 {
			return 0, io.EOF
		}
		return n, nil
	}
}

func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return unix.Close(c.fd)
}
