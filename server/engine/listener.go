// file with socket creating and accept loop primitives
// only low level socket functional, no HTTP logic
package engine

import (
	"errors"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

const (
	backlog = 128 // backlog for listening
)

var ErrListenerClosed = errors.New("listener closed")

// Listener is a blocking IPv4 stream socket
type Listener struct {
	fd     int
	port   int
	closed atomic.Bool
}

// Listen creates new socket, binds it to addr:port and starts listening.
// port 0 picks a free port, see Port
func Listen(addr [4]byte, port int) (*Listener, error) {
	// SOCK_STREAM = TCP
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, err
	}

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return nil, err
	}
	if err := unix.Bind(fd, &unix.SockaddrInet4{ // bind socket to addr:port
		Port: port,
		Addr: addr,
	}); err != nil {
		unix.Close(fd)
		return nil, err
	}
	if err := unix.Listen(fd, backlog); err != nil { // start listening on addr:port
		unix.Close(fd)
		return nil, err
	}

	sa, err := unix.Getsockname(fd)
	if err != nil {
		unix.Close(fd)
		return nil, err
	}
	if sa4, ok := sa.(*unix.SockaddrInet4); ok {
		port = sa4.Port
	}

	return &Listener{fd: fd, port: port}, nil
}

// Port is the bound port, useful when Listen got 0
func (l *Listener) Port() int {
	return l.port
}

// Accept blocks until new client connects
func (l *Listener) Accept() (*Conn, error) {
	for {
		nfd, sa, err := unix.Accept4(l.fd, unix.SOCK_CLOEXEC) // new descriptor for new client
		if err != nil {
			if l.closed.Load() {
				return nil, ErrListenerClosed
			}
			// client gave up before we got to it, or signal
			if err == unix.EINTR || err == unix.ECONNABORTED {
				continue
			}
			return nil, err
		}
		return newConn(nfd, sa), nil
	}
}

// Close stops listening, blocked Accept returns ErrListenerClosed.
// accepted connections are not touched
func (l *Listener) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}
	// shutdown wakes up accept blocked in another thread, close alone does not
	unix.Shutdown(l.fd, unix.SHUT_RDWR)
	return unix.Close(l.fd)
}
