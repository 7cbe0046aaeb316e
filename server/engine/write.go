package engine

import (
	"io"

	"golang.org/x/sys/unix"
)

// Write sends all of p, short writes are retried
func (c *Conn) Write(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		w, err := unix.Write(c.fd, p[n:])
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return n, err
		}
		if w == 0 {
			return n, io.ErrShortWrite
		}
		n += w
	}
	return n, nil
}
