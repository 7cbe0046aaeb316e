// buffered readers for connections
package engine

import (
	"bufio"
	"io"
	"sync"
)

const (
	readBufSize = 4096
)

// pool for connection readers, so every new connection
// doesn't alloc its own read buffer
var readerPool = sync.Pool{
	New: func() any {
		return bufio.NewReaderSize(nil, readBufSize)
	},
}

func getReader(r io.Reader) *bufio.Reader {
	br := readerPool.Get().(*bufio.Reader)
	br.Reset(r)
	return br
}

// clear reader before put it to pool so it doesn't keep conn alive
func putReader(br *bufio.Reader) {
	br.Reset(nil)
	readerPool.Put(br)
}
