package protocol

import (
	"fmt"
	"io"
)

// bounds for tokens, line bound includes trailing \r
const (
	MaxMethodLen  = 10
	MaxPathLen    = 1024
	MaxVersionLen = 10
	MaxLineLen    = 1024
)

// ReadToken reads from r up to (and excluding) sep,
// sep itself is consumed but not returned.
// token of exactly max bytes is fine, one more byte before sep is ErrTokenTooLong
func ReadToken(r io.ByteReader, sep byte, max int) ([]byte, error) {
	tok := make([]byte, 0, min(max, 64))
	for {
		c, err := r.ReadByte()
		if err != nil {
			return nil, transportErr(err, ErrUnexpectedEOS)
		}
		if c == sep {
			return tok, nil
		}
		if len(tok) == max {
			return nil, fmt.Errorf("%w: limit %d", ErrTokenTooLong, max)
		}
		tok = append(tok, c)
	}
}

// discard exactly one byte, its value is not checked
func skipByte(r io.ByteReader) error {
	if _, err := r.ReadByte(); err != nil {
		return transportErr(err, ErrUnexpectedEOS)
	}
	return nil
}
