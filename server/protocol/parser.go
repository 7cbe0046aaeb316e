// read bytes from a connection and build Request from them
// only parser logic, no I/O decisions
package protocol

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// Reader is what parser needs from a connection: bytes one by one for tokens
// and bulk reads for the body
type Reader interface {
	io.Reader
	io.ByteReader
}

// HTTPParser reads exactly one request from r,
// it is cheap and should be created per connection
type HTTPParser struct {
	r Reader
}

func NewHTTPParser(r Reader) *HTTPParser {
	return &HTTPParser{r: r}
}

// Stage is the part of a request the parser is reading
type Stage uint8

const (
	StageRequestLine Stage = iota
	StageHeaders
	StageBody
)

// Parse runs all stages and returns a complete Request
func (p *HTTPParser) Parse() (*Request, error) {
	return p.ParseStages(nil)
}

// ParseStages is Parse that calls enter before every stage it runs.
// body stage is skipped when no body is declared
func (p *HTTPParser) ParseStages(enter func(Stage)) (*Request, error) {
	req := &Request{}
	run := func(s Stage, f func(*Request) error) error {
		if enter != nil {
			enter(s)
		}
		return f(req)
	}

	if err := run(StageRequestLine, p.ParseRequestLine); err != nil {
		return nil, err
	}
	if err := run(StageHeaders, p.ParseHeaders); err != nil {
		return nil, err
	}
	if DeclaredLength(req) > 0 {
		if err := run(StageBody, p.ParseBody); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// ParseRequestLine reads "<method> <path> <version>\r\n".
// tokens are not validated, unknown methods are fine
func (p *HTTPParser) ParseRequestLine(req *Request) error {
	method, err := ReadToken(p.r, ' ', MaxMethodLen)
	if err != nil {
		return fmt.Errorf("read method: %w", err)
	}
	path, err := ReadToken(p.r, ' ', MaxPathLen)
	if err != nil {
		return fmt.Errorf("read path: %w", err)
	}
	version, err := ReadToken(p.r, '\r', MaxVersionLen)
	if err != nil {
		return fmt.Errorf("read version: %w", err)
	}
	// the \n after version
	if err := skipByte(p.r); err != nil {
		return fmt.Errorf("read version: %w", err)
	}

	req.Method = string(method)
	req.Path = string(path)
	req.Version = string(version)
	return nil
}

// ParseHeaders reads header lines until a line without a colon.
// blank line and any other colon-free line both end the section
func (p *HTTPParser) ParseHeaders(req *Request) error {
	for {
		line, err := ReadToken(p.r, '\n', MaxLineLen)
		if err != nil {
			return fmt.Errorf("read header: %w", err)
		}

		name, value, ok := splitHeader(line)
		if !ok {
			return nil
		}
		req.Headers.Add(name, value)
	}
}

// splitHeader cuts line at the first colon.
// value starts 2 bytes after colon (exactly one space is assumed)
// and ends before the last byte of the line (assumed \r)
func splitHeader(line []byte) (string, string, bool) {
	coloni := bytes.IndexByte(line, ':')
	if coloni == -1 {
		return "", "", false
	}

	vals, vale := coloni+2, len(line)-1
	if vals > vale {
		// "name:\r" and alike, nothing to slice
		vals = vale
	}
	return string(line[:coloni]), string(line[vals:vale]), true
}

// ParseBody reads exactly content-length bytes, if header is absent,
// malformed or zero there is no body and no error
func (p *HTTPParser) ParseBody(req *Request) error {
	n := DeclaredLength(req)
	if n == 0 {
		return nil
	}

	// declared length is untrusted, buffer grows with what actually arrives
	var body bytes.Buffer
	body.Grow(min(n, bodyChunk))
	if _, err := io.CopyN(&body, p.r, int64(n)); err != nil {
		return fmt.Errorf("read body: %w", transportErr(err, ErrConnectionClosed))
	}
	req.Body = body.Bytes()
	return nil
}

// initial body allocation cap
const bodyChunk = 64 << 10

// DeclaredLength is the body length announced by headers,
// malformed length is treated exactly as no length
func DeclaredLength(req *Request) int {
	v, ok := req.Headers.Get("content-length")
	if !ok {
		return 0
	}

	n, err := strconv.ParseUint(v, 10, strconv.IntSize-1)
	if err != nil {
		return 0
	}
	return int(n)
}
