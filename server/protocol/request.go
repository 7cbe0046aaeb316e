package protocol

import "strings"

// Request is one parsed request, it owns all of its fields
// (nothing refers to connection buffers) and lives as long as the connection handling
type Request struct {
	Method  string
	Path    string
	Version string

	Headers Headers
	Body    []byte // nil means no body
}

// Header is a single folded header, Name is always lowercase
type Header struct {
	Name, Value string
}

// Headers keeps lowercase names in order of first appearance,
// repeated names are folded into one entry
type Headers struct {
	list  []Header
	index map[string]int // name -> position in list
}

// Add folds name/value into h, name is lowercased.
// existing name keeps its position and gets "," + value appended
func (h *Headers) Add(name, value string) {
	name = strings.ToLower(name)
	if i, ok := h.index[name]; ok {
		h.list[i].Value += "," + value
		return
	}

	if h.index == nil {
		h.index = make(map[string]int)
	}
	h.index[name] = len(h.list)
	h.list = append(h.list, Header{Name: name, Value: value})
}

// Get looks up name case-insensitively
func (h *Headers) Get(name string) (string, bool) {
	i, ok := h.index[strings.ToLower(name)]
	if !ok {
		return "", false
	}
	return h.list[i].Value, true
}

func (h *Headers) Len() int {
	return len(h.list)
}

// All returns headers in arrival order, callers must not modify it
func (h *Headers) All() []Header {
	return h.list
}

// Header is a shortcut for r.Headers.Get
func (r *Request) Header(name string) string {
	v, _ := r.Headers.Get(name)
	return v
}

func (r *Request) HasBody() bool {
	return r.Body != nil
}

// ContentLength is the resolved body length, 0 if header is absent or malformed
func (r *Request) ContentLength() int {
	return len(r.Body)
}
