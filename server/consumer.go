package server

import (
	"log/slog"

	"golang.org/x/net/http/httpguts"

	"github.com/s00inx/httpsink/server/protocol"
)

// Consumer gets every fully parsed request, it must not keep req
// after Consume returns
type Consumer interface {
	Consume(remote string, req *protocol.Request)
}

// ConsumerFunc adapts a plain func to Consumer
type ConsumerFunc func(remote string, req *protocol.Request)

func (f ConsumerFunc) Consume(remote string, req *protocol.Request) {
	f(remote, req)
}

// LogConsumer writes requests to a logger and does nothing else.
// header names that are not valid tokens are only marked, never rejected
type LogConsumer struct {
	Logger *slog.Logger
}

func (c LogConsumer) Consume(remote string, req *protocol.Request) {
	log := c.Logger
	if log == nil {
		log = slog.Default()
	}

	log.Info("request",
		"remote", remote,
		"method", req.Method,
		"path", req.Path,
		"version", req.Version,
		"headers", req.Headers.Len(),
		"body", req.HasBody(),
		"body_len", len(req.Body),
	)

	for _, h := range req.Headers.All() {
		log.Info("header",
			"remote", remote,
			"name", h.Name,
			"value", h.Value,
			"valid", httpguts.ValidHeaderFieldName(h.Name),
		)
	}
}
