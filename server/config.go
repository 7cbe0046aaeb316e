package server

import (
	"log/slog"
	"net/netip"
	"strconv"
)

// Config is everything the server can be told from outside,
// token limits are not here on purpose, they are protocol constants
type Config struct {
	Addr [4]byte
	Port int

	Ring        bool // do connection I/O through io_uring
	RingEntries uint

	Logger *slog.Logger
}

// DefaultConfig listens on all interfaces, port 8080, plain blocking I/O
func DefaultConfig() Config {
	return Config{
		Addr:        [4]byte{0, 0, 0, 0},
		Port:        8080,
		RingEntries: 32,
	}
}

func (c Config) Address() string {
	return netip.AddrFrom4(c.Addr).String() + ":" + strconv.Itoa(c.Port)
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
