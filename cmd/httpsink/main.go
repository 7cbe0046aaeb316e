package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/netip"
	"os"

	"github.com/s00inx/httpsink/server"
)

func main() {
	cfg := server.DefaultConfig()

	addr := flag.String("addr", "0.0.0.0", "IPv4 address to listen on")
	flag.IntVar(&cfg.Port, "port", cfg.Port, "port to listen on")
	flag.BoolVar(&cfg.Ring, "ring", cfg.Ring, "do connection I/O through io_uring")
	flag.UintVar(&cfg.RingEntries, "ring-entries", cfg.RingEntries, "io_uring queue depth")
	level := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(*level)); err != nil {
		fmt.Fprintln(os.Stderr, "bad -log-level:", err)
		os.Exit(2)
	}
	cfg.Logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(cfg.Logger)

	ip, err := netip.ParseAddr(*addr)
	if err != nil || !ip.Is4() {
		fmt.Fprintf(os.Stderr, "bad -addr %q: want IPv4 address\n", *addr)
		os.Exit(2)
	}
	cfg.Addr = ip.As4()

	srv := server.New(cfg, nil)
	cfg.Logger.Info("starting", "addr", cfg.Address())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, server.ErrServerClosed) {
		cfg.Logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
