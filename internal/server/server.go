// Package server constructs and starts the relay's HTTP service: the
// WebSocket upgrade in front of the chat hub plus a few operational routes.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Tyrowin/relaychat/internal/chat"
	"github.com/gorilla/websocket"
)

// Server owns the hub and the HTTP listener in front of it.
type Server struct {
	cfg      Config
	log      *slog.Logger
	hub      *chat.Hub
	origins  *originPolicy
	upgrader websocket.Upgrader
	http     *http.Server

	// ctx outlives individual requests; handlers run under it after the upgrade.
	ctx    context.Context
	cancel context.CancelFunc
}

// New builds a server for cfg. Nothing listens until ListenAndServe.
func New(cfg Config, log *slog.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:     cfg,
		log:     log,
		hub:     chat.NewHub(log, chat.WithQueueLimit(cfg.QueueLimit)),
		origins: newOriginPolicy(cfg.AllowedOrigins, log),
		ctx:     ctx,
		cancel:  cancel,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.origins.check,
	}
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	return s
}

// Hub returns the chat hub served by s.
func (s *Server) Hub() *chat.Hub {
	return s.hub
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.http.Addr
}

// ListenAndServe blocks until the listener fails or Shutdown is called,
// in which case it returns nil.
func (s *Server) ListenAndServe() error {
	s.log.Info("Server listening", "addr", s.cfg.Addr, "path", s.cfg.Path)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections, then disconnects every chat client.
// Upgraded connections are hijacked, so the HTTP shutdown does not wait for
// them; the hub does.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.log.Info("Shutting down HTTP server...")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	httpErr := s.http.Shutdown(ctx)
	if httpErr != nil {
		s.log.Error("HTTP server shutdown error", "error", httpErr)
	}

	hubErr := s.hub.Shutdown(timeout)
	s.cancel()

	return errors.Join(httpErr, hubErr)
}
