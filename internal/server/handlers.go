// Package server exposes HTTP handlers, including the WebSocket upgrade,
// health and stats endpoints, and the built-in test page.
package server

import (
	_ "embed"
	"errors"
	"net/http"

	"github.com/Tyrowin/relaychat/internal/chat"
	"github.com/gin-gonic/gin"
)

//go:embed testpage.html
var testPage []byte

// chatHandler upgrades the request and runs the connection until it ends.
// A failed upgrade has no effect on the hub; gorilla already replied.
func (s *Server) chatHandler(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("WebSocket upgrade failed", "addr", c.Request.RemoteAddr, "error", err)
		return
	}

	session := newWSSession(conn, c.Request.RemoteAddr, s.cfg, s.log)
	if err := s.hub.Serve(s.ctx, session); err != nil && !errors.Is(err, chat.ErrHubClosed) {
		s.log.Debug("Connection ended with error", "addr", session.RemoteAddr(), "error", err)
	}
}

// healthHandler provides a simple health check endpoint that returns server status.
func (s *Server) healthHandler(c *gin.Context) {
	c.String(http.StatusOK, "Relay chat server is running!")
}

type statsResponse struct {
	Clients int `json:"clients"`
	History int `json:"history"`
}

func (s *Server) statsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, statsResponse{
		Clients: s.hub.Clients(),
		History: len(s.hub.History()),
	})
}

// testPageHandler serves a small browser client for manual testing.
func (s *Server) testPageHandler(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", testPage)
}
