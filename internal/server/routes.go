// Package server wires HTTP handlers into a gin router.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Routes returns the HTTP handler with every route of the service.
// Non-GET requests on a known path get 405.
func (s *Server) Routes() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.HandleMethodNotAllowed = true
	router.NoMethod(methodNotAllowed)

	router.GET("/", s.healthHandler)
	router.GET("/stats", s.statsHandler)
	router.GET("/test", s.testPageHandler)
	router.GET(s.cfg.Path, s.chatHandler)
	return router
}

func methodNotAllowed(c *gin.Context) {
	c.String(http.StatusMethodNotAllowed, "Method not allowed.")
}
