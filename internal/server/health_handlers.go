package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to KhetiAI Backend API",
		"version": s.version,
		"status":  "healthy",
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"service":     s.cfg.App.Name,
		"version":     s.version,
		"environment": s.cfg.App.Environment,
	})
}

func (s *Server) handleHealthDetailed(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"service":      s.cfg.App.Name,
		"version":      s.version,
		"environment":  s.cfg.App.Environment,
		"debug":        s.cfg.App.Debug,
		"cors_origins": s.cfg.Server.AllowedOrigins,
		"collaborators": gin.H{
			"chat":        s.chat != nil,
			"vision":      s.analyzer != nil,
			"transcriber": s.transcriber != nil,
			"synthesizer": s.synthesizer != nil,
		},
	})
}
