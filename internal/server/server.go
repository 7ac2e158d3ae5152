// Package server exposes the research and posting pipelines over HTTP.
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mwarner-dev/postpilot/internal/config"
)

// New assembles the gin engine and wraps it in an http.Server ready to
// listen on the configured address.
func New(cfg config.ServerConfig, h *Handler, logger *zap.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger.Named("http")))
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	h.RegisterRoutes(r)

	return &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}
}

// requestLogger emits one structured log line per request.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Info("Request handled.",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
		)
	}
}
