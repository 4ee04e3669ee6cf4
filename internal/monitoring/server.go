package monitoring

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Server exposes a Monitor over HTTP
type Server struct {
	router *gin.Engine
	server *http.Server
}

// NewServer creates a metrics server listening on addr with the metrics at path
func NewServer(addr, path string, m *Monitor) *Server {
	if path == "" {
		path = "/metrics"
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET(path, gin.WrapH(m.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return &Server{
		router: router,
		server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Router returns the Gin router
func (s *Server) Router() *gin.Engine {
	return s.router
}

// ListenAndServe blocks until the server stops. A graceful shutdown is not an error.
func (s *Server) ListenAndServe() error {
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight scrapes until ctx expires
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
