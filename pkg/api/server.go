// Package api provides the chirpd HTTP server and router.
package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/chirpnet/chirpd/internal/logger"
	apiMiddleware "github.com/chirpnet/chirpd/pkg/api/middleware"
	"github.com/chirpnet/chirpd/pkg/config"
	"github.com/chirpnet/chirpd/pkg/media"
	"github.com/chirpnet/chirpd/pkg/store"
)

// Server provides the HTTP server for the REST API.
//
// The server exposes health check endpoints, the microblog API and the
// media upload endpoint.
//
// Endpoints:
//   - GET /health: Liveness probe
//   - GET /health/ready: Readiness probe
//   - GET /metrics: Prometheus metrics (404 while disabled)
//   - /api/users/*: Profiles and follow edges
//   - /api/tweets/*: Feed, publishing and likes
//   - POST /api/medias: Media upload
//
// The server supports graceful shutdown with configurable timeout.
type Server struct {
	server       *http.Server
	config       *config.Config
	shutdownOnce sync.Once
}

// NewServer creates a new API HTTP server.
//
// The server is created in a stopped state. Call Start() to begin serving
// requests.
//
// Parameters:
//   - cfg: Full chirpd configuration (bind address, timeouts, media limits)
//   - db: Database store backing all handlers
//   - mediaService: Upload orchestrator whose pipeline must already be started
//   - httpMetrics: Per-route metrics collector, nil disables collection
func NewServer(cfg *config.Config, db store.Store, mediaService *media.Service, httpMetrics apiMiddleware.HTTPMetrics) *Server {
	router := NewRouter(cfg, db, mediaService, httpMetrics)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Server{
		server: server,
		config: cfg,
	}
}

// Start starts the API HTTP server and blocks until the context is
// cancelled or an error occurs.
//
// When the context is cancelled, Start initiates graceful shutdown and
// returns.
//
// Returns:
//   - nil on graceful shutdown
//   - error if the server fails to start or shutdown encounters an error
func (s *Server) Start(ctx context.Context) error {
	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		logger.Info("API server listening", "addr", s.server.Addr)
		logger.Debug("API endpoints available",
			"health", fmt.Sprintf("http://localhost:%d/health", s.Port()),
			"ready", fmt.Sprintf("http://localhost:%d/health/ready", s.Port()),
			"tweets", fmt.Sprintf("http://localhost:%d/api/tweets", s.Port()),
		)

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			select {
			case errChan <- err:
			default:
				// Context was cancelled, error is not needed
			}
		}
	}()

	// Wait for context cancellation or server error
	select {
	case <-ctx.Done():
		logger.Info("API server shutdown signal received")
		// Create a fresh context for graceful shutdown. The cancelled ctx
		// would abort the drain immediately.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		return s.Stop(shutdownCtx)
	case err := <-errChan:
		return fmt.Errorf("API server failed: %w", err)
	}
}

// Stop initiates graceful shutdown of the API server.
//
// Stop is safe to call multiple times and safe to call concurrently with
// Start().
func (s *Server) Stop(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		logger.Debug("API server shutdown initiated")

		if err := s.server.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("API server shutdown error: %w", err)
			logger.Error("API server shutdown error", "error", err)
		} else {
			logger.Info("API server stopped gracefully")
		}
	})
	return shutdownErr
}

// Port returns the TCP port the server is configured to listen on.
func (s *Server) Port() int {
	return s.config.Server.Port
}
