package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/chirpnet/chirpd/internal/logger"
	"github.com/chirpnet/chirpd/pkg/api/handlers"
	apiMiddleware "github.com/chirpnet/chirpd/pkg/api/middleware"
	"github.com/chirpnet/chirpd/pkg/config"
	"github.com/chirpnet/chirpd/pkg/media"
	"github.com/chirpnet/chirpd/pkg/metrics"
	"github.com/chirpnet/chirpd/pkg/store"
)

// NewRouter creates and configures the chi router with all middleware and routes.
//
// The router is configured with:
//   - Request ID middleware for request tracking
//   - Real IP extraction for proper client identification
//   - Custom request logging using the internal logger
//   - Panic recovery answering with the error envelope
//   - Request timeout to prevent hung requests
//   - Optional per-route Prometheus metrics
//
// Routes:
//   - GET /health - Liveness probe
//   - GET /health/ready - Readiness probe
//   - GET /metrics - Prometheus metrics (404 while disabled)
//   - GET /static/* - Uploaded media (only when static serving is on)
//   - GET /api/users/{id} - User profile (public)
//   - GET /api/users/me - Own profile
//   - POST /api/users/{id}/follow - Follow a user
//   - DELETE /api/users/{id}/follow - Unfollow a user
//   - GET /api/tweets - Tweet feed
//   - POST /api/tweets - Publish a tweet
//   - DELETE /api/tweets/{id} - Delete own tweet
//   - POST /api/tweets/{id}/likes - Like a tweet
//   - DELETE /api/tweets/{id}/likes - Remove a like
//   - POST /api/medias - Upload media files
func NewRouter(cfg *config.Config, db store.Store, mediaService *media.Service, httpMetrics apiMiddleware.HTTPMetrics) http.Handler {
	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(apiMiddleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(apiMiddleware.Metrics(httpMetrics))

	// Unmatched routes and wrong methods answer with the error envelope
	// like every other failure.
	r.NotFound(handlers.NotFoundHandler)
	r.MethodNotAllowed(handlers.MethodNotAllowedHandler)

	// Health routes - unauthenticated
	healthHandler := handlers.NewHealthHandler(db, mediaService.Pipeline())
	r.Route("/health", func(r chi.Router) {
		r.Get("/", healthHandler.Liveness)
		r.Get("/ready", healthHandler.Readiness)
	})

	// Root redirect to health for convenience
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusTemporaryRedirect)
	})

	// Metrics endpoint - mounted unconditionally, serves 404 while disabled
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	r.Handle(metricsPath, metrics.Handler())

	// Development static serving for uploaded media
	if cfg.Server.ServeStatic {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.Server.StaticDir)))
		r.Handle("/static/*", fileServer)
	}

	maxUploadSize := cfg.Media.MaxUploadSize.Int64()

	userHandler := handlers.NewUserHandler(db)
	tweetHandler := handlers.NewTweetHandler(db)
	mediaHandler := handlers.NewMediaHandler(mediaService, maxUploadSize)

	r.Route("/api", func(r chi.Router) {
		// User routes. Profile reads are public, follow edges need a key.
		r.Route("/users", func(r chi.Router) {
			r.Get("/{id}", userHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(apiMiddleware.APIKeyAuth(db, apiMiddleware.MissingKeyHeaderMessage))

				r.Get("/me", userHandler.Me)
				r.Post("/{id}/follow", userHandler.Follow)
				r.Delete("/{id}/follow", userHandler.Unfollow)
			})
		})

		// Tweet routes
		r.Route("/tweets", func(r chi.Router) {
			r.Use(apiMiddleware.APIKeyAuth(db, apiMiddleware.MissingKeyQueryMessage))

			r.Get("/", tweetHandler.List)
			r.Post("/", tweetHandler.Create)
			r.Delete("/{id}", tweetHandler.Delete)
			r.Post("/{id}/likes", tweetHandler.Like)
			r.Delete("/{id}/likes", tweetHandler.Unlike)
		})

		// Media upload. Content type and size are vetted before the key so
		// oversized bodies are refused as early as possible.
		r.Route("/medias", func(r chi.Router) {
			r.Use(apiMiddleware.ValidateUpload(maxUploadSize))
			r.Use(apiMiddleware.APIKeyAuth(db, apiMiddleware.MissingKeyHeaderMessage))

			r.Post("/", mediaHandler.Create)
		})
	})

	return r
}

// isHealthPath returns true if the request path is a healthcheck endpoint.
func isHealthPath(path string) bool {
	return path == "/health" || strings.HasPrefix(path, "/health/")
}

// requestLogger is a custom middleware that logs requests using the internal logger.
//
// It logs:
//   - Request start (DEBUG level): method, path, remote addr
//   - Request completion (INFO level): method, path, status, duration
//   - Healthcheck requests are logged at DEBUG level to reduce noise
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())

		logger.Debug("API request started",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		// Wrap response writer to capture status code
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)

		logArgs := []any{
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration.String(),
		}

		// Log healthcheck requests at DEBUG to avoid polluting logs
		if isHealthPath(r.URL.Path) {
			logger.Debug("API request completed", logArgs...)
		} else {
			logger.Info("API request completed", logArgs...)
		}
	})
}
