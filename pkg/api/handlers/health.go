package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/chirpnet/chirpd/pkg/api/middleware"
	"github.com/chirpnet/chirpd/pkg/media"
	"github.com/chirpnet/chirpd/pkg/store"
)

// HealthCheckTimeout is the maximum time allowed for health check
// operations. It bounds the database ping so a slow store cannot stall
// readiness probes.
const HealthCheckTimeout = 5 * time.Second

// HealthHandler handles health check endpoints.
//
// Health endpoints are unauthenticated and provide:
//   - Liveness probe: Is the server process running?
//   - Readiness probe: Is the server ready to accept requests?
type HealthHandler struct {
	store     store.Store
	pipeline  *media.Pipeline
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(s store.Store, pipeline *media.Pipeline) *HealthHandler {
	return &HealthHandler{
		store:     s,
		pipeline:  pipeline,
		startTime: time.Now(),
	}
}

// Liveness handles GET /health - simple liveness probe.
//
// Returns 200 OK if the server process is running. This endpoint is
// designed for liveness probes and should always succeed as long as the
// HTTP server is responsive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(h.startTime)
	WriteJSONOK(w, healthyResponse(map[string]any{
		"service":    "chirpd",
		"started_at": h.startTime.UTC().Format(time.RFC3339),
		"uptime":     uptime.Round(time.Second).String(),
		"uptime_sec": int64(uptime.Seconds()),
	}))
}

// Readiness handles GET /health/ready - readiness probe.
//
// Returns 200 OK when the database answers and the media pipeline still
// accepts uploads, 503 Service Unavailable otherwise.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), HealthCheckTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		middleware.WriteJSON(w, http.StatusServiceUnavailable,
			unhealthyResponse("database unreachable: "+err.Error()))
		return
	}

	if h.pipeline.Stopped() {
		middleware.WriteJSON(w, http.StatusServiceUnavailable,
			unhealthyResponse("media pipeline stopped"))
		return
	}

	readDepth, writeDepth := h.pipeline.QueueDepths()
	WriteJSONOK(w, healthyResponse(map[string]any{
		"pipeline": map[string]any{
			"read_queue":  readDepth,
			"write_queue": writeDepth,
		},
	}))
}
