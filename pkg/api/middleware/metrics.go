package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// HTTPMetrics receives one observation per completed request.
//
// This is optional - a nil HTTPMetrics disables collection entirely.
//
// Example implementations:
//   - metrics/prometheus.NewHTTPMetrics: Prometheus counters and histograms
type HTTPMetrics interface {
	// ObserveRequest records a completed request with its method, matched
	// route pattern, response status and duration.
	ObserveRequest(method, route string, status int, duration time.Duration)
}

// Metrics is a middleware that reports request outcomes to the given
// collector. The route label is the chi route pattern, not the raw URL
// path, to keep the label cardinality bounded.
func Metrics(collector HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if collector == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}

			// Status is 0 when the handler never wrote anything.
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			collector.ObserveRequest(r.Method, route, status, time.Since(start))
		})
	}
}
