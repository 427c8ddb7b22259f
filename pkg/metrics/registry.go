// Package metrics owns the process-wide Prometheus registry.
//
// Metrics are opt-in: nothing is registered until InitRegistry is called,
// and every metrics constructor in pkg/metrics/prometheus returns nil while
// the registry is absent. Consumers treat a nil metrics implementation as
// disabled, which keeps the disabled path free of any overhead.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	mu       sync.RWMutex
	registry *prometheus.Registry
)

// InitRegistry creates the process-wide registry and seeds it with the
// standard Go runtime and process collectors. Call once at startup when
// metrics are enabled; calling it again is a no-op.
func InitRegistry() {
	mu.Lock()
	defer mu.Unlock()

	if registry != nil {
		return
	}

	registry = prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// IsEnabled reports whether InitRegistry has been called.
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return registry != nil
}

// GetRegistry returns the process-wide registry, or nil when metrics are
// disabled.
func GetRegistry() *prometheus.Registry {
	mu.RLock()
	defer mu.RUnlock()
	return registry
}

// Handler returns the HTTP handler exposing the registry. When metrics are
// disabled it serves 404, so the route can be mounted unconditionally.
func Handler() http.Handler {
	reg := GetRegistry()
	if reg == nil {
		return http.NotFoundHandler()
	}

	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
