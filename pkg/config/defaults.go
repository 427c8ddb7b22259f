package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/chirpnet/chirpd/internal/bytesize"
	"github.com/chirpnet/chirpd/pkg/store"
)

// ApplyDefaults fills unset configuration fields after the file and
// environment have been loaded. Only zero values are touched, so anything
// the operator set explicitly survives.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyProfilingDefaults(&cfg.Profiling)
	applySentryDefaults(&cfg.Sentry)
	applyShutdownTimeoutDefaults(cfg)
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyMediaDefaults(&cfg.Media, cfg.Server.StaticDir)
	applyPipelineDefaults(&cfg.Pipeline)
	applyMetricsDefaults(&cfg.Metrics)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	// Levels are compared uppercase internally.
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

// applyTelemetryDefaults sets OpenTelemetry defaults. Tracing stays
// opt-in; the endpoint and sample rate only matter once it is enabled.
func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4317" // standard OTLP gRPC port
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 1.0
	}
}

// applyProfilingDefaults sets Pyroscope profiling defaults. Profiling
// stays opt-in.
func applyProfilingDefaults(cfg *ProfilingConfig) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "http://localhost:4040" // standard Pyroscope port
	}
	if len(cfg.ProfileTypes) == 0 {
		cfg.ProfileTypes = []string{
			"cpu",
			"alloc_objects",
			"alloc_space",
			"inuse_objects",
			"inuse_space",
			"goroutines",
		}
	}
}

// applySentryDefaults sets Sentry defaults. There is no default DSN;
// it has to be configured when Sentry is enabled.
func applySentryDefaults(cfg *SentryConfig) {
	if cfg.TracesSampleRate == 0 {
		cfg.TracesSampleRate = 0.8
	}
	if cfg.ProfilesSampleRate == 0 {
		cfg.ProfilesSampleRate = 0.8
	}
}

// applyShutdownTimeoutDefaults sets shutdown timeout defaults.
func applyShutdownTimeoutDefaults(cfg *Config) {
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
}

// applyServerDefaults sets HTTP API server defaults.
func applyServerDefaults(cfg *ServerConfig) {
	if cfg.Port == 0 {
		cfg.Port = 8000
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 60 * time.Second
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = "static"
	}
}

// applyDatabaseDefaults sets database defaults.
func applyDatabaseDefaults(cfg *store.Config) {
	cfg.ApplyDefaults()
}

// applyMediaDefaults sets media storage defaults.
// The default media root lives inside the static directory so the dev
// static mount can serve uploaded files directly.
func applyMediaDefaults(cfg *MediaConfig, staticDir string) {
	if cfg.Root == "" {
		cfg.Root = filepath.Join(staticDir, "images")
	}
	if cfg.MaxUploadSize == 0 {
		cfg.MaxUploadSize = 6 * bytesize.MiB
	}
	if cfg.Store.Type == "" {
		cfg.Store.Type = "fs"
	}
}

// applyPipelineDefaults sets media pipeline defaults.
func applyPipelineDefaults(cfg *PipelineConfig) {
	if cfg.ReadQueueSize == 0 {
		cfg.ReadQueueSize = 10000
	}
	if cfg.WriteQueueSize == 0 {
		cfg.WriteQueueSize = 100000
	}
	if cfg.StopTimeout == 0 {
		cfg.StopTimeout = 10 * time.Second
	}
}

// applyMetricsDefaults sets metrics defaults. The endpoint is opt-in.
func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Path == "" {
		cfg.Path = "/metrics"
	}
}

// GetDefaultConfig returns a fully defaulted Config, used for generating
// sample configuration files and in tests.
func GetDefaultConfig() *Config {
	cfg := &Config{
		Database: store.Config{
			Type: store.DatabaseTypeSQLite, // single-node default
		},
	}

	ApplyDefaults(cfg)
	return cfg
}
