package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/chirpnet/chirpd/internal/bytesize"
	"github.com/chirpnet/chirpd/pkg/store"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the chirpd configuration.
//
// This structure captures static configuration aspects of the chirpd server:
//   - Logging configuration
//   - Telemetry/tracing and profiling configuration
//   - Sentry error reporting
//   - HTTP server settings (bind address, timeouts, static serving)
//   - Database connection (SQLite or PostgreSQL)
//   - Media storage (upload limits, blob store backend)
//   - Media pipeline (queue capacities, stop timeout)
//
// Dynamic data (users, tweets, likes, media records) is managed through
// the REST API and stored in the database.
//
// Configuration sources (in order of precedence):
//  1. CLI flags (highest priority)
//  2. Environment variables (CHIRPD_*)
//  3. Configuration file (YAML or TOML)
//  4. Default values (lowest priority)
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Telemetry controls OpenTelemetry distributed tracing
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry"`

	// Profiling controls Pyroscope continuous profiling
	Profiling ProfilingConfig `mapstructure:"profiling" yaml:"profiling"`

	// Sentry controls error reporting to Sentry
	Sentry SentryConfig `mapstructure:"sentry" yaml:"sentry"`

	// ShutdownTimeout is the maximum time to wait for graceful HTTP shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required,gt=0" yaml:"shutdown_timeout"`

	// Server contains HTTP API server configuration
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Database configures the backing database (SQLite or PostgreSQL).
	// This is the persistent store for users, tweets, likes, and media records.
	Database store.Config `mapstructure:"database" yaml:"database"`

	// Media configures upload limits and the media blob store backend
	Media MediaConfig `mapstructure:"media" yaml:"media"`

	// Pipeline configures the asynchronous media write pipeline
	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline"`

	// Metrics contains Prometheus metrics configuration
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// ServerConfig contains HTTP API server configuration.
type ServerConfig struct {
	// Host is the bind address. Empty means all interfaces.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the HTTP port for the API
	// Default: 8000
	Port int `mapstructure:"port" validate:"required,min=1,max=65535" yaml:"port"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Must be generous enough to cover multipart uploads up to the media
	// size limit on slow links.
	// Default: 30s
	ReadTimeout time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out response writes.
	// Default: 30s
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`

	// IdleTimeout is the maximum time to wait for the next request on
	// keep-alive connections.
	// Default: 60s
	IdleTimeout time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`

	// ServeStatic mounts GET /static/* serving StaticDir.
	// Intended for development; production deployments front media with a
	// real web server.
	// Default: false
	ServeStatic bool `mapstructure:"serve_static" yaml:"serve_static"`

	// StaticDir is the directory served under /static when ServeStatic is on.
	// The default media root lives inside it.
	// Default: "static"
	StaticDir string `mapstructure:"static_dir" yaml:"static_dir"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive, normalized to uppercase)
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`

	// Format specifies the log output format
	// Valid values: text, json
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`

	// Output specifies where logs are written
	// Valid values: stdout, stderr, or a file path
	Output string `mapstructure:"output" validate:"required" yaml:"output"`
}

// TelemetryConfig controls OpenTelemetry distributed tracing.
// When enabled, trace data is exported to an OTLP-compatible collector
// (e.g., Jaeger, Tempo, or any OTLP receiver).
type TelemetryConfig struct {
	// Enabled controls whether distributed tracing is enabled
	// Default: false (opt-in for telemetry)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Endpoint is the OTLP collector endpoint (host:port)
	// Default: "localhost:4317" (standard OTLP gRPC port)
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// Insecure controls whether to use insecure (non-TLS) connection
	// Default: true (for local development)
	// Set to false in production with a TLS-enabled collector
	Insecure bool `mapstructure:"insecure" yaml:"insecure"`

	// SampleRate controls the trace sampling rate (0.0 to 1.0)
	// 1.0 = sample all traces, 0.5 = sample 50%, 0.0 = no sampling
	// Default: 1.0 (sample all)
	SampleRate float64 `mapstructure:"sample_rate" validate:"omitempty,gte=0,lte=1" yaml:"sample_rate"`
}

// ProfilingConfig controls Pyroscope continuous profiling.
// When enabled, CPU and memory profiles are continuously sent to a Pyroscope server
// for flame graph visualization and performance analysis.
type ProfilingConfig struct {
	// Enabled controls whether continuous profiling is enabled
	// Default: false (opt-in for profiling)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Endpoint is the Pyroscope server endpoint (URL)
	// Default: "http://localhost:4040" (standard Pyroscope port)
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// ProfileTypes specifies which profile types to collect
	// Valid values: cpu, alloc_objects, alloc_space, inuse_objects, inuse_space,
	//               goroutines, mutex_count, mutex_duration, block_count, block_duration
	// Default: ["cpu", "alloc_objects", "alloc_space", "inuse_objects", "inuse_space", "goroutines"]
	ProfileTypes []string `mapstructure:"profile_types" yaml:"profile_types"`
}

// SentryConfig controls error reporting to Sentry.
// When enabled, records logged at error level and above are forwarded to
// Sentry, and the SDK captures panics with the configured sample rates.
type SentryConfig struct {
	// Enabled controls whether Sentry reporting is active
	// Default: false (opt-in)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// DSN is the Sentry project DSN. Required when Enabled is true.
	DSN string `mapstructure:"dsn" yaml:"dsn,omitempty"`

	// TracesSampleRate controls Sentry performance trace sampling (0.0 to 1.0)
	// Default: 0.8
	TracesSampleRate float64 `mapstructure:"traces_sample_rate" validate:"omitempty,gte=0,lte=1" yaml:"traces_sample_rate"`

	// ProfilesSampleRate controls Sentry profile sampling (0.0 to 1.0)
	// Default: 0.8
	ProfilesSampleRate float64 `mapstructure:"profiles_sample_rate" validate:"omitempty,gte=0,lte=1" yaml:"profiles_sample_rate"`
}

// MediaConfig configures media uploads and blob storage.
type MediaConfig struct {
	// Root is the media root directory. Uploaded files are stored under
	// <root>/<media-id>/<filename> by the fs backend, and the same layout
	// is recorded in the database for every backend.
	// Default: <static_dir>/images
	Root string `mapstructure:"root" yaml:"root"`

	// MaxUploadSize is the maximum accepted Content-Length for uploads.
	// Supports human-readable formats: "6MB", "10Mi"
	// Default: 6MiB
	MaxUploadSize bytesize.ByteSize `mapstructure:"max_upload_size" yaml:"max_upload_size,omitempty"`

	// Store selects and configures the blob store backend
	Store BlobStoreConfig `mapstructure:"store" yaml:"store"`
}

// BlobStoreConfig selects the media blob store backend.
type BlobStoreConfig struct {
	// Type is the backend type
	// Valid values: fs (default), memory, s3
	Type string `mapstructure:"type" validate:"omitempty,oneof=fs memory s3" yaml:"type"`

	// S3 contains S3-specific settings, used when Type is "s3"
	S3 S3Config `mapstructure:"s3" yaml:"s3,omitempty"`
}

// S3Config contains S3 blob store configuration.
type S3Config struct {
	// Bucket is the S3 bucket name (required for the s3 backend)
	Bucket string `mapstructure:"bucket" yaml:"bucket"`

	// Region is the AWS region
	Region string `mapstructure:"region" yaml:"region,omitempty"`

	// Endpoint overrides the S3 endpoint (for MinIO, Localstack, etc.)
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint,omitempty"`

	// KeyPrefix is prepended to every object key
	KeyPrefix string `mapstructure:"key_prefix" yaml:"key_prefix,omitempty"`

	// MaxRetries is the maximum number of request retries
	MaxRetries int `mapstructure:"max_retries" yaml:"max_retries,omitempty"`

	// ForcePathStyle forces path-style addressing (required by most
	// S3-compatible servers)
	ForcePathStyle bool `mapstructure:"force_path_style" yaml:"force_path_style,omitempty"`
}

// PipelineConfig configures the asynchronous media write pipeline.
type PipelineConfig struct {
	// ReadQueueSize is the capacity of the upload batch queue.
	// Submissions block when it is full.
	// Default: 10000
	ReadQueueSize int `mapstructure:"read_queue_size" validate:"omitempty,min=1" yaml:"read_queue_size"`

	// WriteQueueSize is the capacity of the resolved payload queue feeding
	// the write worker.
	// Default: 100000
	WriteQueueSize int `mapstructure:"write_queue_size" validate:"omitempty,min=1" yaml:"write_queue_size"`

	// StopTimeout is how long Stop waits for each worker to drain before
	// giving up on it.
	// Default: 10s
	StopTimeout time.Duration `mapstructure:"stop_timeout" yaml:"stop_timeout"`
}

// MetricsConfig configures Prometheus metrics.
// When Enabled is false, no metrics are collected (zero overhead).
type MetricsConfig struct {
	// Enabled controls whether metrics collection and the metrics endpoint
	// are enabled
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Path is the route the metrics handler is mounted on
	// Default: "/metrics"
	Path string `mapstructure:"path" yaml:"path,omitempty"`
}

// Load reads configuration from the file at configPath, layers CHIRPD_*
// environment variables on top, fills the gaps with defaults and
// validates the result. An empty configPath searches the default
// location; a missing file there is not an error and yields the pure
// defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	found, err := readConfigFile(v)
	if err != nil {
		return nil, err
	}
	if !found {
		return GetDefaultConfig(), nil
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(configDecodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// MustLoad is Load for commands that require a config file to exist.
// When the file is missing it returns an error telling the operator how
// to create one instead of silently running on defaults.
func MustLoad(configPath string) (*Config, error) {
	if configPath == "" {
		if !DefaultConfigExists() {
			return nil, fmt.Errorf("no configuration file at default location %s\n\n"+
				"Run 'chirpd init' to create one, or pass --config /path/to/config.yaml",
				GetDefaultConfigPath())
		}
		configPath = GetDefaultConfigPath()
	} else if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s\n\n"+
			"Run 'chirpd init --config %s' to create it",
			configPath, configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// SaveConfig saves the configuration to the specified file path.
// The configuration is saved in YAML format using proper yaml tags.
func SaveConfig(cfg *Config, path string) error {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Use yaml.Marshal directly to respect yaml tags
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write to file with restricted permissions (0600 = owner read/write only).
	// This is important because config files may contain credentials like the
	// Sentry DSN or S3 secrets.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setupViper points viper at the config file and wires the CHIRPD_
// environment prefix, so CHIRPD_LOGGING_LEVEL=DEBUG overrides
// logging.level from the file.
func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("CHIRPD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}
	v.AddConfigPath(getConfigDir())
	v.SetConfigName("config")
	v.SetConfigType("yaml")
}

// readConfigFile attempts to read the configured file. A missing file is
// reported as found=false rather than an error; viper signals that two
// different ways depending on whether the path was explicit.
func readConfigFile(v *viper.Viper) (bool, error) {
	err := v.ReadInConfig()
	if err == nil {
		return true, nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to read config file: %w", err)
}

// configDecodeHooks combines the decode hooks for the custom config
// field types, ByteSize and time.Duration.
func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		byteSizeDecodeHook(),
		durationDecodeHook(),
	)
}

// byteSizeDecodeHook decodes ByteSize fields from human-readable strings
// like "6MB" or "10Mi" as well as plain numbers. YAML hands numbers over
// as float64, so that case matters in practice.
func byteSizeDecodeHook() mapstructure.DecodeHookFunc {
	return func(from, to reflect.Type, data any) (any, error) {
		if to != reflect.TypeOf(bytesize.ByteSize(0)) {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return bytesize.ParseByteSize(v)
		case int:
			return bytesize.ByteSize(v), nil
		case int64:
			return bytesize.ByteSize(v), nil
		case uint64:
			return bytesize.ByteSize(v), nil
		case float64:
			return bytesize.ByteSize(v), nil
		default:
			return data, nil
		}
	}
}

// durationDecodeHook decodes duration fields from strings like "30s" or
// "5m". Raw numbers are taken as nanoseconds.
func durationDecodeHook() mapstructure.DecodeHookFunc {
	return func(from, to reflect.Type, data any) (any, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return time.ParseDuration(v)
		case int:
			return time.Duration(v), nil
		case int64:
			return time.Duration(v), nil
		case float64:
			return time.Duration(v), nil
		default:
			return data, nil
		}
	}
}

// getConfigDir resolves the chirpd config directory: XDG_CONFIG_HOME
// when set, else ~/.config, else the current directory.
func getConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "chirpd")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "chirpd")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// DefaultConfigExists checks if a config file exists at the default location.
func DefaultConfigExists() bool {
	path := GetDefaultConfigPath()
	_, err := os.Stat(path)
	return err == nil
}

// GetConfigDir returns the configuration directory path (exposed for init command).
func GetConfigDir() string {
	return getConfigDir()
}
