package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance. validator.Validate caches
// struct metadata, so a single instance is reused for all calls.
var validate = validator.New()

// Validate checks the configuration for invalid or inconsistent values.
//
// Struct tag validation (required, oneof, min/max ranges) runs first,
// followed by cross-field checks that tags cannot express. Validation
// does not mutate the configuration; normalization happens in
// ApplyDefaults.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return err
	}

	// Database settings have backend-specific requirements
	if err := cfg.Database.Validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if cfg.Media.Root == "" {
		return fmt.Errorf("media root path is required")
	}

	if cfg.Media.Store.Type == "s3" && cfg.Media.Store.S3.Bucket == "" {
		return fmt.Errorf("s3 media store requires a bucket")
	}

	if cfg.Telemetry.Enabled && cfg.Telemetry.Endpoint == "" {
		return fmt.Errorf("telemetry is enabled but no endpoint is configured")
	}

	if cfg.Profiling.Enabled && cfg.Profiling.Endpoint == "" {
		return fmt.Errorf("profiling is enabled but no endpoint is configured")
	}

	if cfg.Sentry.Enabled && cfg.Sentry.DSN == "" {
		return fmt.Errorf("sentry is enabled but no dsn is configured")
	}

	return nil
}
