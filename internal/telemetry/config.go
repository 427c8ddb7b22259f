package telemetry

// Config controls the OpenTelemetry tracing setup.
type Config struct {
	// Enabled turns span export on. When false no collector is dialed.
	Enabled bool

	// ServiceName identifies this process in the trace backend.
	ServiceName string

	// ServiceVersion is reported alongside the service name.
	ServiceVersion string

	// Endpoint is the OTLP gRPC collector address, host:port.
	Endpoint string

	// Insecure disables TLS on the collector connection.
	Insecure bool

	// SampleRate is the fraction of traces to record, between 0 and 1.
	SampleRate float64
}

// DefaultConfig returns the tracing defaults: disabled, pointed at a
// local collector, sampling everything once enabled.
func DefaultConfig() Config {
	return Config{
		Enabled:        false,
		ServiceName:    "chirpd",
		ServiceVersion: "dev",
		Endpoint:       "localhost:4317",
		Insecure:       true,
		SampleRate:     1.0,
	}
}
