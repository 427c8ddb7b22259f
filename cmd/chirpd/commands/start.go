package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	"github.com/chirpnet/chirpd/internal/logger"
	"github.com/chirpnet/chirpd/internal/telemetry"
	"github.com/chirpnet/chirpd/pkg/api"
	"github.com/chirpnet/chirpd/pkg/config"
	"github.com/chirpnet/chirpd/pkg/media"
	"github.com/chirpnet/chirpd/pkg/metrics"
	metricsprom "github.com/chirpnet/chirpd/pkg/metrics/prometheus"
	"github.com/chirpnet/chirpd/pkg/store"
)

var (
	foreground bool
	pidFile    string
	logFile    string
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the chirpd server",
	Long: `Run the chirpd API server.

Without flags the server forks into the background and appends its output
to a log file under $XDG_STATE_HOME/chirpd. Pass --foreground to stay
attached, which is what you want under systemd or in a container.

Configuration is read from --config when given, falling back to
$XDG_CONFIG_HOME/chirpd/config.yaml. Any setting can be overridden with
CHIRPD_* environment variables.

Examples:
  # Background daemon with the default config
  chirpd start

  # Foreground with debug logging
  CHIRPD_LOGGING_LEVEL=DEBUG chirpd start --foreground

  # Explicit config file
  chirpd start --config /etc/chirpd/config.yaml`,
	RunE: runStart,
}

func init() {
	startCmd.Flags().BoolVarP(&foreground, "foreground", "f", false, "Run in foreground (default: background/daemon mode)")
	startCmd.Flags().StringVar(&pidFile, "pid-file", "", "Path to PID file (default: $XDG_STATE_HOME/chirpd/chirpd.pid)")
	startCmd.Flags().StringVar(&logFile, "log-file", "", "Path to log file for daemon mode (default: $XDG_STATE_HOME/chirpd/chirpd.log)")
}

func runStart(cmd *cobra.Command, args []string) error {
	if !foreground {
		return spawnDaemon()
	}

	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}
	if err := InitLogger(cfg); err != nil {
		return err
	}

	// Canceling this context drains the HTTP server and, through the
	// deferred Stop below, the media pipeline behind it.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownObservability, err := initObservability(ctx, cfg)
	if err != nil {
		return err
	}
	defer shutdownObservability()

	fmt.Println("Chirpd - Microblogging backend")
	logStartupState(cfg)

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		logger.Info("Metrics enabled", "path", cfg.Metrics.Path)
	} else {
		logger.Info("Metrics collection disabled")
	}

	// Open the database store (runs migrations, honors force_init)
	db, err := store.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Store close error", "error", err)
		}
	}()
	logger.Info("Store opened", "type", cfg.Database.Type)

	blobs, err := config.CreateBlobStore(ctx, cfg.Media)
	if err != nil {
		return fmt.Errorf("failed to create media store: %w", err)
	}

	// The media root always exists on disk, even for non-fs blob backends:
	// recorded media paths point into it and static serving reads from it.
	if err := os.MkdirAll(cfg.Media.Root, 0755); err != nil {
		return fmt.Errorf("failed to create media root: %w", err)
	}
	logger.Info("Media store ready", "type", cfg.Media.Store.Type, "root", cfg.Media.Root)

	// Start the asynchronous media write pipeline. Deferred Stop runs
	// after the HTTP server has drained, so no request can submit to a
	// stopped pipeline.
	pipeline := media.NewPipeline(blobs, metricsprom.NewPipelineMetrics(), media.PipelineConfig{
		ReadQueueSize:  cfg.Pipeline.ReadQueueSize,
		WriteQueueSize: cfg.Pipeline.WriteQueueSize,
		StopTimeout:    cfg.Pipeline.StopTimeout,
	})
	pipeline.Start()
	defer pipeline.Stop()
	logger.Info("Media pipeline started",
		"read_queue", cfg.Pipeline.ReadQueueSize,
		"write_queue", cfg.Pipeline.WriteQueueSize,
		"stop_timeout", cfg.Pipeline.StopTimeout)

	mediaService := media.NewService(db, blobs, pipeline)

	server := api.NewServer(cfg, db, mediaService, metricsprom.NewHTTPMetrics())
	logger.Info("API server configured", "host", cfg.Server.Host, "port", cfg.Server.Port)

	if pidFile != "" {
		if err := os.WriteFile(pidFile, []byte(fmt.Sprintf("%d", os.Getpid())), 0644); err != nil {
			return fmt.Errorf("failed to write PID file: %w", err)
		}
		defer func() { _ = os.Remove(pidFile) }()
	}

	return serveUntilSignal(ctx, cancel, server)
}

// initObservability wires Sentry, OpenTelemetry tracing, and Pyroscope
// profiling according to cfg. The returned function tears all three down
// in reverse order and is safe to defer even when everything is disabled.
func initObservability(ctx context.Context, cfg *config.Config) (func(), error) {
	sentryFlush, err := initSentry(cfg)
	if err != nil {
		return nil, err
	}

	shutdownTracing, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "chirpd",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	stopProfiling, err := telemetry.InitProfiling(telemetry.ProfilingConfig{
		Enabled:        cfg.Profiling.Enabled,
		ServiceName:    "chirpd",
		ServiceVersion: Version,
		Endpoint:       cfg.Profiling.Endpoint,
		ProfileTypes:   cfg.Profiling.ProfileTypes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize profiling: %w", err)
	}

	return func() {
		if err := stopProfiling(); err != nil {
			logger.Error("profiling shutdown error", "error", err)
		}
		// The serve context is already canceled here; the tracing
		// shutdown applies its own timeout.
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
		sentryFlush()
	}, nil
}

// initSentry configures the Sentry SDK and attaches it to the logger.
// Returns a flush function to be deferred by the caller.
func initSentry(cfg *config.Config) (func(), error) {
	if !cfg.Sentry.Enabled {
		return func() {}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:                cfg.Sentry.DSN,
		Release:            "chirpd@" + Version,
		EnableTracing:      cfg.Sentry.TracesSampleRate > 0,
		TracesSampleRate:   cfg.Sentry.TracesSampleRate,
		ProfilesSampleRate: cfg.Sentry.ProfilesSampleRate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sentry: %w", err)
	}

	logger.EnableSentry(slog.LevelError)
	logger.Info("Sentry enabled", "traces_sample_rate", cfg.Sentry.TracesSampleRate)

	return func() { sentry.Flush(2 * time.Second) }, nil
}

// logStartupState records where configuration came from and which optional
// subsystems are active, so a fresh log file explains the process state.
func logStartupState(cfg *config.Config) {
	logger.Info("Log level", "level", cfg.Logging.Level, "format", cfg.Logging.Format)
	logger.Info("Configuration loaded", "source", configSource(GetConfigFile()))

	if telemetry.IsEnabled() {
		logger.Info("Telemetry enabled", "endpoint", cfg.Telemetry.Endpoint, "sample_rate", cfg.Telemetry.SampleRate)
	} else {
		logger.Info("Telemetry disabled")
	}
	if telemetry.IsProfilingEnabled() {
		logger.Info("Profiling enabled", "endpoint", cfg.Profiling.Endpoint, "profile_types", cfg.Profiling.ProfileTypes)
	} else {
		logger.Info("Profiling disabled")
	}
}

// configSource names where configuration was read from for the startup log.
func configSource(explicit string) string {
	switch {
	case explicit != "":
		return explicit
	case config.DefaultConfigExists():
		return config.GetDefaultConfigPath()
	default:
		return "defaults"
	}
}

// serveUntilSignal runs the server until it exits on its own or the process
// receives SIGINT or SIGTERM, then waits for the graceful drain to finish.
func serveUntilSignal(ctx context.Context, cancel context.CancelFunc, server *api.Server) error {
	serverDone := make(chan error, 1)
	go func() {
		serverDone <- server.Start(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	logger.Info("Server is running. Press Ctrl+C to stop.")

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received, initiating graceful shutdown", "signal", sig.String())
		cancel()
		if err := <-serverDone; err != nil {
			logger.Error("Server shutdown error", "error", err)
			return err
		}
		logger.Info("Server stopped gracefully")
		return nil

	case err := <-serverDone:
		if err != nil {
			logger.Error("Server error", "error", err)
			return err
		}
		logger.Info("Server stopped")
		return nil
	}
}

// spawnDaemon re-executes chirpd with --foreground, detached from the
// current session, with stdout and stderr appended to the daemon log file.
func spawnDaemon() error {
	stateDir := GetDefaultStateDir()
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	pidPath := pidFile
	if pidPath == "" {
		pidPath = filepath.Join(stateDir, "chirpd.pid")
	}
	logPath := logFile
	if logPath == "" {
		logPath = filepath.Join(stateDir, "chirpd.log")
	}

	if pid := runningPID(pidPath); pid != 0 {
		return fmt.Errorf("chirpd is already running (PID %d)\nStop it with: kill %d", pid, pid)
	}
	// Drop a stale PID file left over from a crash.
	_ = os.Remove(pidPath)

	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	daemonArgs := []string{"start", "--foreground", "--pid-file", pidPath}
	if GetConfigFile() != "" {
		daemonArgs = append(daemonArgs, "--config", GetConfigFile())
	}

	logSink, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logSink.Close() }()

	daemon := exec.Command(executable, daemonArgs...)
	daemon.Stdout = logSink
	daemon.Stderr = logSink
	// New session, so the daemon survives its terminal closing.
	daemon.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := daemon.Start(); err != nil {
		return fmt.Errorf("failed to start daemon: %w", err)
	}

	fmt.Printf("Chirpd started in background (PID %d)\n", daemon.Process.Pid)
	fmt.Printf("  PID file: %s\n", pidPath)
	fmt.Printf("  Log file: %s\n", logPath)
	fmt.Printf("\nStop with: kill $(cat %s)\n", pidPath)
	fmt.Println("Use 'chirpctl status' to check server status")

	return nil
}

// runningPID reports the PID recorded in pidPath when that process is still
// alive. Returns 0 for a missing, unreadable, or stale PID file.
func runningPID(pidPath string) int {
	data, err := os.ReadFile(pidPath)
	if err != nil {
		return 0
	}

	var pid int
	if _, err := fmt.Sscanf(string(data), "%d", &pid); err != nil || pid <= 0 {
		return 0
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return 0
	}
	if err := process.Signal(syscall.Signal(0)); err != nil {
		return 0
	}
	return pid
}
