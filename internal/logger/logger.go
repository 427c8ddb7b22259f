// Package logger provides structured logging for chirpd built on log/slog.
//
// The package keeps a single process-wide logger that every component shares.
// Output format (text, json), minimum level and destination are reconfigurable
// at runtime. When Sentry error reporting is enabled the logger fans every
// record out to the console handler and a Sentry handler that forwards ERROR
// records as events.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Level is the logger's severity scale.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the level's display name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// slogLevel maps a Level to its log/slog equivalent.
func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// parseLevel converts a level name to a Level. Names are matched
// case-insensitively.
func parseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "INFO":
		return LevelInfo, nil
	case "DEBUG":
		return LevelDebug, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level: %q", s)
	}
}

// Config controls logger behavior.
type Config struct {
	// Level is the minimum level to emit: DEBUG, INFO, WARN or ERROR.
	Level string

	// Format selects the output encoding: "text" or "json".
	Format string

	// Output is where records are written: "stdout", "stderr" or a file path.
	// Files are opened in append mode and created when missing.
	Output string
}

var (
	mu sync.RWMutex

	// defaultLogger is the shared logger instance. Never nil after package init.
	defaultLogger *slog.Logger

	// currentLevel holds a Level. It is atomic so SetLevel never has to
	// rebuild the handler chain.
	currentLevel atomic.Int32

	currentFormat = "text"
	output        io.Writer = os.Stdout
	useColor      bool
	sentryEnabled bool
	sentryLevel   = slog.LevelError
)

// dynamicLevel is a slog.Leveler that reads currentLevel on every record, so
// all handlers observe SetLevel immediately.
type dynamicLevel struct{}

func (dynamicLevel) Level() slog.Level {
	return Level(currentLevel.Load()).slogLevel()
}

func init() {
	currentLevel.Store(int32(LevelInfo))
	useColor = isTerminal(os.Stdout.Fd())
	reconfigure()
}

// Init configures the shared logger from cfg. The output destination is
// resolved here: "stdout" and "stderr" map to the process streams, anything
// else is treated as a file path and opened in append mode.
func Init(cfg Config) error {
	var w io.Writer
	var colorOK bool
	switch strings.ToLower(cfg.Output) {
	case "", "stdout":
		w = os.Stdout
		colorOK = isTerminal(os.Stdout.Fd())
	case "stderr":
		w = os.Stderr
		colorOK = isTerminal(os.Stderr.Fd())
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", cfg.Output, err)
		}
		w = f
	}
	return InitWithWriter(w, cfg.Level, cfg.Format, colorOK)
}

// InitWithWriter configures the shared logger to write to w. Tests use this
// to capture output; Init delegates here after resolving the destination.
func InitWithWriter(w io.Writer, level, format string, color bool) error {
	parsed, err := parseLevel(level)
	if err != nil {
		return err
	}

	f := strings.ToLower(format)
	switch f {
	case "", "text":
		f = "text"
	case "json":
	default:
		return fmt.Errorf("unknown log format: %q", format)
	}

	currentLevel.Store(int32(parsed))

	mu.Lock()
	defer mu.Unlock()
	currentFormat = f
	output = w
	useColor = color
	reconfigure()
	return nil
}

// EnableSentry attaches a Sentry handler to the logger. Records at or above
// minLevel are forwarded to Sentry in addition to the regular output. The
// Sentry SDK must already be initialized by the caller.
func EnableSentry(minLevel slog.Level) {
	mu.Lock()
	defer mu.Unlock()
	sentryEnabled = true
	sentryLevel = minLevel
	reconfigure()
}

// reconfigure rebuilds the handler chain from the current settings.
// Callers must hold mu.
func reconfigure() {
	opts := &slog.HandlerOptions{Level: dynamicLevel{}}

	var base slog.Handler
	switch {
	case currentFormat == "json":
		base = slog.NewJSONHandler(output, opts)
	default:
		base = NewColorTextHandler(output, opts, useColor)
	}

	handler := base
	if sentryEnabled {
		handler = slogmulti.Fanout(
			base,
			slogsentry.Option{Level: sentryLevel}.NewSentryHandler(),
		)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// SetLevel changes the minimum level at runtime. Unknown names leave the
// level unchanged.
func SetLevel(level string) error {
	parsed, err := parseLevel(level)
	if err != nil {
		return err
	}
	currentLevel.Store(int32(parsed))
	return nil
}

// GetLevel returns the current minimum level.
func GetLevel() Level {
	return Level(currentLevel.Load())
}

// SetFormat switches the output encoding at runtime. Unknown names leave the
// format unchanged.
func SetFormat(format string) error {
	f := strings.ToLower(format)
	if f != "text" && f != "json" {
		return fmt.Errorf("unknown log format: %q", format)
	}
	mu.Lock()
	defer mu.Unlock()
	currentFormat = f
	reconfigure()
	return nil
}

// Default returns the shared logger.
func Default() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// With returns a logger that always carries the given attributes.
func With(args ...any) *slog.Logger {
	return Default().With(args...)
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) {
	Default().Debug(msg, args...)
}

// Info logs at INFO level.
func Info(msg string, args ...any) {
	Default().Info(msg, args...)
}

// Warn logs at WARN level.
func Warn(msg string, args ...any) {
	Default().Warn(msg, args...)
}

// Error logs at ERROR level.
func Error(msg string, args ...any) {
	Default().Error(msg, args...)
}

// DebugCtx logs at DEBUG level with fields from the request context attached.
func DebugCtx(ctx context.Context, msg string, args ...any) {
	if ctx == nil {
		ctx = context.Background()
	}
	Default().DebugContext(ctx, msg, appendContextFields(ctx, args)...)
}

// InfoCtx logs at INFO level with fields from the request context attached.
func InfoCtx(ctx context.Context, msg string, args ...any) {
	if ctx == nil {
		ctx = context.Background()
	}
	Default().InfoContext(ctx, msg, appendContextFields(ctx, args)...)
}

// WarnCtx logs at WARN level with fields from the request context attached.
func WarnCtx(ctx context.Context, msg string, args ...any) {
	if ctx == nil {
		ctx = context.Background()
	}
	Default().WarnContext(ctx, msg, appendContextFields(ctx, args)...)
}

// ErrorCtx logs at ERROR level with fields from the request context attached.
func ErrorCtx(ctx context.Context, msg string, args ...any) {
	if ctx == nil {
		ctx = context.Background()
	}
	Default().ErrorContext(ctx, msg, appendContextFields(ctx, args)...)
}

// Debugf logs a printf-style message at DEBUG level.
func Debugf(format string, args ...any) {
	Default().Debug(fmt.Sprintf(format, args...))
}

// Infof logs a printf-style message at INFO level.
func Infof(format string, args ...any) {
	Default().Info(fmt.Sprintf(format, args...))
}

// Warnf logs a printf-style message at WARN level.
func Warnf(format string, args ...any) {
	Default().Warn(fmt.Sprintf(format, args...))
}

// Errorf logs a printf-style message at ERROR level.
func Errorf(format string, args ...any) {
	Default().Error(fmt.Sprintf(format, args...))
}

// Duration renders d as a millisecond attribute, which keeps latency fields
// uniform across the codebase.
func Duration(d time.Duration) slog.Attr {
	return DurationMs(float64(d.Microseconds()) / 1000.0)
}
