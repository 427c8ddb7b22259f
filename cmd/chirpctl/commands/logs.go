package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/chirpnet/chirpd/pkg/config"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var (
	logsConfig string
	logsFollow bool
	logsLines  int
	logsSince  string
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Tail server logs",
	Long: `Read the chirpd server log file and print the most recent entries.

The log file location comes from 'logging.output' in the server
configuration, so this command only works on the machine running chirpd.
When the server logs to stdout or stderr there is no file to read and the
command reports that instead.

Examples:
  # Last 100 lines (the default)
  chirpctl logs

  # Last 20 lines, then keep following
  chirpctl logs -f -n 20

  # Entries logged after a point in time
  chirpctl logs --since "2024-01-15T10:00:00Z"`,
	RunE: runLogs,
}

func init() {
	logsCmd.Flags().StringVar(&logsConfig, "config", "", "Server config file (default: $XDG_CONFIG_HOME/chirpd/config.yaml)")
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Follow log output")
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", 100, "Number of lines to show")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "Show logs since timestamp (RFC3339 format)")
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(logsConfig)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logFile := cfg.Logging.Output
	if logFile == "stdout" || logFile == "stderr" {
		return fmt.Errorf("server is configured to log to %s, not a file\nConfigure 'logging.output' in config to a file path to use this command", logFile)
	}
	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		return fmt.Errorf("log file not found: %s\nThe server may not have started yet or is logging elsewhere", logFile)
	}

	var since time.Time
	if logsSince != "" {
		since, err = time.Parse(time.RFC3339, logsSince)
		if err != nil {
			return fmt.Errorf("invalid --since format (use RFC3339): %w", err)
		}
	}

	if err := printLastLines(logFile, logsLines, since); err != nil {
		return err
	}
	if logsFollow {
		return followLogFile(logFile)
	}
	return nil
}

// printLastLines prints the last n lines of the log file, skipping entries
// older than since when since is set. Lines are kept in a fixed-size ring so
// large files are not held in memory whole.
func printLastLines(logFile string, n int, since time.Time) error {
	if n <= 0 {
		return nil
	}

	file, err := os.Open(logFile)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	ring := make([]string, n)
	total := 0

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !since.IsZero() {
			if ts := logLineTime(line); !ts.IsZero() && ts.Before(since) {
				continue
			}
		}
		ring[total%n] = line
		total++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading log file: %w", err)
	}

	kept := min(total, n)
	for i := total - kept; i < total; i++ {
		fmt.Println(ring[i%n])
	}
	return nil
}

// followLogFile watches the log file and prints lines as they are appended.
// It returns when the process receives SIGINT or SIGTERM, or when the file
// is rotated away underneath us.
func followLogFile(logFile string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(logFile); err != nil {
		return fmt.Errorf("failed to watch log file: %w", err)
	}

	file, err := os.Open(logFile)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Everything before this point was already printed.
	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end of log file: %w", err)
	}
	reader := bufio.NewReader(file)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "Following %s (Ctrl+C to stop)...\n", logFile)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			switch {
			case event.Op.Has(fsnotify.Write):
				printAppended(reader)
			case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
				return fmt.Errorf("log file %s was rotated or removed, rerun 'chirpctl logs' to reattach", logFile)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// printAppended drains complete lines that arrived since the last read. A
// trailing partial line stays buffered until its newline shows up.
func printAppended(reader *bufio.Reader) {
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		fmt.Print(line)
	}
}

// logLineTime extracts the timestamp from a log line in either of the
// formats chirpd writes: the text handler's "[2006-01-02 15:04:05]" prefix
// or the JSON handler's "time" field. Returns the zero time when the line
// carries no recognizable timestamp.
func logLineTime(line string) time.Time {
	// Text format: [2006-01-02 15:04:05] [LEVEL] ...
	if strings.HasPrefix(line, "[") && len(line) >= 21 {
		if t, err := time.ParseInLocation("2006-01-02 15:04:05", line[1:20], time.Local); err == nil {
			return t
		}
	}

	// JSON format: {"time":"2024-01-15T10:30:45.123Z",...}
	const timeKey = `"time":"`
	if idx := strings.Index(line, timeKey); idx >= 0 {
		rest := line[idx+len(timeKey):]
		if end := strings.IndexByte(rest, '"'); end > 0 {
			if t, err := time.Parse(time.RFC3339Nano, rest[:end]); err == nil {
				return t
			}
		}
	}

	return time.Time{}
}
