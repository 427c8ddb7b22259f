// Package timeutil renders server timestamps for CLI display.
package timeutil

import (
	"fmt"
	"time"
)

// LocalTimeFormat is how absolute times are shown to the operator.
const LocalTimeFormat = "Mon Jan 2 15:04:05 2006"

// FormatUptime turns a Go duration string such as "72h30m15s" into a
// readable "3d 0h 30m 15s". Unparseable input is passed through as-is so
// the raw server value still shows.
func FormatUptime(uptime string) string {
	d, err := time.ParseDuration(uptime)
	if err != nil {
		return uptime
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// FormatTime converts an RFC3339 timestamp into the local display format.
// Unparseable input is passed through as-is.
func FormatTime(timestamp string) string {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return timestamp
	}
	return t.Local().Format(LocalTimeFormat)
}
