package cache

import (
	"fmt"
	"strconv"
	"time"
)

// ErrNegativeTTL is returned when a TTL parses to a negative value.
var ErrNegativeTTL = fmt.Errorf("TTL must be non-negative")

// ParseTTL parses a TTL given either as integer seconds ("300") or as a Go
// duration string ("5m", "1h30m"). A TTL of 0 is accepted and means the
// result is never considered fresh, so every run re-executes.
func ParseTTL(s string) (int64, error) {
	if seconds, err := strconv.ParseInt(s, 10, 64); err == nil {
		if seconds < 0 {
			return 0, fmt.Errorf("%w: got %d", ErrNegativeTTL, seconds)
		}
		return seconds, nil
	}

	duration, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid TTL %q: %w", s, err)
	}
	if duration < 0 {
		return 0, fmt.Errorf("%w: got %s", ErrNegativeTTL, duration)
	}

	return int64(duration.Seconds()), nil
}

// FormatDuration renders a duration compactly for listings: "45s", "12m",
// "1h5m", "2d".
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.0fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%.0fm", d.Minutes())
	case d < 24*time.Hour:
		hours := int(d.Hours())
		minutes := int(d.Minutes()) % 60
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, minutes)
	default:
		days := int(d.Hours()) / 24
		hours := int(d.Hours()) % 24
		if hours == 0 {
			return fmt.Sprintf("%dd", days)
		}
		return fmt.Sprintf("%dd%dh", days, hours)
	}
}
