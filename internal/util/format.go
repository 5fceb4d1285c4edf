package util

import (
	"fmt"
	"time"
)

// FormatElapsed formats whole seconds as "Xh Ym Zs".
// Hours wrap every 24 to match the watch list format.
func FormatElapsed(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := (seconds / 3600) % 24
	m := (seconds / 60) % 60
	s := seconds % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}

// FormatDuration formats a duration for the live header, days included
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	days := total / 86400
	hours := (total / 3600) % 24
	minutes := (total / 60) % 60
	seconds := total % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}

// FormatCounter formats the "count/capacity" fill indicator
func FormatCounter(count, capacity int) string {
	return fmt.Sprintf("%d/%d", count, capacity)
}
