package common

import (
	"fmt"
	"time"
)

// FormatRelative renders how long before now a sighting was observed.
// Timestamps in the future read as "Just now".
func FormatRelative(timestamp, now time.Time) string {
	minutes := int64(now.Sub(timestamp) / time.Minute)

	if minutes < 1 {
		return "Just now"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d minutes ago", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}

	days := hours / 24
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}
