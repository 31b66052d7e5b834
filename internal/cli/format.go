package cli

import (
	"strings"
	"time"

	"tradejournal/internal/models"
)

// FormatDate formats a date for display.
func FormatDate(t time.Time) string {
	return t.Format(models.DateLayout)
}

// FormatTime formats a time of day for display.
func FormatTime(t time.Time) string {
	return t.Format(models.TimeLayout)
}

// TruncateString truncates a string to maxLen, appending an ellipsis.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// FormatConfidence renders confidence 1-5 as a star scale.
func FormatConfidence(conf int) string {
	if conf < 0 {
		conf = 0
	}
	if conf > 5 {
		conf = 5
	}
	return strings.Repeat("★", conf) + strings.Repeat("☆", 5-conf)
}

// shortID returns the first segment of a UUID for compact display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
