package event

import (
	"strings"
	"time"

	"github.com/alumni-portal/backend/internal/apperr"
)

// Layouts without an offset are interpreted in the service location.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// parseTimestamp accepts RFC 3339 or a bare ISO-8601 local date-time.
func parseTimestamp(field, s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperr.Validation("%s must be an ISO-8601 timestamp, got %q", field, s)
}
