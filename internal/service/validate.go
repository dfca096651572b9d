package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/msomdec/items-api/internal/domain"
)

// timestampLayouts are tried in order. Layouts without a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// parseTimestamp parses a client-supplied timestamp for field. An empty
// value yields fallback.
func parseTimestamp(field, value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return normalizeTime(t), nil
		}
	}
	return time.Time{}, domain.Invalid("Invalid " + field + ".")
}

// normalizeTime converts t to UTC at millisecond precision, the resolution
// clients send and receive.
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// canonicalID returns the lowercase hyphenated form of id when it is a UUID
// in any spelling uuid.Parse accepts, and id unchanged otherwise.
func canonicalID(id string) string {
	u, err := uuid.Parse(id)
	if err != nil {
		return id
	}
	return u.String()
}

// sameID compares a stored user id with a client-supplied one.
func sameID(stored, submitted string) bool {
	return submitted != "" && canonicalID(stored) == canonicalID(submitted)
}
