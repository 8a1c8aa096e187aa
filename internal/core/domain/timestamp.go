package domain

import (
	"fmt"
	"strings"
	"time"
)

// timestampLayouts are tried in order when normalising collector-supplied
// timestamps. Layouts without an offset are interpreted as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp normalises a collector-supplied timestamp string to UTC.
// A trailing "Z" designator is accepted as equivalent to an explicit zero
// offset; values carrying no offset at all are treated as UTC. All stored
// and compared timestamps pass through here exactly once, at the ingestion
// boundary.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty timestamp", ErrInvalidInput)
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparsable timestamp %q", ErrInvalidInput, s)
}
