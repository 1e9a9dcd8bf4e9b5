// Package timeutil is the single place session timestamps are parsed and
// compared. Session documents written by earlier deployments carry RFC 3339
// strings, some without a zone offset; those are taken as UTC.
package timeutil

import (
	"fmt"
	"time"
)

var stampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999", // no offset, legacy rows
	"2006-01-02T15:04:05",
}

// ParseStamp parses a stored timestamp and normalizes it to UTC.
// A stamp with no zone offset is treated as UTC, not rejected.
func ParseStamp(s string) (time.Time, error) {
	for _, layout := range stampLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// FormatStamp renders a timestamp the way session documents store it.
func FormatStamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// Expired reports whether a stored expiry stamp is in the past relative to
// now. An unparseable stamp counts as expired.
func Expired(stamp string, now time.Time) bool {
	t, err := ParseStamp(stamp)
	if err != nil {
		return true
	}
	return t.Before(now.UTC())
}
