package utils

import "time"

// Timestamp formats t the way records store times: RFC3339 in UTC
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseTimestamp parses a stored RFC3339 timestamp
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
