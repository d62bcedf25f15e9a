package utils

import "time"

const DateLayout = "2006-01-02"

// Today returns midnight of the current calendar day in the given location.
// Quota resets key off this value so "a new day" means a new day in the
// system's canonical timezone, not the server's.
func Today(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a bare calendar date, tolerating a trailing time part
// (e.g. RFC 3339 timestamps from upstreams that include one).
func ParseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}
