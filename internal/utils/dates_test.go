package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodayIsMidnightInLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	today := Today(loc)
	assert.Equal(t, 0, today.Hour())
	assert.Equal(t, 0, today.Minute())
	assert.Equal(t, loc, today.Location())

	// Nil location falls back to UTC
	assert.Equal(t, time.UTC, Today(nil).Location())
}

func TestParseDate(t *testing.T) {
	parsed, ok := ParseDate("2026-03-01")
	require.True(t, ok)
	assert.Equal(t, "2026-03-01", FormatDate(parsed))

	// Timestamps are truncated to the calendar day
	parsed, ok = ParseDate("2026-03-01T19:30:00Z")
	require.True(t, ok)
	assert.Equal(t, "2026-03-01", FormatDate(parsed))

	_, ok = ParseDate("")
	assert.False(t, ok)

	_, ok = ParseDate("not a date")
	assert.False(t, ok)
}
