package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(value string) time.Time {
	t, _ := time.Parse("2006-01-02", value)
	return t
}

func TestQuotaAdmitStopsAtLimit(t *testing.T) {
	state := QuotaState{ResetDate: day("2026-03-01")}
	limit := 5

	admitted := 0
	for range 10 {
		state.Rollover(day("2026-03-01"))
		if state.Admit(limit) {
			state.DailyCount++
			admitted++
		}
	}

	assert.Equal(t, limit, admitted)
	assert.Equal(t, limit, state.DailyCount)
	assert.Equal(t, 0, state.Remaining(limit))
}

func TestQuotaRolloverResetsCount(t *testing.T) {
	state := QuotaState{DailyCount: 5, ResetDate: day("2026-03-01")}

	// Same day: no reset
	assert.False(t, state.Rollover(day("2026-03-01")))
	assert.Equal(t, 5, state.DailyCount)
	assert.False(t, state.Admit(5))

	// Next day: count resets before the limit comparison
	assert.True(t, state.Rollover(day("2026-03-02")))
	assert.Equal(t, 0, state.DailyCount)
	assert.Equal(t, day("2026-03-02"), state.ResetDate)
	assert.True(t, state.Admit(5))
}

func TestQuotaRemainingNeverNegative(t *testing.T) {
	state := QuotaState{DailyCount: 9}
	assert.Equal(t, 0, state.Remaining(5))
}
