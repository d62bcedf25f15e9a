package models

import (
	"time"

	"github.com/google/uuid"
)

// QuotaState is the per-user daily counter gating AI-prompt requests. The
// row is lazily created on first access and never deleted.
type QuotaState struct {
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	DailyCount int       `gorm:"not null;default:0"   json:"dailyCount"`
	ResetDate  time.Time `gorm:"type:date;not null"   json:"resetDate"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"       json:"updatedAt"`
}

// Rollover resets the counter when the stored reset date is not today.
// It must run before any limit comparison so yesterday's count is never
// held against today's limit. Returns true when a reset happened.
func (q *QuotaState) Rollover(today time.Time) bool {
	if sameCalendarDay(q.ResetDate, today) {
		return false
	}
	q.DailyCount = 0
	q.ResetDate = today
	return true
}

// Admit reports whether one more request fits under the limit. It does not
// mutate the counter.
func (q *QuotaState) Admit(limit int) bool {
	return q.DailyCount < limit
}

func (q *QuotaState) Remaining(limit int) int {
	remaining := limit - q.DailyCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
