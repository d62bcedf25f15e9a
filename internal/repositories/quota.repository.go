package repositories

import (
	"context"
	"errors"
	"time"

	"betsmith/internal/database"
	. "betsmith/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuotaDecision is the outcome of one check-and-increment attempt. Allowed
// may be true even when the accompanying error is non-nil: the limit check
// passed but the counter write failed, and the caller decides whether to
// fail open.
type QuotaDecision struct {
	Allowed   bool
	Remaining int
}

type QuotaRepository interface {
	CheckAndIncrement(
		ctx context.Context,
		userID uuid.UUID,
		limit int,
		today time.Time,
	) (QuotaDecision, error)
}

type quotaRepository struct {
	db  database.DB
	log logger.Logger
}

func NewQuotaRepository(db database.DB) QuotaRepository {
	return &quotaRepository{
		db:  db,
		log: logger.New("quotaRepository"),
	}
}

// CheckAndIncrement executes the whole read-rollover-check-increment
// sequence as one row-locked transaction, so two concurrent requests from
// the same user cannot both read a stale count and both be admitted.
func (r *quotaRepository) CheckAndIncrement(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
	today time.Time,
) (QuotaDecision, error) {
	log := r.log.Function("CheckAndIncrement")

	var decision QuotaDecision

	err := r.db.SQLWithContext(ctx).Transaction(func(tx *gorm.DB) error {
		state, err := r.lockState(tx, userID, today)
		if err != nil {
			return err
		}

		// Rollover is sequenced before the limit comparison so yesterday's
		// count is never held against today's limit.
		state.Rollover(today)

		if !state.Admit(limit) {
			decision = QuotaDecision{Allowed: false, Remaining: 0}
			return nil
		}

		state.DailyCount++
		decision = QuotaDecision{Allowed: true, Remaining: state.Remaining(limit)}

		return tx.Save(state).Error
	})
	if err != nil {
		return decision, log.Err("quota check-and-increment failed", err, "userID", userID)
	}

	return decision, nil
}

// lockState loads the user's quota row under a row lock, lazily creating it
// on first access.
func (r *quotaRepository) lockState(
	tx *gorm.DB,
	userID uuid.UUID,
	today time.Time,
) (*QuotaState, error) {
	var state QuotaState

	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&state).Error
	if err == nil {
		return &state, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := QuotaState{UserID: userID, ResetDate: today}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&fresh).Error; err != nil {
		return nil, err
	}

	// Re-read under the lock: a concurrent request may have won the insert.
	err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&state).Error
	if err != nil {
		return nil, err
	}

	return &state, nil
}
