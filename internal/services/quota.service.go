package services

import (
	"context"
	"errors"
	"time"

	"betsmith/config"
	"betsmith/internal/repositories"
	"betsmith/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

// ErrQuotaExceeded is surfaced to the caller when a user is out of daily
// prompt requests.
var ErrQuotaExceeded = errors.New("daily prompt quota exceeded")

// QuotaService gates AI-prompt requests behind a per-user daily counter
// that resets at midnight in the canonical timezone.
type QuotaService struct {
	quotaRepo repositories.QuotaRepository
	location  *time.Location
	log       logger.Logger
}

func NewQuotaService(repos repositories.Repository, config config.Config) (*QuotaService, error) {
	log := logger.New("quotaService")

	location, err := time.LoadLocation(config.QuotaTimezone)
	if err != nil {
		return nil, log.Err("invalid quota timezone", err, "timezone", config.QuotaTimezone)
	}

	return &QuotaService{
		quotaRepo: repos.Quota,
		location:  location,
		log:       log,
	}, nil
}

// CheckAndIncrement admits or rejects one request against the daily limit.
// The read is fail-closed but the counter write is fail-open: a user who
// legitimately passed the limit check is not blocked by a transient storage
// hiccup, at worst they get one uncounted request.
func (s *QuotaService) CheckAndIncrement(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) (allowed bool, remaining int, err error) {
	log := s.log.Function("CheckAndIncrement")

	today := utils.Today(s.location)

	decision, err := s.quotaRepo.CheckAndIncrement(ctx, userID, limit, today)
	if err != nil {
		if decision.Allowed {
			log.Warn(
				"quota increment failed after passing check, allowing request",
				"userID", userID,
				"error", err,
			)
			return true, decision.Remaining, nil
		}
		return false, 0, log.Err("quota check failed", err, "userID", userID)
	}

	if !decision.Allowed {
		return false, 0, nil
	}

	return true, decision.Remaining, nil
}
