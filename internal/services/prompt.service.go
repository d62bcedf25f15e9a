package services

import (
	"context"

	"betsmith/config"
	"betsmith/internal/database"
	. "betsmith/internal/models"
	"betsmith/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
)

// PromptResult is the outcome of one quota-gated AI-prompt request,
// including how many requests the user has left today.
type PromptResult struct {
	Text      string          `json:"text"`
	Intent    ExtractedIntent `json:"intent"`
	Remaining int             `json:"remaining"`
}

// PromptService is the thin pipeline around the external AI collaborators:
// quota gate first (before any expensive work), then best-effort entity
// extraction, then text generation grounded on the user's stored
// recommendations.
type PromptService struct {
	quota              *QuotaService
	ai                 *AIClientService
	recommendationRepo repositories.RecommendationRepository
	db                 database.DB
	limit              int
	log                logger.Logger
}

func NewPromptService(
	quota *QuotaService,
	ai *AIClientService,
	repos repositories.Repository,
	db database.DB,
	config config.Config,
) *PromptService {
	return &PromptService{
		quota:              quota,
		ai:                 ai,
		recommendationRepo: repos.Recommendation,
		db:                 db,
		limit:              config.PromptDailyLimit,
		log:                logger.New("promptService"),
	}
}

func (s *PromptService) HandlePrompt(
	ctx context.Context,
	user *User,
	text string,
) (*PromptResult, error) {
	log := s.log.Function("HandlePrompt")

	allowed, remaining, err := s.quota.CheckAndIncrement(ctx, user.ID, s.limit)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrQuotaExceeded
	}

	// Extraction is best effort: a failed or empty extraction still yields
	// a usable prompt, just without league/bet-type grounding.
	intent, err := s.ai.Extract(ctx, text)
	if err != nil {
		log.Warn("entity extraction failed, continuing without intent", "error", err)
		intent = ExtractedIntent{}
	}

	grounding, err := s.gatherContext(ctx, user, intent)
	if err != nil {
		log.Warn("failed to gather recommendation context", "userID", user.ID, "error", err)
	}

	generated, err := s.ai.GenerateText(ctx, text, grounding)
	if err != nil {
		return nil, log.Err("failed to generate recommendation text", err, "userID", user.ID)
	}

	return &PromptResult{
		Text:      generated,
		Intent:    intent,
		Remaining: remaining,
	}, nil
}

func (s *PromptService) gatherContext(
	ctx context.Context,
	user *User,
	intent ExtractedIntent,
) ([]*Recommendation, error) {
	if intent.League != nil {
		return s.recommendationRepo.GetForUserAndLeague(ctx, s.db.SQL, user.ID, *intent.League)
	}
	return s.recommendationRepo.GetForUser(ctx, s.db.SQL, user.ID)
}
