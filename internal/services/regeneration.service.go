package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"betsmith/internal/database"
	"betsmith/internal/events"
	. "betsmith/internal/models"
	"betsmith/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

type LeagueStatus string

const (
	LeagueSucceeded LeagueStatus = "succeeded"
	LeagueSkipped   LeagueStatus = "skipped"
	LeagueFailed    LeagueStatus = "failed"
)

// LeagueResult records one league's outcome within a regeneration cycle:
// succeeded with N stored, skipped because no games were available, or
// failed with an error.
type LeagueResult struct {
	League League       `json:"league"`
	Status LeagueStatus `json:"status"`
	Stored int          `json:"stored"`
	Error  string       `json:"error,omitempty"`
}

// CycleReport is the always-returned per-league breakdown of one user's
// regeneration cycle. A cycle with failed leagues is still a completed
// cycle; the user just has fewer recommendations.
type CycleReport struct {
	UserID      uuid.UUID      `json:"userId"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Results     []LeagueResult `json:"results"`
}

func (r CycleReport) Succeeded() int {
	return r.count(LeagueSucceeded)
}

func (r CycleReport) Failed() int {
	return r.count(LeagueFailed)
}

func (r CycleReport) count(status LeagueStatus) int {
	n := 0
	for _, result := range r.Results {
		if result.Status == status {
			n++
		}
	}
	return n
}

// EventPublisher is the slice of the event bus regeneration needs.
type EventPublisher interface {
	Publish(ctx context.Context, eventType events.EventType, userID *uuid.UUID, data map[string]any) error
}

// RegenerationService orchestrates "replace all recommendations for a
// user": one up-front delete, then an independent synthesis-and-store pass
// per league. A reader can transiently observe fewer than three
// recommendations for leagues not yet processed; that weak-consistency
// window is accepted.
type RegenerationService struct {
	recommendationRepo repositories.RecommendationRepository
	userRepo           repositories.UserRepository
	games              GameSource
	normalizer         *GameNormalizerService
	synthesizer        *SynthesizerService
	eventBus           EventPublisher
	db                 database.DB
	log                logger.Logger
	userLocks          sync.Map
}

func NewRegenerationService(
	repos repositories.Repository,
	db database.DB,
	games GameSource,
	normalizer *GameNormalizerService,
	synthesizer *SynthesizerService,
	eventBus EventPublisher,
) *RegenerationService {
	return &RegenerationService{
		recommendationRepo: repos.Recommendation,
		userRepo:           repos.User,
		games:              games,
		normalizer:         normalizer,
		synthesizer:        synthesizer,
		eventBus:           eventBus,
		db:                 db,
		log:                logger.New("regenerationService"),
	}
}

// lockUser serializes regeneration cycles per user so two racing triggers
// cannot interleave deletes and inserts for the same (user, league) pairs.
func (s *RegenerationService) lockUser(userID uuid.UUID) func() {
	value, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// RegenerateUser runs one full cycle for one user. Leagues defaults to all
// supported leagues when nil. The returned report always carries one entry
// per processed league; a league failure never aborts its siblings.
func (s *RegenerationService) RegenerateUser(
	ctx context.Context,
	user *User,
	leagues []League,
) (CycleReport, error) {
	log := s.log.Function("RegenerateUser")

	if leagues == nil {
		leagues = AllLeagues()
	}

	unlock := s.lockUser(user.ID)
	defer unlock()

	report := CycleReport{
		UserID:      user.ID,
		GeneratedAt: time.Now().UTC(),
		Results:     make([]LeagueResult, 0, len(leagues)),
	}

	// One up-front delete for the whole cycle. If this fails nothing else
	// is safe to do: the old rows are still intact, so bail out whole.
	if _, err := s.recommendationRepo.DeleteAllForUser(ctx, s.db.SQL, user.ID); err != nil {
		return report, log.Err("failed to clear prior recommendations", err, "userID", user.ID)
	}

	prefs := user.Preferences()

	for _, league := range leagues {
		result := s.regenerateLeague(ctx, user.ID, league, prefs)
		report.Results = append(report.Results, result)
	}

	if err := s.recommendationRepo.ClearUserRecommendationCache(ctx, user.ID); err != nil {
		log.Warn("failed to clear recommendation cache", "userID", user.ID, "error", err)
	}

	s.publishCycleComplete(ctx, report)

	log.Info(
		"regeneration cycle complete",
		"userID", user.ID,
		"succeeded", report.Succeeded(),
		"failed", report.Failed(),
	)

	return report, nil
}

func (s *RegenerationService) regenerateLeague(
	ctx context.Context,
	userID uuid.UUID,
	league League,
	prefs Preferences,
) LeagueResult {
	log := s.log.Function("regenerateLeague")

	raw, err := s.games.RecentGames(ctx, league)
	if err != nil {
		log.Warn("league fetch failed, skipping league", "league", league, "error", err)
		return LeagueResult{League: league, Status: LeagueFailed, Error: err.Error()}
	}

	records, err := s.normalizer.Normalize(league, raw)
	if err != nil {
		log.Warn("league payload unusable, skipping league", "league", league, "error", err)
		return LeagueResult{League: league, Status: LeagueFailed, Error: err.Error()}
	}

	if len(records) == 0 {
		return LeagueResult{League: league, Status: LeagueSkipped}
	}

	recommendations := s.synthesizer.Synthesize(league, records, prefs)

	toStore := make([]*Recommendation, 0, len(recommendations))
	for i := range recommendations {
		recommendations[i].UserID = userID
		toStore = append(toStore, &recommendations[i])
	}

	if err := s.recommendationRepo.CreateBatch(ctx, s.db.SQL, toStore); err != nil {
		log.Warn("failed to store league recommendations", "league", league, "error", err)
		return LeagueResult{League: league, Status: LeagueFailed, Error: err.Error()}
	}

	return LeagueResult{League: league, Status: LeagueSucceeded, Stored: len(toStore)}
}

func (s *RegenerationService) publishCycleComplete(ctx context.Context, report CycleReport) {
	if s.eventBus == nil {
		return
	}

	userID := report.UserID
	err := s.eventBus.Publish(ctx, events.REGENERATION_COMPLETE, &userID, map[string]any{
		"succeeded": report.Succeeded(),
		"failed":    report.Failed(),
		"results":   report.Results,
	})
	if err != nil {
		s.log.Warn("failed to publish regeneration event", "userID", userID, "error", err)
	}
}

// RegenerateAllUsers runs a cycle for every entitled user, logging and
// continuing on per-user failure.
func (s *RegenerationService) RegenerateAllUsers(ctx context.Context) error {
	log := s.log.Function("RegenerateAllUsers")

	users, err := s.userRepo.GetEntitledUsers(ctx)
	if err != nil {
		return log.Err("failed to get entitled users", err)
	}

	successCount := 0
	failureCount := 0

	for _, user := range users {
		report, err := s.RegenerateUser(ctx, user, nil)
		if err != nil {
			log.Warn("failed to regenerate for user", "userID", user.ID, "error", err)
			failureCount++
			continue
		}

		if report.Failed() > 0 {
			log.Warn(
				"regeneration completed with league failures",
				"userID", user.ID,
				"failedLeagues", report.Failed(),
			)
		}

		successCount++
	}

	log.Info(
		"completed regeneration for all users",
		"totalUsers", len(users),
		"successful", successCount,
		"failed", failureCount,
	)

	if failureCount > 0 {
		return fmt.Errorf(
			"failed to regenerate recommendations for %d/%d users",
			failureCount,
			len(users),
		)
	}

	return nil
}
