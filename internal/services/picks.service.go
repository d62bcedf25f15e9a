package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"betsmith/internal/database"
	"betsmith/internal/events"
	. "betsmith/internal/models"
	"betsmith/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ErrValidation marks client errors on pick creation and updates.
var ErrValidation = errors.New("validation failed")

const (
	defaultPickPageSize = 50
	maxPickPageSize     = 100
)

// SavePickInput carries everything a user supplies when tracking a
// recommendation. PlayText is required; all else is optional.
type SavePickInput struct {
	PlayText               string         `json:"playText"`
	SourceRecommendationID *uuid.UUID     `json:"sourceRecommendationId,omitempty"`
	Reasoning              string         `json:"reasoning,omitempty"`
	League                 *League        `json:"league,omitempty"`
	BetType                *BetType       `json:"betType,omitempty"`
	Metadata               datatypes.JSON `json:"metadata,omitempty"`
}

// ListPicksInput filters and paginates an owner's picks.
type ListPicksInput struct {
	Status *PickStatus
	League *League
	Limit  int
	Offset int
}

// PicksService owns the SavedPick lifecycle: creation from a
// recommendation snapshot and user-driven status transitions with
// ownership enforcement.
type PicksService struct {
	pickRepo repositories.SavedPickRepository
	eventBus EventPublisher
	db       database.DB
	log      logger.Logger
}

func NewPicksService(
	repos repositories.Repository,
	db database.DB,
	eventBus EventPublisher,
) *PicksService {
	return &PicksService{
		pickRepo: repos.SavedPick,
		eventBus: eventBus,
		db:       db,
		log:      logger.New("picksService"),
	}
}

// Save tracks a recommendation as a pick. The play text is copied, not
// linked live, so later regeneration cycles cannot silently alter it.
func (s *PicksService) Save(
	ctx context.Context,
	userID uuid.UUID,
	input SavePickInput,
) (*SavedPick, error) {
	log := s.log.Function("Save")

	playText := strings.TrimSpace(input.PlayText)
	if playText == "" {
		return nil, fmt.Errorf("%w: playText is required", ErrValidation)
	}

	pick := &SavedPick{
		UserID:                 userID,
		PlayText:               playText,
		SourceRecommendationID: input.SourceRecommendationID,
		Reasoning:              input.Reasoning,
		League:                 input.League,
		BetType:                input.BetType,
		Metadata:               input.Metadata,
		Status:                 PickStatusPending,
	}

	if err := s.pickRepo.Create(ctx, s.db.SQL, pick); err != nil {
		return nil, log.Err("failed to save pick", err, "userID", userID)
	}

	log.Info("pick saved", "userID", userID, "pickID", pick.ID)

	return pick, nil
}

// UpdateStatus moves a pick to any of pending/hit/miss. Transitions are
// user-driven and unordered; ownership is enforced by the repository's
// query predicate.
func (s *PicksService) UpdateStatus(
	ctx context.Context,
	userID uuid.UUID,
	pickID uuid.UUID,
	status PickStatus,
) (*SavedPick, error) {
	log := s.log.Function("UpdateStatus")

	if _, ok := ParsePickStatus(string(status)); !ok {
		return nil, fmt.Errorf("%w: invalid pick status %q", ErrValidation, status)
	}

	pick, err := s.pickRepo.UpdateStatusOwned(ctx, s.db.SQL, pickID, userID, status)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFoundOrNotOwned) {
			return nil, err
		}
		return nil, log.Err("failed to update pick status", err, "pickID", pickID)
	}

	s.publishPickUpdated(ctx, pick)

	return pick, nil
}

// List returns the owner's picks, newest first.
func (s *PicksService) List(
	ctx context.Context,
	userID uuid.UUID,
	input ListPicksInput,
) ([]*SavedPick, error) {
	log := s.log.Function("List")

	limit := input.Limit
	if limit <= 0 {
		limit = defaultPickPageSize
	}
	if limit > maxPickPageSize {
		limit = maxPickPageSize
	}

	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	picks, err := s.pickRepo.ListByOwner(ctx, s.db.SQL, userID, repositories.PickFilter{
		Status: input.Status,
		League: input.League,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, log.Err("failed to list picks", err, "userID", userID)
	}

	return picks, nil
}

func (s *PicksService) publishPickUpdated(ctx context.Context, pick *SavedPick) {
	if s.eventBus == nil {
		return
	}

	userID := pick.UserID
	err := s.eventBus.Publish(ctx, events.PICK_UPDATED, &userID, map[string]any{
		"pickId": pick.ID,
		"status": pick.Status,
	})
	if err != nil {
		s.log.Warn("failed to publish pick event", "pickID", pick.ID, "error", err)
	}
}
