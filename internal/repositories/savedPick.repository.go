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
)

const (
	PICKS_CACHE_PREFIX = "saved_picks"
	PICKS_CACHE_EXPIRY = 6 * time.Hour
)

// ErrNotFoundOrNotOwned is returned when a pick mutation matches no row for
// the (pickID, userID) pair. It deliberately does not distinguish a missing
// row from a row owned by someone else.
var ErrNotFoundOrNotOwned = errors.New("pick not found or not owned by user")

// PickFilter narrows a ListByOwner query. Nil fields are ignored.
type PickFilter struct {
	Status *PickStatus
	League *League
	Limit  int
	Offset int
}

type SavedPickRepository interface {
	Create(ctx context.Context, tx *gorm.DB, pick *SavedPick) error
	UpdateStatusOwned(
		ctx context.Context,
		tx *gorm.DB,
		pickID uuid.UUID,
		userID uuid.UUID,
		status PickStatus,
	) (*SavedPick, error)
	ListByOwner(
		ctx context.Context,
		tx *gorm.DB,
		userID uuid.UUID,
		filter PickFilter,
	) ([]*SavedPick, error)
}

type savedPickRepository struct {
	cache database.CacheClient
	log   logger.Logger
}

func NewSavedPickRepository(cache database.CacheClient) SavedPickRepository {
	return &savedPickRepository{
		cache: cache,
		log:   logger.New("savedPickRepository"),
	}
}

func (r *savedPickRepository) Create(ctx context.Context, tx *gorm.DB, pick *SavedPick) error {
	log := r.log.Function("Create")

	if err := gorm.G[SavedPick](tx).Create(ctx, pick); err != nil {
		return log.Err("failed to create saved pick", err, "userID", pick.UserID)
	}

	r.clearOwnerPicksCache(ctx, pick.UserID)

	return nil
}

// UpdateStatusOwned mutates a pick's status. Ownership is enforced by the
// query predicate itself rather than a separate read, so there is no
// check/update race to exploit.
func (r *savedPickRepository) UpdateStatusOwned(
	ctx context.Context,
	tx *gorm.DB,
	pickID uuid.UUID,
	userID uuid.UUID,
	status PickStatus,
) (*SavedPick, error) {
	log := r.log.Function("UpdateStatusOwned")

	rows, err := gorm.G[SavedPick](tx).
		Where("id = ? AND user_id = ?", pickID, userID).
		Update(ctx, "status", status)
	if err != nil {
		return nil, log.Err(
			"failed to update pick status",
			err,
			"pickID", pickID,
			"userID", userID,
		)
	}

	if rows == 0 {
		return nil, ErrNotFoundOrNotOwned
	}

	pick, err := gorm.G[*SavedPick](tx).
		Where("id = ? AND user_id = ?", pickID, userID).
		First(ctx)
	if err != nil {
		return nil, log.Err("failed to load updated pick", err, "pickID", pickID)
	}

	r.clearOwnerPicksCache(ctx, userID)

	return pick, nil
}

func (r *savedPickRepository) ListByOwner(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	filter PickFilter,
) ([]*SavedPick, error) {
	log := r.log.Function("ListByOwner")

	query := gorm.G[*SavedPick](tx).Where("user_id = ?", userID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.League != nil {
		query = query.Where("league = ?", *filter.League)
	}

	picks, err := query.
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to list saved picks", err, "userID", userID)
	}

	return picks, nil
}

func (r *savedPickRepository) clearOwnerPicksCache(ctx context.Context, userID uuid.UUID) {
	err := database.NewCacheBuilder(r.cache, userID.String()).
		WithContext(ctx).
		WithHash(PICKS_CACHE_PREFIX).
		Delete()
	if err != nil {
		r.log.Warn("failed to clear saved picks cache", "userID", userID, "error", err)
	}
}
