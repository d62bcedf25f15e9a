package repositories

import (
	"time"

	"betsmith/internal/database"
	. "betsmith/internal/models"

	"context"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RECOMMENDATIONS_CACHE_PREFIX = "recommendations"
	RECOMMENDATIONS_CACHE_EXPIRY = 12 * time.Hour
)

type RecommendationRepository interface {
	DeleteAllForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int, error)
	CreateBatch(ctx context.Context, tx *gorm.DB, recommendations []*Recommendation) error
	GetForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*Recommendation, error)
	GetForUserAndLeague(
		ctx context.Context,
		tx *gorm.DB,
		userID uuid.UUID,
		league League,
	) ([]*Recommendation, error)
	ClearUserRecommendationCache(ctx context.Context, userID uuid.UUID) error
}

type recommendationRepository struct {
	cache database.CacheClient
	log   logger.Logger
}

func NewRecommendationRepository(cache database.CacheClient) RecommendationRepository {
	return &recommendationRepository{
		cache: cache,
		log:   logger.New("recommendationRepository"),
	}
}

// DeleteAllForUser removes every recommendation the user currently has,
// across all leagues. Regeneration calls this exactly once, up front.
func (r *recommendationRepository) DeleteAllForUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) (int, error) {
	log := r.log.Function("DeleteAllForUser")

	rows, err := gorm.G[Recommendation](tx).
		Where("user_id = ?", userID).
		Delete(ctx)
	if err != nil {
		return 0, log.Err("failed to delete recommendations", err, "userID", userID)
	}

	r.clearUserRecommendationCache(ctx, userID)

	return rows, nil
}

func (r *recommendationRepository) CreateBatch(
	ctx context.Context,
	tx *gorm.DB,
	recommendations []*Recommendation,
) error {
	log := r.log.Function("CreateBatch")

	if len(recommendations) == 0 {
		return nil
	}

	for _, recommendation := range recommendations {
		if err := gorm.G[Recommendation](tx).Create(ctx, recommendation); err != nil {
			return log.Err(
				"failed to create recommendation",
				err,
				"userID", recommendation.UserID,
				"league", recommendation.League,
				"riskTier", recommendation.RiskTier,
			)
		}
	}

	r.clearUserRecommendationCache(ctx, recommendations[0].UserID)

	return nil
}

func (r *recommendationRepository) GetForUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) ([]*Recommendation, error) {
	log := r.log.Function("GetForUser")

	var cached []*Recommendation
	found, err := database.NewCacheBuilder(r.cache, userID.String()).
		WithContext(ctx).
		WithHash(RECOMMENDATIONS_CACHE_PREFIX).
		Get(&cached)
	if err != nil {
		log.Warn("failed to get recommendations from cache", "userID", userID, "error", err)
	}

	if found {
		return cached, nil
	}

	recommendations, err := gorm.G[*Recommendation](tx).
		Where("user_id = ?", userID).
		Order("league ASC, confidence DESC").
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to get recommendations", err, "userID", userID)
	}

	err = database.NewCacheBuilder(r.cache, userID.String()).
		WithContext(ctx).
		WithHash(RECOMMENDATIONS_CACHE_PREFIX).
		WithStruct(recommendations).
		WithTTL(RECOMMENDATIONS_CACHE_EXPIRY).
		Set()
	if err != nil {
		log.Warn("failed to set recommendations in cache", "userID", userID, "error", err)
	}

	return recommendations, nil
}

func (r *recommendationRepository) GetForUserAndLeague(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	league League,
) ([]*Recommendation, error) {
	log := r.log.Function("GetForUserAndLeague")

	recommendations, err := gorm.G[*Recommendation](tx).
		Where("user_id = ? AND league = ?", userID, league).
		Order("confidence DESC").
		Find(ctx)
	if err != nil {
		return nil, log.Err(
			"failed to get recommendations",
			err,
			"userID", userID,
			"league", league,
		)
	}

	return recommendations, nil
}

func (r *recommendationRepository) clearUserRecommendationCache(
	ctx context.Context,
	userID uuid.UUID,
) {
	err := database.NewCacheBuilder(r.cache, userID.String()).
		WithContext(ctx).
		WithHash(RECOMMENDATIONS_CACHE_PREFIX).
		Delete()
	if err != nil {
		r.log.Warn("failed to clear user recommendation cache", "userID", userID, "error", err)
	}
}

func (r *recommendationRepository) ClearUserRecommendationCache(
	ctx context.Context,
	userID uuid.UUID,
) error {
	r.clearUserRecommendationCache(ctx, userID)
	return nil
}
