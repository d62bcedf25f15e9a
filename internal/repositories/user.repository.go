package repositories

import (
	"context"
	"time"

	"betsmith/internal/database"
	. "betsmith/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	USER_CACHE_PREFIX = "user:"
	USER_CACHE_EXPIRY = 24 * time.Hour
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetEntitledUsers(ctx context.Context) ([]*User, error)
	ClearUserCache(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db  database.DB
	log logger.Logger
}

func NewUserRepository(db database.DB) UserRepository {
	return &userRepository{
		db:  db,
		log: logger.New("userRepository"),
	}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	log := r.log.Function("GetByID")

	var user User
	cacheKey := USER_CACHE_PREFIX + id.String()
	found, err := database.NewCacheBuilder(r.db.Cache.User, cacheKey).
		WithContext(ctx).
		Get(&user)
	if err != nil {
		log.Warn("failed to get user from cache", "userID", id, "error", err)
	}
	if found {
		return &user, nil
	}

	loaded, err := gorm.G[*User](r.db.SQL).Where("id = ?", id).First(ctx)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, log.Err("failed to get user", err, "userID", id)
	}

	err = database.NewCacheBuilder(r.db.Cache.User, cacheKey).
		WithContext(ctx).
		WithStruct(loaded).
		WithTTL(USER_CACHE_EXPIRY).
		Set()
	if err != nil {
		log.Warn("failed to set user in cache", "userID", id, "error", err)
	}

	return loaded, nil
}

// GetEntitledUsers returns every active user whose subscription qualifies
// for recommendation regeneration.
func (r *userRepository) GetEntitledUsers(ctx context.Context) ([]*User, error) {
	log := r.log.Function("GetEntitledUsers")

	users, err := gorm.G[*User](r.db.SQL).
		Where("is_active = ? AND subscription_status IN ?", true,
			[]SubscriptionStatus{SubscriptionActive, SubscriptionTrial}).
		Order("created_at ASC").
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to get entitled users", err)
	}

	return users, nil
}

func (r *userRepository) ClearUserCache(ctx context.Context, id uuid.UUID) error {
	cacheKey := USER_CACHE_PREFIX + id.String()
	err := database.NewCacheBuilder(r.db.Cache.User, cacheKey).
		WithContext(ctx).
		Delete()
	if err != nil {
		return r.log.Function("ClearUserCache").
			Err("failed to clear user cache", err, "userID", id)
	}
	return nil
}
