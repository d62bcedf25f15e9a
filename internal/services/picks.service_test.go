package services

import (
	"context"
	"errors"
	"testing"

	"betsmith/internal/database"
	. "betsmith/internal/models"
	"betsmith/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeSavedPickRepo struct {
	picks      []*SavedPick
	lastFilter repositories.PickFilter
}

func (f *fakeSavedPickRepo) Create(ctx context.Context, tx *gorm.DB, pick *SavedPick) error {
	pick.ID = uuid.New()
	f.picks = append(f.picks, pick)
	return nil
}

func (f *fakeSavedPickRepo) UpdateStatusOwned(
	ctx context.Context,
	tx *gorm.DB,
	pickID uuid.UUID,
	userID uuid.UUID,
	status PickStatus,
) (*SavedPick, error) {
	for _, pick := range f.picks {
		if pick.ID == pickID && pick.UserID == userID {
			pick.Status = status
			return pick, nil
		}
	}
	return nil, repositories.ErrNotFoundOrNotOwned
}

func (f *fakeSavedPickRepo) ListByOwner(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	filter repositories.PickFilter,
) ([]*SavedPick, error) {
	f.lastFilter = filter
	var owned []*SavedPick
	for _, pick := range f.picks {
		if pick.UserID == userID {
			owned = append(owned, pick)
		}
	}
	return owned, nil
}

func newTestPicksService(repo *fakeSavedPickRepo, publisher *fakePublisher) *PicksService {
	repos := repositories.Repository{SavedPick: repo}
	return NewPicksService(repos, database.DB{}, publisher)
}

func TestSavePickDefaultsToPending(t *testing.T) {
	repo := &fakeSavedPickRepo{}
	service := newTestPicksService(repo, &fakePublisher{})
	userID := uuid.New()

	league := LeagueNBA
	pick, err := service.Save(context.Background(), userID, SavePickInput{
		PlayText: "  Celtics ML vs Lakers  ",
		League:   &league,
	})
	require.NoError(t, err)

	assert.Equal(t, userID, pick.UserID)
	assert.Equal(t, PickStatusPending, pick.Status)
	assert.Equal(t, "Celtics ML vs Lakers", pick.PlayText)
	require.Len(t, repo.picks, 1)
}

func TestSavePickRequiresPlayText(t *testing.T) {
	service := newTestPicksService(&fakeSavedPickRepo{}, &fakePublisher{})

	_, err := service.Save(context.Background(), uuid.New(), SavePickInput{PlayText: "   "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestUpdateStatusTransitions(t *testing.T) {
	repo := &fakeSavedPickRepo{}
	publisher := &fakePublisher{}
	service := newTestPicksService(repo, publisher)
	userID := uuid.New()

	saved, err := service.Save(context.Background(), userID, SavePickInput{PlayText: "Oilers ML"})
	require.NoError(t, err)

	updated, err := service.UpdateStatus(context.Background(), userID, saved.ID, PickStatusHit)
	require.NoError(t, err)
	assert.Equal(t, PickStatusHit, updated.Status)

	// Transitions are reversible
	updated, err = service.UpdateStatus(context.Background(), userID, saved.ID, PickStatusPending)
	require.NoError(t, err)
	assert.Equal(t, PickStatusPending, updated.Status)

	assert.Len(t, publisher.published, 2)
}

func TestUpdateStatusRejectsInvalidStatus(t *testing.T) {
	service := newTestPicksService(&fakeSavedPickRepo{}, &fakePublisher{})

	_, err := service.UpdateStatus(context.Background(), uuid.New(), uuid.New(), PickStatus("won"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestUpdateStatusEnforcesOwnership(t *testing.T) {
	repo := &fakeSavedPickRepo{}
	service := newTestPicksService(repo, &fakePublisher{})
	owner := uuid.New()

	saved, err := service.Save(context.Background(), owner, SavePickInput{PlayText: "Bills -3.5"})
	require.NoError(t, err)

	_, err = service.UpdateStatus(context.Background(), uuid.New(), saved.ID, PickStatusMiss)
	require.Error(t, err)
	assert.True(t, errors.Is(err, repositories.ErrNotFoundOrNotOwned))

	// The pick itself is untouched
	assert.Equal(t, PickStatusPending, repo.picks[0].Status)
}

func TestListPicksClampsPagination(t *testing.T) {
	repo := &fakeSavedPickRepo{}
	service := newTestPicksService(repo, &fakePublisher{})
	userID := uuid.New()

	_, err := service.List(context.Background(), userID, ListPicksInput{})
	require.NoError(t, err)
	assert.Equal(t, defaultPickPageSize, repo.lastFilter.Limit)
	assert.Equal(t, 0, repo.lastFilter.Offset)

	_, err = service.List(context.Background(), userID, ListPicksInput{Limit: 5000, Offset: -3})
	require.NoError(t, err)
	assert.Equal(t, maxPickPageSize, repo.lastFilter.Limit)
	assert.Equal(t, 0, repo.lastFilter.Offset)
}
