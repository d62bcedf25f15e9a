package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"betsmith/internal/database"
	"betsmith/internal/events"
	. "betsmith/internal/models"
	"betsmith/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeGameSource struct {
	payloads map[League]json.RawMessage
	failures map[League]error
}

func (f *fakeGameSource) RecentGames(ctx context.Context, league League) (json.RawMessage, error) {
	if err, ok := f.failures[league]; ok {
		return nil, err
	}
	return f.payloads[league], nil
}

type fakeRecommendationRepo struct {
	stored      []*Recommendation
	deleteCalls int
	deleteErr   error
	createErr   map[League]error
}

func (f *fakeRecommendationRepo) DeleteAllForUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) (int, error) {
	f.deleteCalls++
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	removed := len(f.stored)
	f.stored = nil
	return removed, nil
}

func (f *fakeRecommendationRepo) CreateBatch(
	ctx context.Context,
	tx *gorm.DB,
	recommendations []*Recommendation,
) error {
	if len(recommendations) > 0 {
		if err, ok := f.createErr[recommendations[0].League]; ok {
			return err
		}
	}
	f.stored = append(f.stored, recommendations...)
	return nil
}

func (f *fakeRecommendationRepo) GetForUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) ([]*Recommendation, error) {
	return f.stored, nil
}

func (f *fakeRecommendationRepo) GetForUserAndLeague(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	league League,
) ([]*Recommendation, error) {
	var matched []*Recommendation
	for _, rec := range f.stored {
		if rec.League == league {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

func (f *fakeRecommendationRepo) ClearUserRecommendationCache(
	ctx context.Context,
	userID uuid.UUID,
) error {
	return nil
}

type fakeUserRepo struct {
	users []*User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetEntitledUsers(ctx context.Context) ([]*User, error) {
	var entitled []*User
	for _, user := range f.users {
		if user.Entitled() {
			entitled = append(entitled, user)
		}
	}
	return entitled, nil
}

func (f *fakeUserRepo) ClearUserCache(ctx context.Context, id uuid.UUID) error {
	return nil
}

type fakePublisher struct {
	published []events.EventType
}

func (f *fakePublisher) Publish(
	ctx context.Context,
	eventType events.EventType,
	userID *uuid.UUID,
	data map[string]any,
) error {
	f.published = append(f.published, eventType)
	return nil
}

func leaguePayload(home, away string) json.RawMessage {
	return json.RawMessage(`{"events": [
		{"id": "e1", "date": "2026-03-02",
		 "home": {"name": "` + home + `", "score": 3}, "away": {"name": "` + away + `", "score": 1}},
		{"id": "e2", "date": "2026-03-01",
		 "home": {"name": "` + home + ` B", "score": 2}, "away": {"name": "` + away + ` B", "score": 4}}
	]}`)
}

func newTestRegenerationService(
	recRepo *fakeRecommendationRepo,
	userRepo *fakeUserRepo,
	games *fakeGameSource,
	publisher *fakePublisher,
) *RegenerationService {
	repos := repositories.Repository{
		User:           userRepo,
		Recommendation: recRepo,
	}
	return NewRegenerationService(
		repos,
		database.DB{},
		games,
		NewGameNormalizerService(),
		NewSynthesizerService(),
		publisher,
	)
}

func testUser() *User {
	user := &User{
		DisplayName:        "Test",
		IsActive:           true,
		SubscriptionStatus: SubscriptionActive,
		Units:              1,
	}
	user.ID = uuid.New()
	return user
}

func TestRegenerateUserPartialFailure(t *testing.T) {
	recRepo := &fakeRecommendationRepo{}
	userRepo := &fakeUserRepo{}
	publisher := &fakePublisher{}
	games := &fakeGameSource{
		payloads: map[League]json.RawMessage{
			LeagueNBA: leaguePayload("Celtics", "Lakers"),
			LeagueMLB: leaguePayload("Yankees", "Red Sox"),
			LeagueMLS: json.RawMessage(`{"events": []}`),
		},
		failures: map[League]error{
			LeagueNHL: &DataSourceError{League: LeagueNHL, Err: errors.New("upstream down")},
		},
	}

	service := newTestRegenerationService(recRepo, userRepo, games, publisher)
	user := testUser()

	report, err := service.RegenerateUser(
		context.Background(),
		user,
		[]League{LeagueNBA, LeagueNHL, LeagueMLB, LeagueMLS},
	)
	require.NoError(t, err)

	require.Len(t, report.Results, 4)
	byLeague := make(map[League]LeagueResult, 4)
	for _, result := range report.Results {
		byLeague[result.League] = result
	}

	assert.Equal(t, LeagueSucceeded, byLeague[LeagueNBA].Status)
	assert.Equal(t, 3, byLeague[LeagueNBA].Stored)
	assert.Equal(t, LeagueFailed, byLeague[LeagueNHL].Status)
	assert.NotEmpty(t, byLeague[LeagueNHL].Error)
	assert.Equal(t, LeagueSucceeded, byLeague[LeagueMLB].Status)
	assert.Equal(t, LeagueSkipped, byLeague[LeagueMLS].Status)
	assert.Equal(t, 2, report.Succeeded())
	assert.Equal(t, 1, report.Failed())

	// One delete for the whole cycle, and six rows stored for the two
	// successful leagues
	assert.Equal(t, 1, recRepo.deleteCalls)
	assert.Len(t, recRepo.stored, 6)
	for _, rec := range recRepo.stored {
		assert.Equal(t, user.ID, rec.UserID)
	}

	require.Len(t, publisher.published, 1)
	assert.Equal(t, events.REGENERATION_COMPLETE, publisher.published[0])
}

func TestRegenerateUserDeleteFailureAborts(t *testing.T) {
	recRepo := &fakeRecommendationRepo{deleteErr: errors.New("db unavailable")}
	userRepo := &fakeUserRepo{}
	publisher := &fakePublisher{}
	games := &fakeGameSource{
		payloads: map[League]json.RawMessage{
			LeagueNBA: leaguePayload("Celtics", "Lakers"),
		},
	}

	service := newTestRegenerationService(recRepo, userRepo, games, publisher)

	report, err := service.RegenerateUser(context.Background(), testUser(), []League{LeagueNBA})
	require.Error(t, err)
	assert.Empty(t, report.Results)
	assert.Empty(t, recRepo.stored)
	assert.Empty(t, publisher.published)
}

func TestRegenerateUserDefaultsToAllLeagues(t *testing.T) {
	recRepo := &fakeRecommendationRepo{}
	userRepo := &fakeUserRepo{}
	publisher := &fakePublisher{}
	games := &fakeGameSource{payloads: map[League]json.RawMessage{}}

	service := newTestRegenerationService(recRepo, userRepo, games, publisher)

	report, err := service.RegenerateUser(context.Background(), testUser(), nil)
	require.NoError(t, err)
	assert.Len(t, report.Results, len(AllLeagues()))
	for _, result := range report.Results {
		assert.Equal(t, LeagueSkipped, result.Status)
	}
}

func TestRegenerateAllUsersSkipsUnentitled(t *testing.T) {
	entitled := testUser()
	trial := testUser()
	trial.SubscriptionStatus = SubscriptionTrial
	canceled := testUser()
	canceled.SubscriptionStatus = SubscriptionCanceled
	inactive := testUser()
	inactive.IsActive = false

	recRepo := &fakeRecommendationRepo{}
	userRepo := &fakeUserRepo{users: []*User{entitled, trial, canceled, inactive}}
	publisher := &fakePublisher{}
	games := &fakeGameSource{
		payloads: map[League]json.RawMessage{
			LeagueNBA: leaguePayload("Celtics", "Lakers"),
		},
	}

	service := newTestRegenerationService(recRepo, userRepo, games, publisher)

	err := service.RegenerateAllUsers(context.Background())
	require.NoError(t, err)

	// Two entitled users, one cycle each
	assert.Equal(t, 2, recRepo.deleteCalls)
	assert.Len(t, publisher.published, 2)
}
