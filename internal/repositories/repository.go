package repositories

import (
	"betsmith/internal/database"
)

type Repository struct {
	User           UserRepository
	Recommendation RecommendationRepository
	SavedPick      SavedPickRepository
	Quota          QuotaRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:           NewUserRepository(db),
		Recommendation: NewRecommendationRepository(db.Cache.User),
		SavedPick:      NewSavedPickRepository(db.Cache.User),
		Quota:          NewQuotaRepository(db),
	}
}
