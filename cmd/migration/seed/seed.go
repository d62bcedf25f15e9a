package seed

import (
	"betsmith/config"
	. "betsmith/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"gorm.io/gorm"
)

func stringPtr(s string) *string {
	return &s
}

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	users := []User{
		{
			DisplayName:        "Test User",
			Email:              stringPtr("test@example.com"),
			IsActive:           true,
			SubscriptionStatus: SubscriptionActive,
			Units:              1,
		}, {
			DisplayName:        "Trial User",
			Email:              stringPtr("trial@example.com"),
			IsActive:           true,
			SubscriptionStatus: SubscriptionTrial,
			Units:              2,
		}, {
			DisplayName:        "Lapsed User",
			Email:              stringPtr("lapsed@example.com"),
			IsActive:           true,
			SubscriptionStatus: SubscriptionCanceled,
			Units:              1,
		},
	}

	for _, user := range users {
		var existingUser User
		if err := db.First(&existingUser, "email = ?", *user.Email).Error; err == nil {
			log.Info("User already exists", "email", *user.Email)
			continue
		}
		log.Info("Seeding user", "email", *user.Email)
		if err := db.Create(&user).Error; err != nil {
			log.Er("failed to create user", err, "email", *user.Email)
		}
	}

	return nil
}
