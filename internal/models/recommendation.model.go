package models

import (
	"time"

	"github.com/google/uuid"
)

// Recommendation is one proposed bet. Exactly one per risk tier exists per
// (user, league) after a successful synthesis cycle; rows are replaced in
// bulk by regeneration and never mutated in place.
type Recommendation struct {
	BaseEphemeralModel
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rec_user_league_tier,composite:0;index" json:"userId"`
	League      League    `gorm:"type:varchar(8);not null;uniqueIndex:idx_rec_user_league_tier,composite:1" json:"league"`
	RiskTier    RiskTier  `gorm:"type:varchar(16);not null;uniqueIndex:idx_rec_user_league_tier,composite:2" json:"riskTier"`
	BetType     BetType   `gorm:"type:varchar(16);not null"                                                 json:"betType"`
	Description string    `gorm:"type:text;not null"                                                        json:"description"`
	Subject     string    `gorm:"type:text;not null"                                                        json:"subject"`
	Opponent    *string   `gorm:"type:text"                                                                 json:"opponent,omitempty"`
	Line        string    `gorm:"type:text"                                                                 json:"line"`
	Odds        string    `gorm:"type:text"                                                                 json:"odds"`
	Confidence  int       `gorm:"not null"                                                                  json:"confidence"`
	MatchDate   time.Time `gorm:"type:date"                                                                 json:"matchDate"`
	Reasoning   string    `gorm:"type:text"                                                                 json:"reasoning"`
}

// Preferences carries the per-user knobs the synthesizer honors.
type Preferences struct {
	Units int `json:"units"`
}

func (p Preferences) StakeUnits() int {
	if p.Units <= 0 {
		return 1
	}
	return p.Units
}
