package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PickStatus string

const (
	PickStatusPending PickStatus = "pending"
	PickStatusHit     PickStatus = "hit"
	PickStatusMiss    PickStatus = "miss"
)

func ParsePickStatus(value string) (PickStatus, bool) {
	status := PickStatus(strings.ToLower(strings.TrimSpace(value)))
	switch status {
	case PickStatusPending, PickStatusHit, PickStatusMiss:
		return status, true
	}
	return "", false
}

// SavedPick is a user-tracked recommendation. PlayText is a snapshot copied
// at save time so later regeneration cycles cannot alter a tracked pick;
// SourceRecommendationID is a weak, display-only back-reference.
type SavedPick struct {
	BaseUUIDModel
	UserID                 uuid.UUID      `gorm:"type:uuid;not null;index:idx_picks_user_status,composite:0" json:"userId"`
	PlayText               string         `gorm:"type:text;not null"                                         json:"playText"`
	SourceRecommendationID *uuid.UUID     `gorm:"type:uuid"                                                  json:"sourceRecommendationId,omitempty"`
	Reasoning              string         `gorm:"type:text"                                                  json:"reasoning"`
	League                 *League        `gorm:"type:varchar(8)"                                            json:"league,omitempty"`
	BetType                *BetType       `gorm:"type:varchar(16)"                                           json:"betType,omitempty"`
	Metadata               datatypes.JSON `gorm:"type:jsonb"                                                 json:"metadata,omitempty"`
	Status                 PickStatus     `gorm:"type:varchar(12);not null;default:'pending';index:idx_picks_user_status,composite:1" json:"status"`
}
