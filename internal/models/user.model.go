package models

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionTrial    SubscriptionStatus = "trial"
	SubscriptionCanceled SubscriptionStatus = "canceled"
	SubscriptionNone     SubscriptionStatus = "none"
)

// User mirrors the account record owned by the external auth/billing
// collaborators. This service only reads it to scope work and entitlement.
type User struct {
	BaseUUIDModel
	DisplayName        string             `gorm:"type:text"                        json:"displayName"`
	Email              *string            `gorm:"type:text;uniqueIndex"            json:"email,omitempty"`
	IsActive           bool               `gorm:"type:bool;default:true"           json:"isActive"`
	SubscriptionStatus SubscriptionStatus `gorm:"type:varchar(16);default:'none'"  json:"subscriptionStatus"`
	Units              int                `gorm:"default:1"                        json:"units"`
}

// Entitled reports whether the user qualifies for recommendation
// regeneration (active or trial subscription on an active account).
func (u *User) Entitled() bool {
	if !u.IsActive {
		return false
	}
	return u.SubscriptionStatus == SubscriptionActive || u.SubscriptionStatus == SubscriptionTrial
}

func (u *User) Preferences() Preferences {
	return Preferences{Units: u.Units}
}
