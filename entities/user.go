package entities

import (
	"github.com/google/uuid"
)

const (
	SubscriptionFree    = "free"
	SubscriptionPremium = "premium"
)

type User struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Email              string    `gorm:"uniqueIndex" json:"email"`
	Password           string    `json:"-"`
	FullName           string    `json:"full_name"`
	Role               string    `json:"role"`
	DietaryPreferences string    `gorm:"type:text" json:"dietary_preferences,omitempty"`
	SubscriptionTier   string    `json:"subscription_tier"` // "free", "premium"
	IsActive           bool      `json:"is_active"`

	Products      []*Product      `gorm:"foreignKey:UserID"`
	Notifications []*Notification `gorm:"foreignKey:UserID"`
	Timestamp
}
