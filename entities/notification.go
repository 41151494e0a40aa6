package entities

import (
	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationExpiringSoon     NotificationType = "EXPIRING_SOON"
	NotificationExpired          NotificationType = "EXPIRED"
	NotificationLowStock         NotificationType = "LOW_STOCK"
	NotificationRecipeSuggestion NotificationType = "RECIPE_SUGGESTION"
)

// At most one unread notification may exist per (user, product, type).
// The migration adds a partial unique index over unread rows to enforce
// this at the database level; NotificationRepository.CreateIfAbsent is the
// application-side guard.
type Notification struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID        `gorm:"index" json:"user_id"`
	ProductID *uuid.UUID       `gorm:"index" json:"product_id,omitempty"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"is_read"`

	User    *User    `gorm:"foreignKey:UserID"`
	Product *Product `gorm:"foreignKey:ProductID"`
	Timestamp
}
