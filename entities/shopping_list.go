package entities

import (
	"time"

	"github.com/google/uuid"
)

type ShoppingListItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID         uuid.UUID       `gorm:"index" json:"user_id"`
	IngredientName string          `json:"ingredient_name"`
	Category       ProductCategory `json:"category"`
	QuantityNeeded float64         `json:"quantity_needed"`
	Unit           string          `json:"unit"`
	IsBought       bool            `json:"is_bought"`
	BoughtAt       *time.Time      `json:"bought_at,omitempty"`
	EstimatedPrice *float64        `json:"estimated_price,omitempty"`
	ActualPrice    *float64        `json:"actual_price,omitempty"`
	Store          string          `json:"store,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	ProductID      *uuid.UUID      `json:"product_id,omitempty"` // low-stock product that triggered this entry

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
