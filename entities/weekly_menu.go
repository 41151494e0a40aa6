package entities

import (
	"time"

	"github.com/google/uuid"
)

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
)

func (m MealType) IsValid() bool {
	return m == MealBreakfast || m == MealLunch || m == MealDinner
}

// WeeklyMenuEntry assigns a recipe to one meal slot of a week.
// IngredientsNeeded is a snapshot taken when the entry is created or
// updated; it is not recomputed when the inventory changes afterwards.
type WeeklyMenuEntry struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID            uuid.UUID  `gorm:"index" json:"user_id"`
	WeekStartDate     time.Time  `gorm:"index" json:"week_start_date"`
	DayOfWeek         int        `json:"day_of_week"` // 0 = Monday .. 6 = Sunday
	MealType          MealType   `json:"meal_type"`
	RecipeID          *uuid.UUID `json:"recipe_id,omitempty"`
	Servings          int        `json:"servings"`
	IngredientsNeeded string     `gorm:"type:text" json:"ingredients_needed,omitempty"`
	IsCompleted       bool       `json:"is_completed"`
	Notes             string     `json:"notes,omitempty"`

	User   *User   `gorm:"foreignKey:UserID"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
	Timestamp
}
