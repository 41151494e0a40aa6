package domain

import (
	"errors"
)

var (
	MessageSuccessAddMenuEntry      = "menu entry added successfully"
	MessageSuccessUpdateMenuEntry   = "menu entry updated successfully"
	MessageSuccessDeleteMenuEntry   = "menu entry deleted successfully"
	MessageSuccessGetWeeklyMenu     = "weekly menu retrieved successfully"
	MessageSuccessCheckAvailability = "ingredient availability checked successfully"
	MessageSuccessMenuShoppingList  = "shopping list generated from menu successfully"

	MessageFailedAddMenuEntry      = "failed to add menu entry"
	MessageFailedUpdateMenuEntry   = "failed to update menu entry"
	MessageFailedDeleteMenuEntry   = "failed to delete menu entry"
	MessageFailedGetWeeklyMenu     = "failed to retrieve weekly menu"
	MessageFailedCheckAvailability = "failed to check ingredient availability"
	MessageFailedMenuShoppingList  = "failed to generate shopping list from menu"

	ErrMenuEntryNotFound = errors.New("menu entry not found")
	ErrInvalidMealType   = errors.New("invalid meal type")
	ErrInvalidDayOfWeek  = errors.New("day of week must be between 0 and 6")
	ErrInvalidWeekStart  = errors.New("invalid week start date")
	ErrEmptyWeeklyMenu   = errors.New("no menu entries for this week")
)

type (
	AddMenuEntryRequest struct {
		WeekStartDate string `json:"week_start_date" validate:"required"`
		DayOfWeek     int    `json:"day_of_week" validate:"min=0,max=6"`
		MealType      string `json:"meal_type" validate:"required,oneof=breakfast lunch dinner"`
		RecipeID      string `json:"recipe_id" validate:"required,uuid"`
		Servings      int    `json:"servings" validate:"omitempty,min=1,max=20"`
		Notes         string `json:"notes" validate:"omitempty"`
	}

	UpdateMenuEntryRequest struct {
		RecipeID    string  `json:"recipe_id" validate:"omitempty,uuid"`
		Servings    *int    `json:"servings" validate:"omitempty,min=1,max=20"`
		Notes       *string `json:"notes"`
		IsCompleted *bool   `json:"is_completed"`
	}

	// MenuIngredient is one line of an availability check: how much the
	// scaled recipe needs versus what the inventory currently holds.
	MenuIngredient struct {
		Name               string  `json:"name"`
		QuantityNeeded     float64 `json:"quantity_needed"`
		Unit               string  `json:"unit"`
		InventoryAvailable float64 `json:"inventory_available"`
		Status             string  `json:"status"` // "OK" or "MISSING"
		MissingQuantity    float64 `json:"missing_quantity"`
	}

	AvailabilityResponse struct {
		RecipeID          string           `json:"recipe_id"`
		RecipeTitle       string           `json:"recipe_title"`
		ServingsRequested int              `json:"servings_requested"`
		CanMakeRecipe     bool             `json:"can_make_recipe"`
		TotalIngredients  int              `json:"total_ingredients"`
		AvailableCount    int              `json:"available_count"`
		MissingCount      int              `json:"missing_count"`
		MissingPercentage float64          `json:"missing_percentage"`
		Ingredients       []MenuIngredient `json:"ingredients"`
	}

	MenuEntryResponse struct {
		ID            string           `json:"id"`
		WeekStartDate string           `json:"week_start_date"`
		DayOfWeek     int              `json:"day_of_week"`
		MealType      string           `json:"meal_type"`
		RecipeID      string           `json:"recipe_id,omitempty"`
		RecipeTitle   string           `json:"recipe_title,omitempty"`
		Servings      int              `json:"servings"`
		Ingredients   []MenuIngredient `json:"ingredients_needed,omitempty"`
		IsCompleted   bool             `json:"is_completed"`
		Notes         string           `json:"notes,omitempty"`
	}

	MenuDay struct {
		DayName string                       `json:"day_name"`
		Meals   map[string]MenuEntryResponse `json:"meals"`
	}

	WeeklyMenuResponse struct {
		WeekStartDate string             `json:"week_start_date"`
		Days          map[string]MenuDay `json:"days"`
	}

	MenuShoppingListResponse struct {
		WeekStartDate string                 `json:"week_start_date"`
		Generated     int                    `json:"generated"`
		Items         []ShoppingItemResponse `json:"items"`
	}
)
