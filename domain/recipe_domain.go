package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecipes       = "recipe suggestions retrieved successfully"
	MessageSuccessGetRecipeDetail  = "recipe detail retrieved successfully"
	MessageSuccessFavoriteRecipe   = "recipe added to favorites"
	MessageSuccessUnfavoriteRecipe = "recipe removed from favorites"
	MessageSuccessGetFavorites     = "favorite recipes retrieved successfully"
	MessageSuccessMarkCooked       = "recipe marked as cooked"
	MessageSuccessGetHistory       = "recipe history retrieved successfully"

	MessageFailedGetRecipes       = "failed to retrieve recipe suggestions"
	MessageFailedGetRecipeDetail  = "failed to retrieve recipe detail"
	MessageFailedFavoriteRecipe   = "failed to add recipe to favorites"
	MessageFailedUnfavoriteRecipe = "failed to remove recipe from favorites"
	MessageFailedGetFavorites     = "failed to retrieve favorite recipes"
	MessageFailedMarkCooked       = "failed to mark recipe as cooked"
	MessageFailedGetHistory       = "failed to retrieve recipe history"

	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrNoIngredients   = errors.New("no ingredients available for recommendations")
	ErrGeminiAPIFailed = errors.New("gemini API request failed")
)

type (
	RecipeSuggestionRequest struct {
		IncludeExpiringOnly bool   `json:"include_expiring_only"`
		MaxRecipes          int    `json:"max_recipes" validate:"omitempty,min=1,max=10"`
		DifficultyLevel     string `json:"difficulty_level" validate:"omitempty,oneof=Easy Medium Hard"`
		MealType            string `json:"meal_type" validate:"omitempty,oneof=breakfast lunch dinner"`
	}

	Recipe struct {
		ID              string    `json:"id"`
		Title           string    `json:"title"`
		Description     string    `json:"description"`
		PrepTimeMinutes int       `json:"prep_time_minutes"`
		CookTimeMinutes int       `json:"cook_time_minutes"`
		Servings        int       `json:"servings"`
		DifficultyLevel string    `json:"difficulty_level"`
		MealType        string    `json:"meal_type,omitempty"`
		CreatedAt       time.Time `json:"created_at"`
		IsFavorite      bool      `json:"is_favorite"`
		IsCooked        bool      `json:"is_cooked"`
	}

	Ingredient struct {
		Name                string  `json:"name"`
		Quantity            float64 `json:"quantity"`
		Unit                string  `json:"unit"`
		IsAvailable         bool    `json:"is_available"`
		ExpirationDate      string  `json:"expiration_date,omitempty"`
		DaysUntilExpiration int     `json:"days_until_expiration,omitempty"`
	}

	RecipeDetail struct {
		Recipe
		Ingredients  []Ingredient `json:"ingredients"`
		Instructions []string     `json:"instructions"`
	}

	RecipeSuggestionResponse struct {
		Recipes         []Recipe `json:"recipes"`
		TotalRecipes    int      `json:"total_recipes"`
		ExpiringPRCount int      `json:"expiring_products"`
	}

	FavoriteRecipeRequest struct {
		RecipeID string `json:"recipe_id" validate:"required,uuid"`
	}

	MarkAsCookedRequest struct {
		RecipeID string `json:"recipe_id" validate:"required,uuid"`
	}

	RecipeHistoryResponse struct {
		Recipes []Recipe `json:"recipes"`
		Total   int      `json:"total"`
	}
)
