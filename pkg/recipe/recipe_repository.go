package recipe

import (
	"context"
	"errors"
	"time"

	"freshkeep/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetFavoriteRecipes(ctx context.Context, userID string, page, limit int) ([]*entities.Recipe, int64, error)
		FavoriteRecipe(ctx context.Context, userID, recipeID string) error
		UnfavoriteRecipe(ctx context.Context, userID, recipeID string) error
		IsRecipeFavorite(ctx context.Context, userID, recipeID string) (bool, error)
		AddRecipeHistory(ctx context.Context, userID, recipeID string) error
		GetRecipeHistory(ctx context.Context, userID string, page, limit int) ([]*entities.Recipe, int64, error)
		IsRecipeInHistory(ctx context.Context, userID, recipeID string) (bool, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetFavoriteRecipes(ctx context.Context, userID string, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Joins("JOIN recipe_favorites ON recipes.id = recipe_favorites.recipe_id").
		Where("recipe_favorites.user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Joins("JOIN recipe_favorites ON recipes.id = recipe_favorites.recipe_id").
		Where("recipe_favorites.user_id = ?", userID).
		Offset(offset).
		Limit(limit).
		Order("recipe_favorites.created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) FavoriteRecipe(ctx context.Context, userID, recipeID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return err
	}

	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return err
	}

	var existing entities.RecipeFavorite
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userUUID, recipeUUID).
		First(&existing).Error; err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	favorite := entities.RecipeFavorite{
		ID:        uuid.New(),
		UserID:    userUUID,
		RecipeID:  recipeUUID,
		CreatedAt: time.Now(),
	}

	return r.db.WithContext(ctx).Create(&favorite).Error
}

func (r *recipeRepository) UnfavoriteRecipe(ctx context.Context, userID, recipeID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.RecipeFavorite{}).Error
}

func (r *recipeRepository) IsRecipeFavorite(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeFavorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) AddRecipeHistory(ctx context.Context, userID, recipeID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return err
	}

	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return err
	}

	var existing entities.RecipeHistory
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userUUID, recipeUUID).
		First(&existing).Error; err == nil {
		existing.CookedAt = time.Now()
		return r.db.WithContext(ctx).Save(&existing).Error
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	history := entities.RecipeHistory{
		ID:       uuid.New(),
		UserID:   userUUID,
		RecipeID: recipeUUID,
		CookedAt: time.Now(),
	}

	return r.db.WithContext(ctx).Create(&history).Error
}

func (r *recipeRepository) GetRecipeHistory(ctx context.Context, userID string, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Joins("JOIN recipe_histories ON recipes.id = recipe_histories.recipe_id").
		Where("recipe_histories.user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Joins("JOIN recipe_histories ON recipes.id = recipe_histories.recipe_id").
		Where("recipe_histories.user_id = ?", userID).
		Offset(offset).
		Limit(limit).
		Order("recipe_histories.cooked_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) IsRecipeInHistory(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeHistory{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
