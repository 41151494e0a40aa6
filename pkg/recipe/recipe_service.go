package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"freshkeep/domain"
	"freshkeep/entities"
	"freshkeep/internal/utils"
	"freshkeep/pkg/notification"
	"freshkeep/pkg/product"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		GetRecipeSuggestions(ctx context.Context, req domain.RecipeSuggestionRequest, userID string) (domain.RecipeSuggestionResponse, error)
		GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeDetail, error)
		FavoriteRecipe(ctx context.Context, req domain.FavoriteRecipeRequest, userID string) error
		UnfavoriteRecipe(ctx context.Context, req domain.FavoriteRecipeRequest, userID string) error
		GetFavoriteRecipes(ctx context.Context, page, limit int, userID string) ([]domain.Recipe, int64, error)
		MarkAsCooked(ctx context.Context, req domain.MarkAsCookedRequest, userID string) error
		GetRecipeHistory(ctx context.Context, page, limit int, userID string) (domain.RecipeHistoryResponse, error)
	}

	recipeService struct {
		recipeRepository       RecipeRepository
		productRepository      product.ProductRepository
		notificationRepository notification.NotificationRepository
	}
)

func NewRecipeService(recipeRepository RecipeRepository, productRepository product.ProductRepository, notificationRepository notification.NotificationRepository) RecipeService {
	return &recipeService{
		recipeRepository:       recipeRepository,
		productRepository:      productRepository,
		notificationRepository: notificationRepository,
	}
}

func (s *recipeService) GetRecipeSuggestions(ctx context.Context, req domain.RecipeSuggestionRequest, userID string) (domain.RecipeSuggestionResponse, error) {
	now := time.Now()
	var products []*entities.Product
	var err error

	if req.IncludeExpiringOnly {
		cutoff := now.AddDate(0, 0, 7)
		products, err = s.productRepository.GetProductsByExpirationRange(ctx, userID, now, cutoff)
	} else {
		products, err = s.productRepository.GetActiveProducts(ctx, userID)
	}
	if err != nil {
		return domain.RecipeSuggestionResponse{}, err
	}

	if len(products) == 0 {
		return domain.RecipeSuggestionResponse{
			Recipes:         []domain.Recipe{},
			TotalRecipes:    0,
			ExpiringPRCount: 0,
		}, domain.ErrNoIngredients
	}

	expiringCount := 0
	ingredients := make([]map[string]interface{}, 0, len(products))
	for _, p := range products {
		days := p.DaysUntilExpiration(now)
		if days >= 0 && days <= 7 {
			expiringCount++
		}
		ingredients = append(ingredients, map[string]interface{}{
			"name":                p.Name,
			"quantity":            p.Quantity,
			"unit":                p.Unit,
			"category":            string(p.Category),
			"expirationDate":      p.ExpirationDate.Format("2006-01-02"),
			"daysUntilExpiration": days,
		})
	}

	recipes, err := s.generateRecipes(ctx, ingredients, req, userID)
	if err != nil {
		return domain.RecipeSuggestionResponse{}, err
	}

	for i := range recipes {
		isFavorite, err := s.recipeRepository.IsRecipeFavorite(ctx, userID, recipes[i].ID)
		if err != nil {
			continue
		}
		recipes[i].IsFavorite = isFavorite

		isCooked, err := s.recipeRepository.IsRecipeInHistory(ctx, userID, recipes[i].ID)
		if err != nil {
			continue
		}
		recipes[i].IsCooked = isCooked
	}

	if expiringCount > 0 && len(recipes) > 0 {
		s.notifySuggestions(ctx, userID, expiringCount, len(recipes))
	}

	return domain.RecipeSuggestionResponse{
		Recipes:         recipes,
		TotalRecipes:    len(recipes),
		ExpiringPRCount: expiringCount,
	}, nil
}

func (s *recipeService) notifySuggestions(ctx context.Context, userID string, expiringCount, recipeCount int) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return
	}

	// Best effort; suggestions still return if the insert fails.
	_, _ = s.notificationRepository.CreateIfAbsent(ctx, &entities.Notification{
		ID:     uuid.New(),
		UserID: userUUID,
		Type:   entities.NotificationRecipeSuggestion,
		Title:  "New recipe ideas for your expiring products",
		Message: fmt.Sprintf("We found %d recipes that use %d product(s) about to expire.",
			recipeCount, expiringCount),
	})
}

func (s *recipeService) generateRecipes(ctx context.Context, ingredients []map[string]interface{}, req domain.RecipeSuggestionRequest, userID string) ([]domain.Recipe, error) {
	maxRecipes := req.MaxRecipes
	if maxRecipes == 0 {
		maxRecipes = 5
	}

	filters := map[string]interface{}{}
	if req.DifficultyLevel != "" {
		filters["difficultyLevel"] = req.DifficultyLevel
	}
	if req.MealType != "" {
		filters["mealType"] = req.MealType
	}

	ingredientsJSON, _ := json.Marshal(ingredients)
	filtersJSON, _ := json.Marshal(filters)

	prompt := fmt.Sprintf(
		"You are a professional chef specializing in recipes that reduce food waste. "+
			"Given the following inventory (with quantities, units, and expiration dates): %s, "+
			"and these preferences: %s, "+
			"generate %d recipe suggestions. "+
			"Prioritize ingredients closest to expiration. "+
			"Respond ONLY with a valid JSON array of %d objects with fields: "+
			"title, description, prepTimeMinutes, cookTimeMinutes, servings, difficultyLevel, mealType, "+
			"ingredients (array of objects with name, quantity, unit), "+
			"instructions (array of strings). "+
			"Do not include any explanations or text outside of the JSON array.",
		string(ingredientsJSON),
		string(filtersJSON),
		maxRecipes,
		maxRecipes,
	)

	responseText, err := s.callGemini(ctx, prompt)
	if err != nil {
		return nil, err
	}

	startIdx := strings.Index(responseText, "[")
	endIdx := strings.LastIndex(responseText, "]")
	if startIdx == -1 || endIdx == -1 || startIdx > endIdx {
		startIdx = strings.Index(responseText, "{")
		endIdx = strings.LastIndex(responseText, "}")
		if startIdx == -1 || endIdx == -1 || startIdx > endIdx {
			return nil, fmt.Errorf("invalid response format: %s", responseText)
		}
		responseText = "[" + responseText[startIdx:endIdx+1] + "]"
	} else {
		responseText = responseText[startIdx : endIdx+1]
	}

	var rawRecipes []map[string]interface{}
	if err := json.Unmarshal([]byte(responseText), &rawRecipes); err != nil {
		return nil, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	recipes := make([]domain.Recipe, 0, len(rawRecipes))
	for _, raw := range rawRecipes {
		title, _ := raw["title"].(string)
		if title == "" {
			continue
		}
		description, _ := raw["description"].(string)

		prepTime := floatField(raw, "prepTimeMinutes", 15)
		cookTime := floatField(raw, "cookTimeMinutes", 30)
		servings := floatField(raw, "servings", 4)
		difficulty, _ := raw["difficultyLevel"].(string)
		if difficulty == "" {
			difficulty = "Medium"
		}
		mealType, _ := raw["mealType"].(string)

		recipeID := uuid.New()

		ingredientsJSON, _ := json.Marshal(raw["ingredients"])
		instructionsJSON, _ := json.Marshal(raw["instructions"])

		dbRecipe := entities.Recipe{
			ID:              recipeID,
			UserID:          userUUID,
			Title:           title,
			Description:     description,
			PrepTimeMinutes: int(prepTime),
			CookTimeMinutes: int(cookTime),
			Servings:        int(servings),
			DifficultyLevel: difficulty,
			MealType:        mealType,
			Ingredients:     string(ingredientsJSON),
			Instructions:    string(instructionsJSON),
			IsGenerated:     true,
		}

		if err := s.recipeRepository.CreateRecipe(ctx, &dbRecipe); err != nil {
			continue
		}

		recipes = append(recipes, domain.Recipe{
			ID:              recipeID.String(),
			Title:           title,
			Description:     description,
			PrepTimeMinutes: int(prepTime),
			CookTimeMinutes: int(cookTime),
			Servings:        int(servings),
			DifficultyLevel: difficulty,
			MealType:        mealType,
			CreatedAt:       time.Now(),
		})
	}

	return recipes, nil
}

func (s *recipeService) callGemini(ctx context.Context, prompt string) (string, error) {
	geminiAPIKey := utils.GetConfig("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	geminiModel := utils.GetConfig("GEMINI_MODEL")
	if geminiModel == "" {
		return "", fmt.Errorf("GEMINI_MODEL environment variable not set")
	}

	geminiURL := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", geminiModel, geminiAPIKey)

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{
						"text": prompt,
					},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": 0.7,
			"topP":        0.8,
			"topK":        40,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	geminiReq, err := http.NewRequestWithContext(ctx, "POST", geminiURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return "", err
	}
	geminiReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(geminiReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", domain.ErrGeminiAPIFailed
	}

	return strings.TrimSpace(geminiResp.Candidates[0].Content.Parts[0].Text), nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeDetail, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetail{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetail{}, err
	}

	if recipe.UserID.String() != userID {
		return domain.RecipeDetail{}, domain.ErrUnauthorizedAccess
	}

	isFavorite, err := s.recipeRepository.IsRecipeFavorite(ctx, userID, recipeID)
	if err != nil {
		isFavorite = false
	}

	isCooked, err := s.recipeRepository.IsRecipeInHistory(ctx, userID, recipeID)
	if err != nil {
		isCooked = false
	}

	products, err := s.productRepository.GetActiveProducts(ctx, userID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	now := time.Now()

	var rawIngredients []struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
	}
	_ = json.Unmarshal([]byte(recipe.Ingredients), &rawIngredients)

	ingredients := make([]domain.Ingredient, 0, len(rawIngredients))
	for _, raw := range rawIngredients {
		ingredient := domain.Ingredient{
			Name:     raw.Name,
			Quantity: raw.Quantity,
			Unit:     raw.Unit,
		}

		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), strings.ToLower(raw.Name)) ||
				strings.Contains(strings.ToLower(raw.Name), strings.ToLower(p.Name)) {
				ingredient.IsAvailable = true
				ingredient.ExpirationDate = p.ExpirationDate.Format("2006-01-02")
				ingredient.DaysUntilExpiration = p.DaysUntilExpiration(now)
				break
			}
		}

		ingredients = append(ingredients, ingredient)
	}

	var instructions []string
	if err := json.Unmarshal([]byte(recipe.Instructions), &instructions); err != nil || len(instructions) == 0 {
		instructions = []string{"Instructions not available"}
	}

	return domain.RecipeDetail{
		Recipe: domain.Recipe{
			ID:              recipe.ID.String(),
			Title:           recipe.Title,
			Description:     recipe.Description,
			PrepTimeMinutes: recipe.PrepTimeMinutes,
			CookTimeMinutes: recipe.CookTimeMinutes,
			Servings:        recipe.Servings,
			DifficultyLevel: recipe.DifficultyLevel,
			MealType:        recipe.MealType,
			CreatedAt:       recipe.CreatedAt,
			IsFavorite:      isFavorite,
			IsCooked:        isCooked,
		},
		Ingredients:  ingredients,
		Instructions: instructions,
	}, nil
}

func (s *recipeService) FavoriteRecipe(ctx context.Context, req domain.FavoriteRecipeRequest, userID string) error {
	if _, err := s.getOwnedRecipe(ctx, req.RecipeID, userID); err != nil {
		return err
	}
	return s.recipeRepository.FavoriteRecipe(ctx, userID, req.RecipeID)
}

func (s *recipeService) UnfavoriteRecipe(ctx context.Context, req domain.FavoriteRecipeRequest, userID string) error {
	if _, err := s.getOwnedRecipe(ctx, req.RecipeID, userID); err != nil {
		return err
	}
	return s.recipeRepository.UnfavoriteRecipe(ctx, userID, req.RecipeID)
}

func (s *recipeService) GetFavoriteRecipes(ctx context.Context, page, limit int, userID string) ([]domain.Recipe, int64, error) {
	recipes, count, err := s.recipeRepository.GetFavoriteRecipes(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		result = append(result, domain.Recipe{
			ID:              recipe.ID.String(),
			Title:           recipe.Title,
			Description:     recipe.Description,
			PrepTimeMinutes: recipe.PrepTimeMinutes,
			CookTimeMinutes: recipe.CookTimeMinutes,
			Servings:        recipe.Servings,
			DifficultyLevel: recipe.DifficultyLevel,
			MealType:        recipe.MealType,
			CreatedAt:       recipe.CreatedAt,
			IsFavorite:      true,
		})
	}

	return result, count, nil
}

func (s *recipeService) MarkAsCooked(ctx context.Context, req domain.MarkAsCookedRequest, userID string) error {
	if _, err := s.getOwnedRecipe(ctx, req.RecipeID, userID); err != nil {
		return err
	}
	return s.recipeRepository.AddRecipeHistory(ctx, userID, req.RecipeID)
}

func (s *recipeService) GetRecipeHistory(ctx context.Context, page, limit int, userID string) (domain.RecipeHistoryResponse, error) {
	recipes, count, err := s.recipeRepository.GetRecipeHistory(ctx, userID, page, limit)
	if err != nil {
		return domain.RecipeHistoryResponse{}, err
	}

	result := make([]domain.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		isFavorite, _ := s.recipeRepository.IsRecipeFavorite(ctx, userID, recipe.ID.String())

		result = append(result, domain.Recipe{
			ID:              recipe.ID.String(),
			Title:           recipe.Title,
			Description:     recipe.Description,
			PrepTimeMinutes: recipe.PrepTimeMinutes,
			CookTimeMinutes: recipe.CookTimeMinutes,
			Servings:        recipe.Servings,
			DifficultyLevel: recipe.DifficultyLevel,
			MealType:        recipe.MealType,
			CreatedAt:       recipe.CreatedAt,
			IsFavorite:      isFavorite,
			IsCooked:        true,
		})
	}

	return domain.RecipeHistoryResponse{
		Recipes: result,
		Total:   int(count),
	}, nil
}

func (s *recipeService) getOwnedRecipe(ctx context.Context, recipeID string, userID string) (*entities.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	if recipe.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}
	return recipe, nil
}

func floatField(raw map[string]interface{}, key string, fallback float64) float64 {
	value, ok := raw[key].(float64)
	if !ok || value <= 0 {
		return fallback
	}
	return value
}
