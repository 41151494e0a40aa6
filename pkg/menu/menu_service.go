package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"freshkeep/domain"
	"freshkeep/entities"
	"freshkeep/pkg/product"
	"freshkeep/pkg/recipe"
	"freshkeep/pkg/shoppinglist"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	dateLayout      = "2006-01-02"
	defaultServings = 2

	ingredientOK      = "OK"
	ingredientMissing = "MISSING"
)

var dayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

type (
	MenuService interface {
		AddEntry(ctx context.Context, req domain.AddMenuEntryRequest, userID string) (domain.MenuEntryResponse, error)
		UpdateEntry(ctx context.Context, id string, req domain.UpdateMenuEntryRequest, userID string) (domain.MenuEntryResponse, error)
		DeleteEntry(ctx context.Context, id string, userID string) error
		GetWeeklyMenu(ctx context.Context, userID string, weekStart string) (domain.WeeklyMenuResponse, error)
		CheckAvailability(ctx context.Context, recipeID string, servings int, userID string) (domain.AvailabilityResponse, error)
		GenerateShoppingList(ctx context.Context, userID string, weekStart string) (domain.MenuShoppingListResponse, error)
	}

	menuService struct {
		menuRepository         MenuRepository
		recipeRepository       recipe.RecipeRepository
		productRepository      product.ProductRepository
		shoppingListRepository shoppinglist.ShoppingListRepository
	}
)

func NewMenuService(menuRepository MenuRepository, recipeRepository recipe.RecipeRepository, productRepository product.ProductRepository, shoppingListRepository shoppinglist.ShoppingListRepository) MenuService {
	return &menuService{
		menuRepository:         menuRepository,
		recipeRepository:       recipeRepository,
		productRepository:      productRepository,
		shoppingListRepository: shoppingListRepository,
	}
}

func (s *menuService) AddEntry(ctx context.Context, req domain.AddMenuEntryRequest, userID string) (domain.MenuEntryResponse, error) {
	weekStart, err := time.Parse(dateLayout, req.WeekStartDate)
	if err != nil {
		return domain.MenuEntryResponse{}, domain.ErrInvalidWeekStart
	}

	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return domain.MenuEntryResponse{}, domain.ErrInvalidDayOfWeek
	}

	mealType := entities.MealType(req.MealType)
	if !mealType.IsValid() {
		return domain.MenuEntryResponse{}, domain.ErrInvalidMealType
	}

	servings := req.Servings
	if servings < 1 {
		servings = defaultServings
	}

	menuRecipe, err := s.getOwnedRecipe(ctx, req.RecipeID, userID)
	if err != nil {
		return domain.MenuEntryResponse{}, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.MenuEntryResponse{}, domain.ErrParseUUID
	}

	availability, err := s.availabilityFor(ctx, menuRecipe, servings, userID)
	if err != nil {
		return domain.MenuEntryResponse{}, err
	}
	snapshot, _ := json.Marshal(availability.Ingredients)

	recipeID := menuRecipe.ID
	entry := &entities.WeeklyMenuEntry{
		ID:                uuid.New(),
		UserID:            userUUID,
		WeekStartDate:     weekStart,
		DayOfWeek:         req.DayOfWeek,
		MealType:          mealType,
		RecipeID:          &recipeID,
		Servings:          servings,
		IngredientsNeeded: string(snapshot),
		Notes:             req.Notes,
	}

	if err := s.menuRepository.AddEntry(ctx, entry); err != nil {
		return domain.MenuEntryResponse{}, err
	}

	return s.toMenuEntryResponse(entry, menuRecipe.Title), nil
}

func (s *menuService) UpdateEntry(ctx context.Context, id string, req domain.UpdateMenuEntryRequest, userID string) (domain.MenuEntryResponse, error) {
	entry, err := s.getOwnedEntry(ctx, id, userID)
	if err != nil {
		return domain.MenuEntryResponse{}, err
	}

	if req.RecipeID != "" {
		newRecipe, err := s.getOwnedRecipe(ctx, req.RecipeID, userID)
		if err != nil {
			return domain.MenuEntryResponse{}, err
		}
		recipeID := newRecipe.ID
		entry.RecipeID = &recipeID
	}
	if req.Servings != nil {
		entry.Servings = *req.Servings
	}
	if req.Notes != nil {
		entry.Notes = *req.Notes
	}
	if req.IsCompleted != nil {
		entry.IsCompleted = *req.IsCompleted
	}

	recipeTitle := ""
	if entry.RecipeID != nil {
		entryRecipe, err := s.getOwnedRecipe(ctx, entry.RecipeID.String(), userID)
		if err != nil {
			return domain.MenuEntryResponse{}, err
		}
		recipeTitle = entryRecipe.Title

		// Recipe or servings may have changed, refresh the snapshot.
		availability, err := s.availabilityFor(ctx, entryRecipe, entry.Servings, userID)
		if err != nil {
			return domain.MenuEntryResponse{}, err
		}
		snapshot, _ := json.Marshal(availability.Ingredients)
		entry.IngredientsNeeded = string(snapshot)
	}

	if err := s.menuRepository.UpdateEntry(ctx, entry); err != nil {
		return domain.MenuEntryResponse{}, err
	}

	return s.toMenuEntryResponse(entry, recipeTitle), nil
}

func (s *menuService) DeleteEntry(ctx context.Context, id string, userID string) error {
	if _, err := s.getOwnedEntry(ctx, id, userID); err != nil {
		return err
	}
	return s.menuRepository.DeleteEntry(ctx, id)
}

func (s *menuService) GetWeeklyMenu(ctx context.Context, userID string, weekStart string) (domain.WeeklyMenuResponse, error) {
	start, err := time.Parse(dateLayout, weekStart)
	if err != nil {
		return domain.WeeklyMenuResponse{}, domain.ErrInvalidWeekStart
	}

	entries, err := s.menuRepository.GetEntriesForWeek(ctx, userID, start, start.AddDate(0, 0, 7))
	if err != nil {
		return domain.WeeklyMenuResponse{}, err
	}

	days := make(map[string]domain.MenuDay, 7)
	for i := 0; i < 7; i++ {
		days[fmt.Sprintf("%d", i)] = domain.MenuDay{
			DayName: dayNames[i],
			Meals:   make(map[string]domain.MenuEntryResponse),
		}
	}

	for _, entry := range entries {
		if entry.DayOfWeek < 0 || entry.DayOfWeek > 6 {
			continue
		}

		recipeTitle := ""
		if entry.RecipeID != nil {
			if r, err := s.recipeRepository.GetRecipeByID(ctx, entry.RecipeID.String()); err == nil {
				recipeTitle = r.Title
			}
		}

		day := days[fmt.Sprintf("%d", entry.DayOfWeek)]
		day.Meals[string(entry.MealType)] = s.toMenuEntryResponse(entry, recipeTitle)
		days[fmt.Sprintf("%d", entry.DayOfWeek)] = day
	}

	return domain.WeeklyMenuResponse{
		WeekStartDate: start.Format(dateLayout),
		Days:          days,
	}, nil
}

func (s *menuService) CheckAvailability(ctx context.Context, recipeID string, servings int, userID string) (domain.AvailabilityResponse, error) {
	if servings < 1 {
		servings = defaultServings
	}

	menuRecipe, err := s.getOwnedRecipe(ctx, recipeID, userID)
	if err != nil {
		return domain.AvailabilityResponse{}, err
	}

	return s.availabilityFor(ctx, menuRecipe, servings, userID)
}

// GenerateShoppingList turns a week's menu into shopping list entries:
// every ingredient the inventory cannot cover is added once, with
// quantities summed across the menus that need it.
func (s *menuService) GenerateShoppingList(ctx context.Context, userID string, weekStart string) (domain.MenuShoppingListResponse, error) {
	start, err := time.Parse(dateLayout, weekStart)
	if err != nil {
		return domain.MenuShoppingListResponse{}, domain.ErrInvalidWeekStart
	}

	entries, err := s.menuRepository.GetEntriesForWeek(ctx, userID, start, start.AddDate(0, 0, 7))
	if err != nil {
		return domain.MenuShoppingListResponse{}, err
	}
	if len(entries) == 0 {
		return domain.MenuShoppingListResponse{}, domain.ErrEmptyWeeklyMenu
	}

	type missingItem struct {
		quantity  float64
		unit      string
		fromMenus []string
	}
	missing := make(map[string]*missingItem)
	order := make([]string, 0)

	for _, entry := range entries {
		if entry.RecipeID == nil {
			continue
		}

		entryRecipe, err := s.getOwnedRecipe(ctx, entry.RecipeID.String(), userID)
		if err != nil {
			continue
		}

		availability, err := s.availabilityFor(ctx, entryRecipe, entry.Servings, userID)
		if err != nil {
			continue
		}

		slot := fmt.Sprintf("%s %s", dayNames[entry.DayOfWeek], entry.MealType)
		for _, ingredient := range availability.Ingredients {
			if ingredient.Status != ingredientMissing {
				continue
			}

			key := strings.ToLower(ingredient.Name)
			if existing, ok := missing[key]; ok {
				existing.quantity += ingredient.MissingQuantity
				existing.fromMenus = append(existing.fromMenus, slot)
				continue
			}
			missing[key] = &missingItem{
				quantity:  ingredient.MissingQuantity,
				unit:      ingredient.Unit,
				fromMenus: []string{slot},
			}
			order = append(order, ingredient.Name)
		}
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.MenuShoppingListResponse{}, domain.ErrParseUUID
	}

	items := make([]domain.ShoppingItemResponse, 0, len(order))
	for _, name := range order {
		m := missing[strings.ToLower(name)]

		item := &entities.ShoppingListItem{
			ID:             uuid.New(),
			UserID:         userUUID,
			IngredientName: name,
			Category:       entities.CategoryOther,
			QuantityNeeded: m.quantity,
			Unit:           m.unit,
			Notes:          fmt.Sprintf("For %s", strings.Join(m.fromMenus, ", ")),
		}
		if err := s.shoppingListRepository.AddItem(ctx, item); err != nil {
			return domain.MenuShoppingListResponse{}, err
		}

		items = append(items, domain.ShoppingItemResponse{
			ID:             item.ID.String(),
			IngredientName: item.IngredientName,
			Category:       string(item.Category),
			QuantityNeeded: item.QuantityNeeded,
			Unit:           item.Unit,
			Notes:          item.Notes,
			CreatedAt:      item.CreatedAt,
		})
	}

	return domain.MenuShoppingListResponse{
		WeekStartDate: start.Format(dateLayout),
		Generated:     len(items),
		Items:         items,
	}, nil
}

// availabilityFor scales the recipe's ingredients to the requested
// servings and compares each against the active inventory. Matching is
// the same case-insensitive substring match used for recipe details.
func (s *menuService) availabilityFor(ctx context.Context, menuRecipe *entities.Recipe, servings int, userID string) (domain.AvailabilityResponse, error) {
	products, err := s.productRepository.GetActiveProducts(ctx, userID)
	if err != nil {
		return domain.AvailabilityResponse{}, err
	}

	var rawIngredients []struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
	}
	_ = json.Unmarshal([]byte(menuRecipe.Ingredients), &rawIngredients)

	baseServings := menuRecipe.Servings
	if baseServings < 1 {
		baseServings = 1
	}
	multiplier := float64(servings) / float64(baseServings)

	ingredients := make([]domain.MenuIngredient, 0, len(rawIngredients))
	availableCount := 0
	missingCount := 0

	for _, raw := range rawIngredients {
		needed := math.Round(raw.Quantity*multiplier*100) / 100

		available := 0.0
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), strings.ToLower(raw.Name)) ||
				strings.Contains(strings.ToLower(raw.Name), strings.ToLower(p.Name)) {
				available = p.Quantity
				break
			}
		}

		ingredient := domain.MenuIngredient{
			Name:               raw.Name,
			QuantityNeeded:     needed,
			Unit:               raw.Unit,
			InventoryAvailable: available,
		}
		if available >= needed {
			ingredient.Status = ingredientOK
			availableCount++
		} else {
			ingredient.Status = ingredientMissing
			ingredient.MissingQuantity = needed - available
			missingCount++
		}

		ingredients = append(ingredients, ingredient)
	}

	total := len(ingredients)
	missingPercentage := 0.0
	if total > 0 {
		missingPercentage = math.Round(float64(missingCount)/float64(total)*1000) / 10
	}

	return domain.AvailabilityResponse{
		RecipeID:          menuRecipe.ID.String(),
		RecipeTitle:       menuRecipe.Title,
		ServingsRequested: servings,
		CanMakeRecipe:     missingCount == 0,
		TotalIngredients:  total,
		AvailableCount:    availableCount,
		MissingCount:      missingCount,
		MissingPercentage: missingPercentage,
		Ingredients:       ingredients,
	}, nil
}

func (s *menuService) toMenuEntryResponse(entry *entities.WeeklyMenuEntry, recipeTitle string) domain.MenuEntryResponse {
	res := domain.MenuEntryResponse{
		ID:            entry.ID.String(),
		WeekStartDate: entry.WeekStartDate.Format(dateLayout),
		DayOfWeek:     entry.DayOfWeek,
		MealType:      string(entry.MealType),
		RecipeTitle:   recipeTitle,
		Servings:      entry.Servings,
		IsCompleted:   entry.IsCompleted,
		Notes:         entry.Notes,
	}
	if entry.RecipeID != nil {
		res.RecipeID = entry.RecipeID.String()
	}
	if entry.IngredientsNeeded != "" {
		_ = json.Unmarshal([]byte(entry.IngredientsNeeded), &res.Ingredients)
	}
	return res
}

func (s *menuService) getOwnedEntry(ctx context.Context, id string, userID string) (*entities.WeeklyMenuEntry, error) {
	entry, err := s.menuRepository.GetEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuEntryNotFound
		}
		return nil, err
	}
	if entry.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}
	return entry, nil
}

func (s *menuService) getOwnedRecipe(ctx context.Context, recipeID string, userID string) (*entities.Recipe, error) {
	menuRecipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	if menuRecipe.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}
	return menuRecipe, nil
}
