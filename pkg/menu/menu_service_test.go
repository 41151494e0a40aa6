package menu

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"freshkeep/domain"
	"freshkeep/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeMenuRepository struct {
	entries map[string]*entities.WeeklyMenuEntry
}

func newFakeMenuRepository() *fakeMenuRepository {
	return &fakeMenuRepository{entries: make(map[string]*entities.WeeklyMenuEntry)}
}

func (f *fakeMenuRepository) AddEntry(_ context.Context, entry *entities.WeeklyMenuEntry) error {
	f.entries[entry.ID.String()] = entry
	return nil
}

func (f *fakeMenuRepository) GetEntryByID(_ context.Context, id string) (*entities.WeeklyMenuEntry, error) {
	entry, ok := f.entries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return entry, nil
}

func (f *fakeMenuRepository) GetEntriesForWeek(_ context.Context, userID string, weekStart, weekEnd time.Time) ([]*entities.WeeklyMenuEntry, error) {
	var result []*entities.WeeklyMenuEntry
	for _, entry := range f.entries {
		if entry.UserID.String() != userID {
			continue
		}
		if entry.WeekStartDate.Before(weekStart) || !entry.WeekStartDate.Before(weekEnd) {
			continue
		}
		result = append(result, entry)
	}
	return result, nil
}

func (f *fakeMenuRepository) UpdateEntry(_ context.Context, entry *entities.WeeklyMenuEntry) error {
	f.entries[entry.ID.String()] = entry
	return nil
}

func (f *fakeMenuRepository) DeleteEntry(_ context.Context, id string) error {
	delete(f.entries, id)
	return nil
}

type fakeRecipeRepository struct {
	recipes map[string]*entities.Recipe
}

func newFakeRecipeRepository() *fakeRecipeRepository {
	return &fakeRecipeRepository{recipes: make(map[string]*entities.Recipe)}
}

func (f *fakeRecipeRepository) CreateRecipe(_ context.Context, r *entities.Recipe) error {
	f.recipes[r.ID.String()] = r
	return nil
}

func (f *fakeRecipeRepository) GetRecipeByID(_ context.Context, id string) (*entities.Recipe, error) {
	r, ok := f.recipes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeRecipeRepository) GetFavoriteRecipes(_ context.Context, _ string, _, _ int) ([]*entities.Recipe, int64, error) {
	return nil, 0, nil
}

func (f *fakeRecipeRepository) FavoriteRecipe(_ context.Context, _, _ string) error   { return nil }
func (f *fakeRecipeRepository) UnfavoriteRecipe(_ context.Context, _, _ string) error { return nil }

func (f *fakeRecipeRepository) IsRecipeFavorite(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

func (f *fakeRecipeRepository) AddRecipeHistory(_ context.Context, _, _ string) error { return nil }

func (f *fakeRecipeRepository) GetRecipeHistory(_ context.Context, _ string, _, _ int) ([]*entities.Recipe, int64, error) {
	return nil, 0, nil
}

func (f *fakeRecipeRepository) IsRecipeInHistory(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

type fakeProductRepository struct {
	products map[string]*entities.Product
}

func newFakeProductRepository() *fakeProductRepository {
	return &fakeProductRepository{products: make(map[string]*entities.Product)}
}

func (f *fakeProductRepository) AddProduct(_ context.Context, p *entities.Product) error {
	f.products[p.ID.String()] = p
	return nil
}

func (f *fakeProductRepository) GetProductByID(_ context.Context, id string) (*entities.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeProductRepository) UpdateProduct(_ context.Context, p *entities.Product) error {
	f.products[p.ID.String()] = p
	return nil
}

func (f *fakeProductRepository) DeleteProduct(_ context.Context, id string) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepository) GetProducts(_ context.Context, _ string, _ domain.ProductFilter) ([]*entities.Product, int64, error) {
	return nil, 0, nil
}

func (f *fakeProductRepository) GetActiveProducts(_ context.Context, userID string) ([]*entities.Product, error) {
	var result []*entities.Product
	for _, p := range f.products {
		if p.UserID.String() == userID && p.Status == entities.StatusActive {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakeProductRepository) GetProductsByExpirationRange(_ context.Context, _ string, _, _ time.Time) ([]*entities.Product, error) {
	return nil, nil
}

func (f *fakeProductRepository) UpdateProductStatus(_ context.Context, id string, status entities.ProductStatus) error {
	p, ok := f.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = status
	return nil
}

func (f *fakeProductRepository) CreateReceiptScan(_ context.Context, _ *entities.ReceiptScan) error {
	return nil
}

func (f *fakeProductRepository) GetReceiptScanByID(_ context.Context, _ string) (*entities.ReceiptScan, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductRepository) UpdateReceiptScan(_ context.Context, _ *entities.ReceiptScan) error {
	return nil
}

type fakeShoppingListRepository struct {
	items map[string]*entities.ShoppingListItem
}

func newFakeShoppingListRepository() *fakeShoppingListRepository {
	return &fakeShoppingListRepository{items: make(map[string]*entities.ShoppingListItem)}
}

func (f *fakeShoppingListRepository) AddItem(_ context.Context, item *entities.ShoppingListItem) error {
	f.items[item.ID.String()] = item
	return nil
}

func (f *fakeShoppingListRepository) GetItemByID(_ context.Context, id string) (*entities.ShoppingListItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (f *fakeShoppingListRepository) GetItems(_ context.Context, _ string, _ bool) ([]*entities.ShoppingListItem, error) {
	return nil, nil
}

func (f *fakeShoppingListRepository) UpdateItem(_ context.Context, item *entities.ShoppingListItem) error {
	f.items[item.ID.String()] = item
	return nil
}

func (f *fakeShoppingListRepository) DeleteItem(_ context.Context, id string) error {
	delete(f.items, id)
	return nil
}

func (f *fakeShoppingListRepository) HasOpenItemForProduct(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

type testFixture struct {
	service      MenuService
	menuRepo     *fakeMenuRepository
	recipeRepo   *fakeRecipeRepository
	productRepo  *fakeProductRepository
	shoppingRepo *fakeShoppingListRepository
}

func newTestFixture() *testFixture {
	menuRepo := newFakeMenuRepository()
	recipeRepo := newFakeRecipeRepository()
	productRepo := newFakeProductRepository()
	shoppingRepo := newFakeShoppingListRepository()
	return &testFixture{
		service:      NewMenuService(menuRepo, recipeRepo, productRepo, shoppingRepo),
		menuRepo:     menuRepo,
		recipeRepo:   recipeRepo,
		productRepo:  productRepo,
		shoppingRepo: shoppingRepo,
	}
}

func newCarbonaraRecipe(userID uuid.UUID) *entities.Recipe {
	ingredients, _ := json.Marshal([]map[string]interface{}{
		{"name": "Pasta", "quantity": 200, "unit": "g"},
		{"name": "Bacon", "quantity": 100, "unit": "g"},
	})
	return &entities.Recipe{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       "Pasta Carbonara",
		Servings:    2,
		Ingredients: string(ingredients),
	}
}

func addActiveProduct(repo *fakeProductRepository, userID uuid.UUID, name string, quantity float64) {
	repo.products[name] = &entities.Product{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           name,
		Quantity:       quantity,
		Unit:           "g",
		ExpirationDate: time.Now().AddDate(0, 0, 10),
		Status:         entities.StatusActive,
	}
}

func validAddEntryRequest(recipeID string) domain.AddMenuEntryRequest {
	return domain.AddMenuEntryRequest{
		WeekStartDate: "2025-03-10",
		DayOfWeek:     0,
		MealType:      "lunch",
		RecipeID:      recipeID,
		Servings:      4,
	}
}

func TestAddEntryValidation(t *testing.T) {
	f := newTestFixture()
	userID := uuid.New()
	r := newCarbonaraRecipe(userID)
	require.NoError(t, f.recipeRepo.CreateRecipe(context.Background(), r))
	ctx := context.Background()

	t.Run("malformed week start", func(t *testing.T) {
		req := validAddEntryRequest(r.ID.String())
		req.WeekStartDate = "next monday"
		_, err := f.service.AddEntry(ctx, req, userID.String())
		assert.ErrorIs(t, err, domain.ErrInvalidWeekStart)
	})

	t.Run("day of week out of range", func(t *testing.T) {
		req := validAddEntryRequest(r.ID.String())
		req.DayOfWeek = 7
		_, err := f.service.AddEntry(ctx, req, userID.String())
		assert.ErrorIs(t, err, domain.ErrInvalidDayOfWeek)
	})

	t.Run("unknown meal type", func(t *testing.T) {
		req := validAddEntryRequest(r.ID.String())
		req.MealType = "brunch"
		_, err := f.service.AddEntry(ctx, req, userID.String())
		assert.ErrorIs(t, err, domain.ErrInvalidMealType)
	})

	t.Run("unknown recipe", func(t *testing.T) {
		req := validAddEntryRequest(uuid.New().String())
		_, err := f.service.AddEntry(ctx, req, userID.String())
		assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
	})

	t.Run("recipe owned by someone else", func(t *testing.T) {
		req := validAddEntryRequest(r.ID.String())
		_, err := f.service.AddEntry(ctx, req, uuid.New().String())
		assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)
	})
}

func TestAddEntryScalesIngredientSnapshot(t *testing.T) {
	f := newTestFixture()
	userID := uuid.New()
	r := newCarbonaraRecipe(userID)
	require.NoError(t, f.recipeRepo.CreateRecipe(context.Background(), r))
	addActiveProduct(f.productRepo, userID, "Pasta", 500)

	// Base recipe serves 2; doubling to 4 doubles every ingredient.
	res, err := f.service.AddEntry(context.Background(), validAddEntryRequest(r.ID.String()), userID.String())
	require.NoError(t, err)

	require.Len(t, res.Ingredients, 2)

	pasta := res.Ingredients[0]
	assert.Equal(t, "Pasta", pasta.Name)
	assert.Equal(t, 400.0, pasta.QuantityNeeded)
	assert.Equal(t, "OK", pasta.Status)
	assert.Equal(t, 0.0, pasta.MissingQuantity)

	bacon := res.Ingredients[1]
	assert.Equal(t, "Bacon", bacon.Name)
	assert.Equal(t, 200.0, bacon.QuantityNeeded)
	assert.Equal(t, "MISSING", bacon.Status)
	assert.Equal(t, 200.0, bacon.MissingQuantity)

	stored := f.menuRepo.entries[res.ID]
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.IngredientsNeeded, "availability snapshot must be persisted")
}

func TestCheckAvailabilitySummary(t *testing.T) {
	f := newTestFixture()
	userID := uuid.New()
	r := newCarbonaraRecipe(userID)
	require.NoError(t, f.recipeRepo.CreateRecipe(context.Background(), r))
	addActiveProduct(f.productRepo, userID, "Pasta", 500)

	res, err := f.service.CheckAvailability(context.Background(), r.ID.String(), 4, userID.String())
	require.NoError(t, err)

	assert.Equal(t, "Pasta Carbonara", res.RecipeTitle)
	assert.Equal(t, 4, res.ServingsRequested)
	assert.False(t, res.CanMakeRecipe)
	assert.Equal(t, 2, res.TotalIngredients)
	assert.Equal(t, 1, res.AvailableCount)
	assert.Equal(t, 1, res.MissingCount)
	assert.Equal(t, 50.0, res.MissingPercentage)

	// With the bacon in stock the recipe becomes cookable.
	addActiveProduct(f.productRepo, userID, "Bacon", 300)
	res, err = f.service.CheckAvailability(context.Background(), r.ID.String(), 4, userID.String())
	require.NoError(t, err)
	assert.True(t, res.CanMakeRecipe)
	assert.Equal(t, 0, res.MissingCount)
}

func TestGetWeeklyMenuGroupsByDayAndMeal(t *testing.T) {
	f := newTestFixture()
	userID := uuid.New()
	r := newCarbonaraRecipe(userID)
	require.NoError(t, f.recipeRepo.CreateRecipe(context.Background(), r))
	ctx := context.Background()

	monday := validAddEntryRequest(r.ID.String())
	_, err := f.service.AddEntry(ctx, monday, userID.String())
	require.NoError(t, err)

	wednesdayDinner := validAddEntryRequest(r.ID.String())
	wednesdayDinner.DayOfWeek = 2
	wednesdayDinner.MealType = "dinner"
	_, err = f.service.AddEntry(ctx, wednesdayDinner, userID.String())
	require.NoError(t, err)

	res, err := f.service.GetWeeklyMenu(ctx, userID.String(), "2025-03-10")
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", res.WeekStartDate)
	require.Len(t, res.Days, 7)

	assert.Equal(t, "Monday", res.Days["0"].DayName)
	lunch, ok := res.Days["0"].Meals["lunch"]
	require.True(t, ok)
	assert.Equal(t, "Pasta Carbonara", lunch.RecipeTitle)
	assert.Equal(t, 4, lunch.Servings)

	_, ok = res.Days["2"].Meals["dinner"]
	assert.True(t, ok)
	assert.Empty(t, res.Days["5"].Meals)

	// A different week is empty.
	res, err = f.service.GetWeeklyMenu(ctx, userID.String(), "2025-03-17")
	require.NoError(t, err)
	for _, day := range res.Days {
		assert.Empty(t, day.Meals)
	}
}

func TestGenerateShoppingListFromMenu(t *testing.T) {
	f := newTestFixture()
	userID := uuid.New()
	r := newCarbonaraRecipe(userID)
	require.NoError(t, f.recipeRepo.CreateRecipe(context.Background(), r))
	addActiveProduct(f.productRepo, userID, "Pasta", 1000)
	ctx := context.Background()

	_, err := f.service.GenerateShoppingList(ctx, userID.String(), "2025-03-10")
	assert.ErrorIs(t, err, domain.ErrEmptyWeeklyMenu)

	monday := validAddEntryRequest(r.ID.String())
	_, err = f.service.AddEntry(ctx, monday, userID.String())
	require.NoError(t, err)

	wednesday := validAddEntryRequest(r.ID.String())
	wednesday.DayOfWeek = 2
	wednesday.MealType = "dinner"
	_, err = f.service.AddEntry(ctx, wednesday, userID.String())
	require.NoError(t, err)

	res, err := f.service.GenerateShoppingList(ctx, userID.String(), "2025-03-10")
	require.NoError(t, err)

	// Bacon is missing from both menus; quantities are merged into one entry.
	require.Equal(t, 1, res.Generated)
	item := res.Items[0]
	assert.Equal(t, "Bacon", item.IngredientName)
	assert.Equal(t, 400.0, item.QuantityNeeded)
	assert.Contains(t, item.Notes, "Monday lunch")
	assert.Contains(t, item.Notes, "Wednesday dinner")
	assert.Len(t, f.shoppingRepo.items, 1)
}

func TestUpdateEntryRefreshesSnapshot(t *testing.T) {
	f := newTestFixture()
	userID := uuid.New()
	r := newCarbonaraRecipe(userID)
	require.NoError(t, f.recipeRepo.CreateRecipe(context.Background(), r))
	ctx := context.Background()

	created, err := f.service.AddEntry(ctx, validAddEntryRequest(r.ID.String()), userID.String())
	require.NoError(t, err)

	servings := 8
	done := true
	res, err := f.service.UpdateEntry(ctx, created.ID, domain.UpdateMenuEntryRequest{
		Servings:    &servings,
		IsCompleted: &done,
	}, userID.String())
	require.NoError(t, err)

	assert.Equal(t, 8, res.Servings)
	assert.True(t, res.IsCompleted)
	require.Len(t, res.Ingredients, 2)
	assert.Equal(t, 800.0, res.Ingredients[0].QuantityNeeded, "snapshot rescaled for new servings")
}

func TestMenuEntryOwnership(t *testing.T) {
	f := newTestFixture()
	owner := uuid.New()
	stranger := uuid.New().String()
	r := newCarbonaraRecipe(owner)
	require.NoError(t, f.recipeRepo.CreateRecipe(context.Background(), r))
	ctx := context.Background()

	created, err := f.service.AddEntry(ctx, validAddEntryRequest(r.ID.String()), owner.String())
	require.NoError(t, err)

	err = f.service.DeleteEntry(ctx, created.ID, stranger)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)

	err = f.service.DeleteEntry(ctx, uuid.New().String(), owner.String())
	assert.ErrorIs(t, err, domain.ErrMenuEntryNotFound)

	require.NoError(t, f.service.DeleteEntry(ctx, created.ID, owner.String()))
	assert.Empty(t, f.menuRepo.entries)
}
