package shoppinglist

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"freshkeep/domain"
	"freshkeep/entities"
	"freshkeep/pkg/product"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memoryShoppingListRepository struct {
	items map[string]*entities.ShoppingListItem
}

func newMemoryShoppingListRepository() *memoryShoppingListRepository {
	return &memoryShoppingListRepository{items: make(map[string]*entities.ShoppingListItem)}
}

func (m *memoryShoppingListRepository) AddItem(_ context.Context, item *entities.ShoppingListItem) error {
	m.items[item.ID.String()] = item
	return nil
}

func (m *memoryShoppingListRepository) GetItemByID(_ context.Context, id string) (*entities.ShoppingListItem, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (m *memoryShoppingListRepository) GetItems(_ context.Context, userID string, includeBought bool) ([]*entities.ShoppingListItem, error) {
	var result []*entities.ShoppingListItem
	for _, item := range m.items {
		if item.UserID.String() != userID {
			continue
		}
		if !includeBought && item.IsBought {
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

func (m *memoryShoppingListRepository) UpdateItem(_ context.Context, item *entities.ShoppingListItem) error {
	m.items[item.ID.String()] = item
	return nil
}

func (m *memoryShoppingListRepository) DeleteItem(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *memoryShoppingListRepository) HasOpenItemForProduct(_ context.Context, userID, productID string) (bool, error) {
	for _, item := range m.items {
		if item.UserID.String() == userID && item.ProductID != nil &&
			item.ProductID.String() == productID && !item.IsBought {
			return true, nil
		}
	}
	return false, nil
}

type memoryProductRepository struct {
	products map[string]*entities.Product
}

func newMemoryProductRepository() *memoryProductRepository {
	return &memoryProductRepository{products: make(map[string]*entities.Product)}
}

func (m *memoryProductRepository) AddProduct(_ context.Context, p *entities.Product) error {
	m.products[p.ID.String()] = p
	return nil
}

func (m *memoryProductRepository) GetProductByID(_ context.Context, id string) (*entities.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (m *memoryProductRepository) UpdateProduct(_ context.Context, p *entities.Product) error {
	m.products[p.ID.String()] = p
	return nil
}

func (m *memoryProductRepository) DeleteProduct(_ context.Context, id string) error {
	delete(m.products, id)
	return nil
}

func (m *memoryProductRepository) GetProducts(_ context.Context, _ string, _ domain.ProductFilter) ([]*entities.Product, int64, error) {
	return nil, 0, nil
}

func (m *memoryProductRepository) GetActiveProducts(_ context.Context, userID string) ([]*entities.Product, error) {
	var result []*entities.Product
	for _, p := range m.products {
		if p.UserID.String() == userID && p.Status == entities.StatusActive {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *memoryProductRepository) GetProductsByExpirationRange(_ context.Context, _ string, _, _ time.Time) ([]*entities.Product, error) {
	return nil, nil
}

func (m *memoryProductRepository) UpdateProductStatus(_ context.Context, id string, status entities.ProductStatus) error {
	p, ok := m.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = status
	return nil
}

func (m *memoryProductRepository) CreateReceiptScan(_ context.Context, _ *entities.ReceiptScan) error {
	return nil
}

func (m *memoryProductRepository) GetReceiptScanByID(_ context.Context, _ string) (*entities.ReceiptScan, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryProductRepository) UpdateReceiptScan(_ context.Context, _ *entities.ReceiptScan) error {
	return nil
}

type noopS3 struct{}

func (noopS3) UploadFile(string, *multipart.FileHeader, string, ...string) (string, error) {
	return "", nil
}
func (noopS3) UpdateFile(string, *multipart.FileHeader, ...string) (string, error) { return "", nil }
func (noopS3) DeleteFile(string) error { return nil }
func (noopS3) GetPublicLinkKey(string) string { return "" }
func (noopS3) GetObjectKeyFromLink(string) string { return "" }


func newTestService() (ShoppingListService, *memoryShoppingListRepository, *memoryProductRepository) {
	listRepo := newMemoryShoppingListRepository()
	productRepo := newMemoryProductRepository()
	productService := product.NewProductService(productRepo, noopS3{})
	return NewShoppingListService(listRepo, productRepo, productService), listRepo, productRepo
}

func validAddItemRequest() domain.AddShoppingItemRequest {
	return domain.AddShoppingItemRequest{
		IngredientName: "Milk",
		Category:       "DAIRY",
		QuantityNeeded: 2,
		Unit:           "l",
	}
}

func TestAddItemValidatesCategory(t *testing.T) {
	service, _, _ := newTestService()
	userID := uuid.New().String()

	req := validAddItemRequest()
	req.Category = "HARDWARE"

	_, err := service.AddItem(context.Background(), req, userID)
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestMarkBoughtAddsToInventory(t *testing.T) {
	service, listRepo, productRepo := newTestService()
	userID := uuid.New().String()
	ctx := context.Background()

	item, err := service.AddItem(ctx, validAddItemRequest(), userID)
	require.NoError(t, err)

	err = service.MarkBought(ctx, item.ID, domain.MarkBoughtRequest{
		AddToInventory: true,
		ExpirationDate: time.Now().AddDate(0, 0, 5).Format("2006-01-02"),
		Location:       "FRIDGE",
	}, userID)
	require.NoError(t, err)

	stored := listRepo.items[item.ID]
	assert.True(t, stored.IsBought)
	require.NotNil(t, stored.BoughtAt)

	require.Len(t, productRepo.products, 1)
	for _, p := range productRepo.products {
		assert.Equal(t, "Milk", p.Name)
		assert.Equal(t, entities.LocationFridge, p.Location)
		assert.Equal(t, entities.StatusActive, p.Status)
	}
}

func TestMarkBoughtTwiceFails(t *testing.T) {
	service, _, _ := newTestService()
	userID := uuid.New().String()
	ctx := context.Background()

	item, err := service.AddItem(ctx, validAddItemRequest(), userID)
	require.NoError(t, err)

	require.NoError(t, service.MarkBought(ctx, item.ID, domain.MarkBoughtRequest{}, userID))

	err = service.MarkBought(ctx, item.ID, domain.MarkBoughtRequest{}, userID)
	assert.ErrorIs(t, err, domain.ErrItemAlreadyBought)
}

func TestGenerateFromLowStock(t *testing.T) {
	service, _, productRepo := newTestService()
	userID := uuid.New().String()
	userUUID := uuid.MustParse(userID)
	ctx := context.Background()

	low := &entities.Product{
		ID:             uuid.New(),
		UserID:         userUUID,
		Name:           "Eggs",
		Category:       entities.CategoryDairy,
		Quantity:       1,
		Unit:           "pcs",
		ExpirationDate: time.Now().AddDate(0, 0, 10),
		Status:         entities.StatusActive,
	}
	plenty := &entities.Product{
		ID:             uuid.New(),
		UserID:         userUUID,
		Name:           "Rice",
		Category:       entities.CategoryGrains,
		Quantity:       5,
		Unit:           "kg",
		ExpirationDate: time.Now().AddDate(0, 0, 90),
		Status:         entities.StatusActive,
	}
	require.NoError(t, productRepo.AddProduct(ctx, low))
	require.NoError(t, productRepo.AddProduct(ctx, plenty))

	res, err := service.GenerateFromLowStock(ctx, userID, 1)
	require.NoError(t, err)
	require.Equal(t, 1, res.Generated)
	assert.Equal(t, "Eggs", res.Items[0].IngredientName)

	// Re-running must not duplicate the open entry.
	res, err = service.GenerateFromLowStock(ctx, userID, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Generated)
}

func TestShoppingItemOwnership(t *testing.T) {
	service, _, _ := newTestService()
	owner := uuid.New().String()
	stranger := uuid.New().String()
	ctx := context.Background()

	item, err := service.AddItem(ctx, validAddItemRequest(), owner)
	require.NoError(t, err)

	err = service.DeleteItem(ctx, item.ID, stranger)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)

	err = service.DeleteItem(ctx, uuid.New().String(), owner)
	assert.ErrorIs(t, err, domain.ErrShoppingItemNotFound)
}
