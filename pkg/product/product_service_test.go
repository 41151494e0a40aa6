package product

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"freshkeep/domain"
	"freshkeep/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memoryProductRepository struct {
	products map[string]*entities.Product
	scans    map[string]*entities.ReceiptScan
}

func newMemoryProductRepository() *memoryProductRepository {
	return &memoryProductRepository{
		products: make(map[string]*entities.Product),
		scans:    make(map[string]*entities.ReceiptScan),
	}
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
	copied := *p
	return &copied, nil
}

func (m *memoryProductRepository) UpdateProduct(_ context.Context, p *entities.Product) error {
	m.products[p.ID.String()] = p
	return nil
}

func (m *memoryProductRepository) DeleteProduct(_ context.Context, id string) error {
	delete(m.products, id)
	return nil
}

func (m *memoryProductRepository) GetProducts(_ context.Context, userID string, _ domain.ProductFilter) ([]*entities.Product, int64, error) {
	var result []*entities.Product
	for _, p := range m.products {
		if p.UserID.String() == userID {
			result = append(result, p)
		}
	}
	return result, int64(len(result)), nil
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

func (m *memoryProductRepository) GetProductsByExpirationRange(_ context.Context, userID string, startDate, endDate time.Time) ([]*entities.Product, error) {
	var result []*entities.Product
	for _, p := range m.products {
		if p.UserID.String() != userID || p.Status != entities.StatusActive {
			continue
		}
		if p.ExpirationDate.Before(startDate) || p.ExpirationDate.After(endDate) {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (m *memoryProductRepository) UpdateProductStatus(_ context.Context, id string, status entities.ProductStatus) error {
	p, ok := m.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = status
	return nil
}

func (m *memoryProductRepository) CreateReceiptScan(_ context.Context, scan *entities.ReceiptScan) error {
	m.scans[scan.ID.String()] = scan
	return nil
}

func (m *memoryProductRepository) GetReceiptScanByID(_ context.Context, id string) (*entities.ReceiptScan, error) {
	scan, ok := m.scans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return scan, nil
}

func (m *memoryProductRepository) UpdateReceiptScan(_ context.Context, scan *entities.ReceiptScan) error {
	m.scans[scan.ID.String()] = scan
	return nil
}

type noopS3 struct{}

func (noopS3) UploadFile(string, *multipart.FileHeader, string, ...string) (string, error) {
	return "products/test.png", nil
}
func (noopS3) UpdateFile(string, *multipart.FileHeader, ...string) (string, error) {
	return "products/test.png", nil
}
func (noopS3) DeleteFile(string) error { return nil }
func (noopS3) GetPublicLinkKey(key string) string {
	return "https://bucket.s3.region.amazonaws.com/" + key
}
func (noopS3) GetObjectKeyFromLink(string) string { return "" }

func newTestService() (ProductService, *memoryProductRepository) {
	repo := newMemoryProductRepository()
	return NewProductService(repo, noopS3{}), repo
}

func validAddRequest() domain.AddProductRequest {
	return domain.AddProductRequest{
		Name:           "Milk",
		Category:       "DAIRY",
		Quantity:       1.5,
		Unit:           "l",
		ExpirationDate: time.Now().AddDate(0, 0, 5).Format("2006-01-02"),
	}
}

func TestAddProduct(t *testing.T) {
	service, repo := newTestService()
	userID := uuid.New().String()

	res, err := service.AddProduct(context.Background(), validAddRequest(), userID)
	require.NoError(t, err)

	assert.Equal(t, "Milk", res.Name)
	assert.Equal(t, string(entities.StatusActive), res.Status)
	assert.Equal(t, string(entities.LocationPantry), res.Location, "location defaults to pantry")
	assert.Equal(t, 5, res.DaysUntilExpiration)
	assert.Len(t, repo.products, 1)
}

func TestAddProductValidation(t *testing.T) {
	service, _ := newTestService()
	userID := uuid.New().String()
	ctx := context.Background()

	t.Run("malformed expiration date", func(t *testing.T) {
		req := validAddRequest()
		req.ExpirationDate = "not-a-date"
		_, err := service.AddProduct(ctx, req, userID)
		assert.ErrorIs(t, err, domain.ErrInvalidExpirationDate)
	})

	t.Run("malformed purchase date", func(t *testing.T) {
		req := validAddRequest()
		req.PurchaseDate = "yesterday"
		_, err := service.AddProduct(ctx, req, userID)
		assert.ErrorIs(t, err, domain.ErrInvalidPurchaseDate)
	})

	t.Run("expiration before purchase", func(t *testing.T) {
		req := validAddRequest()
		req.PurchaseDate = time.Now().Format("2006-01-02")
		req.ExpirationDate = time.Now().AddDate(0, 0, -3).Format("2006-01-02")
		_, err := service.AddProduct(ctx, req, userID)
		assert.ErrorIs(t, err, domain.ErrExpirationBeforePurchase)
	})

	t.Run("non positive quantity", func(t *testing.T) {
		req := validAddRequest()
		req.Quantity = 0
		_, err := service.AddProduct(ctx, req, userID)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	})

	t.Run("unknown category", func(t *testing.T) {
		req := validAddRequest()
		req.Category = "GADGETS"
		_, err := service.AddProduct(ctx, req, userID)
		assert.ErrorIs(t, err, domain.ErrInvalidCategory)
	})

	t.Run("unknown location", func(t *testing.T) {
		req := validAddRequest()
		req.Location = "GARAGE"
		_, err := service.AddProduct(ctx, req, userID)
		assert.ErrorIs(t, err, domain.ErrInvalidLocation)
	})
}

func TestMarkConsumedAndWasted(t *testing.T) {
	service, repo := newTestService()
	userID := uuid.New().String()
	ctx := context.Background()

	res, err := service.AddProduct(ctx, validAddRequest(), userID)
	require.NoError(t, err)

	require.NoError(t, service.MarkConsumed(ctx, res.ID, userID))
	assert.Equal(t, entities.StatusConsumed, repo.products[res.ID].Status)

	// Terminal states stay terminal.
	err = service.MarkWasted(ctx, res.ID, userID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDisposeOfExpiredProduct(t *testing.T) {
	service, repo := newTestService()
	userID := uuid.New().String()
	ctx := context.Background()

	wasted, err := service.AddProduct(ctx, validAddRequest(), userID)
	require.NoError(t, err)
	consumed, err := service.AddProduct(ctx, validAddRequest(), userID)
	require.NoError(t, err)

	// Auto-expired products must still be disposable by the user.
	repo.products[wasted.ID].Status = entities.StatusExpired
	repo.products[consumed.ID].Status = entities.StatusExpired

	require.NoError(t, service.MarkWasted(ctx, wasted.ID, userID))
	assert.Equal(t, entities.StatusWasted, repo.products[wasted.ID].Status)

	require.NoError(t, service.MarkConsumed(ctx, consumed.ID, userID))
	assert.Equal(t, entities.StatusConsumed, repo.products[consumed.ID].Status)

	err = service.UpdateProduct(ctx, wasted.ID, domain.UpdateProductRequest{Status: "ACTIVE"}, userID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateProductRejectsBackwardTransition(t *testing.T) {
	service, _ := newTestService()
	userID := uuid.New().String()
	ctx := context.Background()

	res, err := service.AddProduct(ctx, validAddRequest(), userID)
	require.NoError(t, err)
	require.NoError(t, service.MarkConsumed(ctx, res.ID, userID))

	err = service.UpdateProduct(ctx, res.ID, domain.UpdateProductRequest{Status: "ACTIVE"}, userID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateProductOpenedDate(t *testing.T) {
	service, repo := newTestService()
	userID := uuid.New().String()
	ctx := context.Background()

	res, err := service.AddProduct(ctx, validAddRequest(), userID)
	require.NoError(t, err)

	opened := true
	require.NoError(t, service.UpdateProduct(ctx, res.ID, domain.UpdateProductRequest{IsOpened: &opened}, userID))
	require.NotNil(t, repo.products[res.ID].OpenedDate)

	closed := false
	require.NoError(t, service.UpdateProduct(ctx, res.ID, domain.UpdateProductRequest{IsOpened: &closed}, userID))
	assert.Nil(t, repo.products[res.ID].OpenedDate)
}

func TestProductOwnership(t *testing.T) {
	service, _ := newTestService()
	owner := uuid.New().String()
	stranger := uuid.New().String()
	ctx := context.Background()

	res, err := service.AddProduct(ctx, validAddRequest(), owner)
	require.NoError(t, err)

	_, err = service.GetProductByID(ctx, res.ID, stranger)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)

	err = service.DeleteProduct(ctx, res.ID, stranger)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)

	_, err = service.GetProductByID(ctx, uuid.New().String(), owner)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestGetExpiringSoon(t *testing.T) {
	service, _ := newTestService()
	userID := uuid.New().String()
	ctx := context.Background()

	soon := validAddRequest()
	soon.Name = "Yogurt"
	soon.ExpirationDate = time.Now().AddDate(0, 0, 2).Format("2006-01-02")
	_, err := service.AddProduct(ctx, soon, userID)
	require.NoError(t, err)

	far := validAddRequest()
	far.Name = "Rice"
	far.ExpirationDate = time.Now().AddDate(0, 0, 60).Format("2006-01-02")
	_, err = service.AddProduct(ctx, far, userID)
	require.NoError(t, err)

	products, err := service.GetExpiringSoon(ctx, userID, 3)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Yogurt", products[0].Name)
}
