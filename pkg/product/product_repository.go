package product

import (
	"context"
	"time"

	"freshkeep/domain"
	"freshkeep/entities"

	"gorm.io/gorm"
)

type (
	ProductRepository interface {
		AddProduct(ctx context.Context, product *entities.Product) error
		GetProductByID(ctx context.Context, id string) (*entities.Product, error)
		UpdateProduct(ctx context.Context, product *entities.Product) error
		DeleteProduct(ctx context.Context, id string) error
		GetProducts(ctx context.Context, userID string, filter domain.ProductFilter) ([]*entities.Product, int64, error)
		GetActiveProducts(ctx context.Context, userID string) ([]*entities.Product, error)
		GetProductsByExpirationRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]*entities.Product, error)
		UpdateProductStatus(ctx context.Context, id string, status entities.ProductStatus) error

		// Receipt scanning related
		CreateReceiptScan(ctx context.Context, receiptScan *entities.ReceiptScan) error
		GetReceiptScanByID(ctx context.Context, id string) (*entities.ReceiptScan, error)
		UpdateReceiptScan(ctx context.Context, receiptScan *entities.ReceiptScan) error
	}

	productRepository struct {
		db *gorm.DB
	}
)

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) AddProduct(ctx context.Context, product *entities.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetProductByID(ctx context.Context, id string) (*entities.Product, error) {
	var product entities.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *entities.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) DeleteProduct(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Product{}).Error
}

func (r *productRepository) GetProducts(ctx context.Context, userID string, filter domain.ProductFilter) ([]*entities.Product, int64, error) {
	var products []*entities.Product
	var count int64

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if filter.Status != "all" && filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Location != "" {
		query = query.Where("location = ?", filter.Location)
	}
	if filter.ExpiresBefore != nil {
		query = query.Where("expiration_date <= ?", *filter.ExpiresBefore)
	}
	if filter.ExpiresAfter != nil {
		query = query.Where("expiration_date >= ?", *filter.ExpiresAfter)
	}

	if err := query.Model(&entities.Product{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("expiration_date asc").Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, count, nil
}

func (r *productRepository) GetActiveProducts(ctx context.Context, userID string) ([]*entities.Product, error) {
	var products []*entities.Product

	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, entities.StatusActive).
		Order("expiration_date asc").
		Find(&products).Error; err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepository) GetProductsByExpirationRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]*entities.Product, error) {
	var products []*entities.Product

	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND expiration_date BETWEEN ? AND ? AND status = ?",
			userID, startDate, endDate, entities.StatusActive).
		Order("expiration_date asc").
		Find(&products).Error; err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepository) UpdateProductStatus(ctx context.Context, id string, status entities.ProductStatus) error {
	return r.db.WithContext(ctx).Model(&entities.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status}).Error
}

func (r *productRepository) CreateReceiptScan(ctx context.Context, receiptScan *entities.ReceiptScan) error {
	return r.db.WithContext(ctx).Create(receiptScan).Error
}

func (r *productRepository) GetReceiptScanByID(ctx context.Context, id string) (*entities.ReceiptScan, error) {
	var receiptScan entities.ReceiptScan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&receiptScan).Error; err != nil {
		return nil, err
	}
	return &receiptScan, nil
}

func (r *productRepository) UpdateReceiptScan(ctx context.Context, receiptScan *entities.ReceiptScan) error {
	return r.db.WithContext(ctx).Save(receiptScan).Error
}
