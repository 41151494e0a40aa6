package shoppinglist

import (
	"context"

	"freshkeep/entities"

	"gorm.io/gorm"
)

type (
	ShoppingListRepository interface {
		AddItem(ctx context.Context, item *entities.ShoppingListItem) error
		GetItemByID(ctx context.Context, id string) (*entities.ShoppingListItem, error)
		GetItems(ctx context.Context, userID string, includeBought bool) ([]*entities.ShoppingListItem, error)
		UpdateItem(ctx context.Context, item *entities.ShoppingListItem) error
		DeleteItem(ctx context.Context, id string) error
		HasOpenItemForProduct(ctx context.Context, userID, productID string) (bool, error)
	}

	shoppingListRepository struct {
		db *gorm.DB
	}
)

func NewShoppingListRepository(db *gorm.DB) ShoppingListRepository {
	return &shoppingListRepository{db: db}
}

func (r *shoppingListRepository) AddItem(ctx context.Context, item *entities.ShoppingListItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *shoppingListRepository) GetItemByID(ctx context.Context, id string) (*entities.ShoppingListItem, error) {
	var item entities.ShoppingListItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *shoppingListRepository) GetItems(ctx context.Context, userID string, includeBought bool) ([]*entities.ShoppingListItem, error) {
	var items []*entities.ShoppingListItem

	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !includeBought {
		query = query.Where("is_bought = ?", false)
	}

	if err := query.Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *shoppingListRepository) UpdateItem(ctx context.Context, item *entities.ShoppingListItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *shoppingListRepository) DeleteItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.ShoppingListItem{}).Error
}

// HasOpenItemForProduct reports whether an unbought entry generated from
// the given product already exists, so list generation does not add the
// same product twice.
func (r *shoppingListRepository) HasOpenItemForProduct(ctx context.Context, userID, productID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.ShoppingListItem{}).
		Where("user_id = ? AND product_id = ? AND is_bought = ?", userID, productID, false).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
