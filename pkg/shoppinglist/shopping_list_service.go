package shoppinglist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freshkeep/domain"
	"freshkeep/entities"
	"freshkeep/pkg/product"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// boughtShelfLifeDays is the fallback shelf life assumed when a bought
// item is moved into the inventory without an explicit expiration date.
const boughtShelfLifeDays = 7

type (
	ShoppingListService interface {
		AddItem(ctx context.Context, req domain.AddShoppingItemRequest, userID string) (domain.ShoppingItemResponse, error)
		UpdateItem(ctx context.Context, id string, req domain.UpdateShoppingItemRequest, userID string) error
		DeleteItem(ctx context.Context, id string, userID string) error
		GetShoppingList(ctx context.Context, userID string, includeBought bool) ([]domain.ShoppingItemResponse, error)
		MarkBought(ctx context.Context, id string, req domain.MarkBoughtRequest, userID string) error
		GenerateFromLowStock(ctx context.Context, userID string, threshold float64) (domain.GenerateListResponse, error)
	}

	shoppingListService struct {
		shoppingListRepository ShoppingListRepository
		productRepository      product.ProductRepository
		productService         product.ProductService
	}
)

func NewShoppingListService(shoppingListRepository ShoppingListRepository, productRepository product.ProductRepository, productService product.ProductService) ShoppingListService {
	return &shoppingListService{
		shoppingListRepository: shoppingListRepository,
		productRepository:      productRepository,
		productService:         productService,
	}
}

func (s *shoppingListService) AddItem(ctx context.Context, req domain.AddShoppingItemRequest, userID string) (domain.ShoppingItemResponse, error) {
	category := entities.ProductCategory(req.Category)
	if !category.IsValid() {
		return domain.ShoppingItemResponse{}, domain.ErrInvalidCategory
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ShoppingItemResponse{}, domain.ErrParseUUID
	}

	item := &entities.ShoppingListItem{
		ID:             uuid.New(),
		UserID:         userUUID,
		IngredientName: req.IngredientName,
		Category:       category,
		QuantityNeeded: req.QuantityNeeded,
		Unit:           req.Unit,
		EstimatedPrice: req.EstimatedPrice,
		Store:          req.Store,
		Notes:          req.Notes,
	}

	if err := s.shoppingListRepository.AddItem(ctx, item); err != nil {
		return domain.ShoppingItemResponse{}, err
	}

	return toShoppingItemResponse(item), nil
}

func (s *shoppingListService) UpdateItem(ctx context.Context, id string, req domain.UpdateShoppingItemRequest, userID string) error {
	item, err := s.getOwnedItem(ctx, id, userID)
	if err != nil {
		return err
	}

	if req.IngredientName != "" {
		item.IngredientName = req.IngredientName
	}
	if req.QuantityNeeded != nil {
		item.QuantityNeeded = *req.QuantityNeeded
	}
	if req.Unit != "" {
		item.Unit = req.Unit
	}
	if req.EstimatedPrice != nil {
		item.EstimatedPrice = req.EstimatedPrice
	}
	if req.Store != "" {
		item.Store = req.Store
	}
	if req.Notes != "" {
		item.Notes = req.Notes
	}

	return s.shoppingListRepository.UpdateItem(ctx, item)
}

func (s *shoppingListService) DeleteItem(ctx context.Context, id string, userID string) error {
	if _, err := s.getOwnedItem(ctx, id, userID); err != nil {
		return err
	}
	return s.shoppingListRepository.DeleteItem(ctx, id)
}

func (s *shoppingListService) GetShoppingList(ctx context.Context, userID string, includeBought bool) ([]domain.ShoppingItemResponse, error) {
	items, err := s.shoppingListRepository.GetItems(ctx, userID, includeBought)
	if err != nil {
		return nil, err
	}

	response := make([]domain.ShoppingItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toShoppingItemResponse(item))
	}
	return response, nil
}

// MarkBought flags the item as purchased and, when requested, creates a
// matching ACTIVE product so the purchase lands in the inventory right
// away.
func (s *shoppingListService) MarkBought(ctx context.Context, id string, req domain.MarkBoughtRequest, userID string) error {
	item, err := s.getOwnedItem(ctx, id, userID)
	if err != nil {
		return err
	}

	if item.IsBought {
		return domain.ErrItemAlreadyBought
	}

	now := time.Now()
	item.IsBought = true
	item.BoughtAt = &now
	if req.ActualPrice != nil {
		item.ActualPrice = req.ActualPrice
	}

	if err := s.shoppingListRepository.UpdateItem(ctx, item); err != nil {
		return err
	}

	if !req.AddToInventory {
		return nil
	}

	expirationDate := req.ExpirationDate
	if expirationDate == "" {
		expirationDate = now.AddDate(0, 0, boughtShelfLifeDays).Format(dateLayout)
	}

	price := item.ActualPrice
	if price == nil {
		price = item.EstimatedPrice
	}

	_, err = s.productService.AddProduct(ctx, domain.AddProductRequest{
		Name:           item.IngredientName,
		Category:       string(item.Category),
		Store:          item.Store,
		Quantity:       item.QuantityNeeded,
		Unit:           item.Unit,
		Price:          price,
		PurchaseDate:   now.Format(dateLayout),
		ExpirationDate: expirationDate,
		Location:       req.Location,
		Notes:          item.Notes,
	}, userID)
	return err
}

// GenerateFromLowStock adds an entry for every ACTIVE product at or
// below the stock threshold that does not already have an open entry.
func (s *shoppingListService) GenerateFromLowStock(ctx context.Context, userID string, threshold float64) (domain.GenerateListResponse, error) {
	products, err := s.productRepository.GetActiveProducts(ctx, userID)
	if err != nil {
		return domain.GenerateListResponse{}, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.GenerateListResponse{}, domain.ErrParseUUID
	}

	response := domain.GenerateListResponse{Items: []domain.ShoppingItemResponse{}}

	for _, p := range products {
		if p.Quantity > threshold {
			continue
		}

		exists, err := s.shoppingListRepository.HasOpenItemForProduct(ctx, userID, p.ID.String())
		if err != nil {
			return response, err
		}
		if exists {
			continue
		}

		productID := p.ID
		item := &entities.ShoppingListItem{
			ID:             uuid.New(),
			UserID:         userUUID,
			IngredientName: p.Name,
			Category:       p.Category,
			QuantityNeeded: p.Quantity,
			Unit:           p.Unit,
			EstimatedPrice: p.Price,
			Store:          p.Store,
			Notes:          fmt.Sprintf("Running low: %g %s left", p.Quantity, p.Unit),
			ProductID:      &productID,
		}

		if err := s.shoppingListRepository.AddItem(ctx, item); err != nil {
			return response, err
		}

		response.Generated++
		response.Items = append(response.Items, toShoppingItemResponse(item))
	}

	return response, nil
}

func (s *shoppingListService) getOwnedItem(ctx context.Context, id string, userID string) (*entities.ShoppingListItem, error) {
	item, err := s.shoppingListRepository.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrShoppingItemNotFound
		}
		return nil, err
	}
	if item.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}
	return item, nil
}

func toShoppingItemResponse(item *entities.ShoppingListItem) domain.ShoppingItemResponse {
	return domain.ShoppingItemResponse{
		ID:             item.ID.String(),
		IngredientName: item.IngredientName,
		Category:       string(item.Category),
		QuantityNeeded: item.QuantityNeeded,
		Unit:           item.Unit,
		IsBought:       item.IsBought,
		BoughtAt:       item.BoughtAt,
		EstimatedPrice: item.EstimatedPrice,
		ActualPrice:    item.ActualPrice,
		Store:          item.Store,
		Notes:          item.Notes,
		CreatedAt:      item.CreatedAt,
	}
}
