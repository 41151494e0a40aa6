package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessAddShoppingItem    = "shopping list item added successfully"
	MessageSuccessUpdateShoppingItem = "shopping list item updated successfully"
	MessageSuccessDeleteShoppingItem = "shopping list item deleted successfully"
	MessageSuccessGetShoppingList    = "shopping list retrieved successfully"
	MessageSuccessMarkBought         = "shopping list item marked as bought"
	MessageSuccessGenerateList       = "shopping list generated successfully"

	MessageFailedAddShoppingItem    = "failed to add shopping list item"
	MessageFailedUpdateShoppingItem = "failed to update shopping list item"
	MessageFailedDeleteShoppingItem = "failed to delete shopping list item"
	MessageFailedGetShoppingList    = "failed to retrieve shopping list"
	MessageFailedMarkBought         = "failed to mark shopping list item as bought"
	MessageFailedGenerateList       = "failed to generate shopping list"

	ErrShoppingItemNotFound = errors.New("shopping list item not found")
	ErrItemAlreadyBought    = errors.New("shopping list item already bought")
)

type (
	AddShoppingItemRequest struct {
		IngredientName string   `json:"ingredient_name" validate:"required"`
		Category       string   `json:"category" validate:"required"`
		QuantityNeeded float64  `json:"quantity_needed" validate:"required,gt=0"`
		Unit           string   `json:"unit" validate:"required"`
		EstimatedPrice *float64 `json:"estimated_price" validate:"omitempty,gte=0"`
		Store          string   `json:"store" validate:"omitempty"`
		Notes          string   `json:"notes" validate:"omitempty"`
	}

	UpdateShoppingItemRequest struct {
		IngredientName string   `json:"ingredient_name" validate:"omitempty"`
		QuantityNeeded *float64 `json:"quantity_needed" validate:"omitempty,gt=0"`
		Unit           string   `json:"unit" validate:"omitempty"`
		EstimatedPrice *float64 `json:"estimated_price" validate:"omitempty,gte=0"`
		Store          string   `json:"store" validate:"omitempty"`
		Notes          string   `json:"notes" validate:"omitempty"`
	}

	MarkBoughtRequest struct {
		ActualPrice    *float64 `json:"actual_price" validate:"omitempty,gte=0"`
		AddToInventory bool     `json:"add_to_inventory"`
		ExpirationDate string   `json:"expiration_date" validate:"omitempty"`
		Location       string   `json:"location" validate:"omitempty"`
	}

	ShoppingItemResponse struct {
		ID             string     `json:"id"`
		IngredientName string     `json:"ingredient_name"`
		Category       string     `json:"category"`
		QuantityNeeded float64    `json:"quantity_needed"`
		Unit           string     `json:"unit"`
		IsBought       bool       `json:"is_bought"`
		BoughtAt       *time.Time `json:"bought_at,omitempty"`
		EstimatedPrice *float64   `json:"estimated_price,omitempty"`
		ActualPrice    *float64   `json:"actual_price,omitempty"`
		Store          string     `json:"store,omitempty"`
		Notes          string     `json:"notes,omitempty"`
		CreatedAt      time.Time  `json:"created_at"`
	}

	GenerateListResponse struct {
		Generated int                    `json:"generated"`
		Items     []ShoppingItemResponse `json:"items"`
	}
)
