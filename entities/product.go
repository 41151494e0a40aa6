package entities

import (
	"time"

	"github.com/google/uuid"
)

type ProductCategory string

const (
	CategoryFruits     ProductCategory = "FRUITS"
	CategoryVegetables ProductCategory = "VEGETABLES"
	CategoryDairy      ProductCategory = "DAIRY"
	CategoryMeat       ProductCategory = "MEAT"
	CategoryFish       ProductCategory = "FISH"
	CategoryGrains     ProductCategory = "GRAINS"
	CategoryBeverages  ProductCategory = "BEVERAGES"
	CategorySnacks     ProductCategory = "SNACKS"
	CategoryCondiments ProductCategory = "CONDIMENTS"
	CategoryFrozen     ProductCategory = "FROZEN"
	CategoryBakery     ProductCategory = "BAKERY"
	CategoryOther      ProductCategory = "OTHER"
)

var productCategories = map[ProductCategory]bool{
	CategoryFruits:     true,
	CategoryVegetables: true,
	CategoryDairy:      true,
	CategoryMeat:       true,
	CategoryFish:       true,
	CategoryGrains:     true,
	CategoryBeverages:  true,
	CategorySnacks:     true,
	CategoryCondiments: true,
	CategoryFrozen:     true,
	CategoryBakery:     true,
	CategoryOther:      true,
}

func (c ProductCategory) IsValid() bool {
	return productCategories[c]
}

type ProductLocation string

const (
	LocationFridge  ProductLocation = "FRIDGE"
	LocationFreezer ProductLocation = "FREEZER"
	LocationPantry  ProductLocation = "PANTRY"
)

func (l ProductLocation) IsValid() bool {
	return l == LocationFridge || l == LocationFreezer || l == LocationPantry
}

type ProductStatus string

const (
	StatusActive   ProductStatus = "ACTIVE"
	StatusConsumed ProductStatus = "CONSUMED"
	StatusExpired  ProductStatus = "EXPIRED"
	StatusWasted   ProductStatus = "WASTED"
)

// Transitions are forward-only: no state ever goes back to ACTIVE.
// EXPIRED is not terminal; the user still disposes of an auto-expired
// product by marking it consumed or wasted.
var statusTransitions = map[ProductStatus][]ProductStatus{
	StatusActive:   {StatusConsumed, StatusExpired, StatusWasted},
	StatusConsumed: {},
	StatusExpired:  {StatusConsumed, StatusWasted},
	StatusWasted:   {},
}

func (s ProductStatus) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

func (s ProductStatus) CanTransitionTo(next ProductStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Product struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID         uuid.UUID       `gorm:"index" json:"user_id"`
	Name           string          `json:"name"`
	Category       ProductCategory `json:"category"`
	Store          string          `json:"store,omitempty"`
	Quantity       float64         `json:"quantity"`
	Unit           string          `json:"unit"`
	Price          *float64        `json:"price,omitempty"`
	IsOpened       bool            `json:"is_opened"`
	OpenedDate     *time.Time      `json:"opened_date,omitempty"`
	PurchaseDate   time.Time       `json:"purchase_date"`
	ExpirationDate time.Time       `gorm:"index" json:"expiration_date"`
	Location       ProductLocation `json:"location"`
	Status         ProductStatus   `gorm:"index" json:"status"`
	ImageURL       string          `json:"image_url,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	ReceiptScanID  *string         `json:"receipt_scan_id,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

// DaysUntilExpiration is the calendar-day difference between the expiration
// date and today, ignoring the time-of-day component of both.
func (p *Product) DaysUntilExpiration(now time.Time) int {
	today := truncateToDay(now)
	expires := truncateToDay(p.ExpirationDate)
	return int(expires.Sub(today).Hours() / 24)
}

func (p *Product) IsExpired(now time.Time) bool {
	return p.DaysUntilExpiration(now) < 0
}

func (p *Product) IsExpiringSoon(now time.Time, thresholdDays int) bool {
	days := p.DaysUntilExpiration(now)
	return days >= 0 && days <= thresholdDays
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
