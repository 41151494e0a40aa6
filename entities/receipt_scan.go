package entities

import (
	"github.com/google/uuid"
)

type ReceiptScan struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	ImageURL   string    `json:"image_url"`
	Store      string    `json:"store,omitempty"`
	Status     string    `json:"status"` // "Pending", "Processed", "Completed", "Failed"
	OcrResults string    `json:"ocr_results,omitempty" gorm:"type:text"`

	User     *User      `gorm:"foreignKey:UserID"`
	Products []*Product `gorm:"foreignKey:ReceiptScanID"`
	Timestamp
}
