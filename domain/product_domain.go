package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessAddProduct      = "product added successfully"
	MessageSuccessUpdateProduct   = "product updated successfully"
	MessageSuccessDeleteProduct   = "product deleted successfully"
	MessageSuccessGetProducts     = "products retrieved successfully"
	MessageSuccessMarkConsumed    = "product marked as consumed"
	MessageSuccessMarkWasted      = "product marked as wasted"
	MessageSuccessUploadImage     = "product image uploaded successfully"
	MessageSuccessUploadReceipt   = "receipt uploaded successfully"
	MessageSuccessGetReceiptScan  = "receipt scan retrieved successfully"
	MessageSuccessSaveScanned     = "scanned products saved successfully"
	MessageSuccessGetExpiringSoon = "expiring products retrieved successfully"

	MessageFailedAddProduct      = "failed to add product"
	MessageFailedUpdateProduct   = "failed to update product"
	MessageFailedDeleteProduct   = "failed to delete product"
	MessageFailedGetProducts     = "failed to retrieve products"
	MessageFailedMarkConsumed    = "failed to mark product as consumed"
	MessageFailedMarkWasted      = "failed to mark product as wasted"
	MessageFailedUploadImage     = "failed to upload product image"
	MessageFailedUploadReceipt   = "failed to upload receipt"
	MessageFailedGetReceiptScan  = "failed to retrieve receipt scan"
	MessageFailedSaveScanned     = "failed to save scanned products"
	MessageFailedGetExpiringSoon = "failed to retrieve expiring products"

	ErrProductNotFound          = errors.New("product not found")
	ErrInvalidExpirationDate    = errors.New("invalid expiration date")
	ErrInvalidPurchaseDate      = errors.New("invalid purchase date")
	ErrExpirationBeforePurchase = errors.New("expiration date before purchase date")
	ErrInvalidQuantity          = errors.New("quantity must be positive")
	ErrInvalidCategory          = errors.New("invalid product category")
	ErrInvalidLocation          = errors.New("invalid product location")
	ErrInvalidStatus            = errors.New("invalid product status")
	ErrInvalidTransition        = errors.New("illegal status transition")
	ErrInvalidReceiptScan       = errors.New("invalid receipt scan ID")
	ErrReceiptProcessingFailed  = errors.New("receipt processing failed")
)

type (
	AddProductRequest struct {
		Name           string   `json:"name" validate:"required"`
		Category       string   `json:"category" validate:"required"`
		Store          string   `json:"store" validate:"omitempty"`
		Quantity       float64  `json:"quantity" validate:"required,gt=0"`
		Unit           string   `json:"unit" validate:"required"`
		Price          *float64 `json:"price" validate:"omitempty,gte=0"`
		PurchaseDate   string   `json:"purchase_date" validate:"omitempty"`
		ExpirationDate string   `json:"expiration_date" validate:"required"`
		Location       string   `json:"location" validate:"omitempty"`
		Notes          string   `json:"notes" validate:"omitempty"`
	}

	UpdateProductRequest struct {
		Name           string   `json:"name" validate:"omitempty"`
		Category       string   `json:"category" validate:"omitempty"`
		Store          string   `json:"store" validate:"omitempty"`
		Quantity       *float64 `json:"quantity" validate:"omitempty,gt=0"`
		Unit           string   `json:"unit" validate:"omitempty"`
		Price          *float64 `json:"price" validate:"omitempty,gte=0"`
		IsOpened       *bool    `json:"is_opened" validate:"omitempty"`
		ExpirationDate string   `json:"expiration_date" validate:"omitempty"`
		Location       string   `json:"location" validate:"omitempty"`
		Status         string   `json:"status" validate:"omitempty"`
		Notes          string   `json:"notes" validate:"omitempty"`
	}

	ProductFilter struct {
		Status        string
		Category      string
		Location      string
		ExpiresBefore *time.Time
		ExpiresAfter  *time.Time
		Page          int
		Limit         int
	}

	ProductResponse struct {
		ID                  string     `json:"id"`
		Name                string     `json:"name"`
		Category            string     `json:"category"`
		Store               string     `json:"store,omitempty"`
		Quantity            float64    `json:"quantity"`
		Unit                string     `json:"unit"`
		Price               *float64   `json:"price,omitempty"`
		IsOpened            bool       `json:"is_opened"`
		OpenedDate          *time.Time `json:"opened_date,omitempty"`
		PurchaseDate        time.Time  `json:"purchase_date"`
		ExpirationDate      time.Time  `json:"expiration_date"`
		Location            string     `json:"location"`
		Status              string     `json:"status"`
		ImageURL            string     `json:"image_url,omitempty"`
		Notes               string     `json:"notes,omitempty"`
		DaysUntilExpiration int        `json:"days_until_expiration"`
		IsExpiringSoon      bool       `json:"is_expiring_soon"`
		CreatedAt           time.Time  `json:"created_at"`
	}

	UploadProductImageRequest struct {
		ProductID string                `json:"product_id" form:"product_id" validate:"required,uuid"`
		Image     *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	UploadReceiptRequest struct {
		ReceiptImage *multipart.FileHeader `json:"receipt_image" form:"receipt_image" validate:"required"`
	}

	UploadReceiptResponse struct {
		ScanID   string `json:"scan_id"`
		ImageURL string `json:"image_url"`
		Status   string `json:"status"`
	}

	ReceiptScanResponse struct {
		ScanID     string `json:"scan_id"`
		ImageURL   string `json:"image_url"`
		Store      string `json:"store,omitempty"`
		Status     string `json:"status"`
		OcrResults string `json:"ocr_results,omitempty"`
	}

	ScannedProductRequest struct {
		Name           string  `json:"name" validate:"required"`
		Category       string  `json:"category" validate:"required"`
		Quantity       float64 `json:"quantity" validate:"required,gt=0"`
		Unit           string  `json:"unit" validate:"required"`
		ExpirationDate string  `json:"expiration_date" validate:"required"`
	}

	SaveScannedProductsRequest struct {
		ScanID   string                  `json:"scan_id" validate:"required,uuid"`
		Products []ScannedProductRequest `json:"products" validate:"required,dive"`
	}
)
