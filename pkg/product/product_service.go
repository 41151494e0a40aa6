package product

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"freshkeep/domain"
	"freshkeep/entities"
	"freshkeep/internal/utils"
	"freshkeep/internal/utils/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type (
	ProductService interface {
		AddProduct(ctx context.Context, req domain.AddProductRequest, userID string) (domain.ProductResponse, error)
		UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest, userID string) error
		DeleteProduct(ctx context.Context, id string, userID string) error
		GetProducts(ctx context.Context, userID string, filter domain.ProductFilter) ([]domain.ProductResponse, int64, error)
		GetProductByID(ctx context.Context, id string, userID string) (domain.ProductResponse, error)
		GetExpiringSoon(ctx context.Context, userID string, days int) ([]domain.ProductResponse, error)
		MarkConsumed(ctx context.Context, id string, userID string) error
		MarkWasted(ctx context.Context, id string, userID string) error
		UploadProductImage(ctx context.Context, req domain.UploadProductImageRequest, userID string) error
		UploadReceipt(ctx context.Context, req domain.UploadReceiptRequest, userID string) (domain.UploadReceiptResponse, error)
		GetReceiptScan(ctx context.Context, id string, userID string) (domain.ReceiptScanResponse, error)
		SaveScannedProducts(ctx context.Context, req domain.SaveScannedProductsRequest, userID string) error
	}

	productService struct {
		productRepository ProductRepository
		s3                storage.AwsS3
	}
)

func NewProductService(productRepository ProductRepository, s3 storage.AwsS3) ProductService {
	return &productService{
		productRepository: productRepository,
		s3:                s3,
	}
}

func (s *productService) AddProduct(ctx context.Context, req domain.AddProductRequest, userID string) (domain.ProductResponse, error) {
	expirationDate, err := time.Parse(dateLayout, req.ExpirationDate)
	if err != nil {
		return domain.ProductResponse{}, domain.ErrInvalidExpirationDate
	}

	purchaseDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.PurchaseDate != "" {
		purchaseDate, err = time.Parse(dateLayout, req.PurchaseDate)
		if err != nil {
			return domain.ProductResponse{}, domain.ErrInvalidPurchaseDate
		}
	}

	if expirationDate.Before(purchaseDate) {
		return domain.ProductResponse{}, domain.ErrExpirationBeforePurchase
	}

	if req.Quantity <= 0 {
		return domain.ProductResponse{}, domain.ErrInvalidQuantity
	}

	category := entities.ProductCategory(req.Category)
	if !category.IsValid() {
		return domain.ProductResponse{}, domain.ErrInvalidCategory
	}

	location := entities.LocationPantry
	if req.Location != "" {
		location = entities.ProductLocation(req.Location)
		if !location.IsValid() {
			return domain.ProductResponse{}, domain.ErrInvalidLocation
		}
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ProductResponse{}, domain.ErrParseUUID
	}

	product := &entities.Product{
		ID:             uuid.New(),
		UserID:         userUUID,
		Name:           req.Name,
		Category:       category,
		Store:          req.Store,
		Quantity:       req.Quantity,
		Unit:           req.Unit,
		Price:          req.Price,
		PurchaseDate:   purchaseDate,
		ExpirationDate: expirationDate,
		Location:       location,
		Status:         entities.StatusActive,
		Notes:          req.Notes,
	}

	if err := s.productRepository.AddProduct(ctx, product); err != nil {
		return domain.ProductResponse{}, err
	}

	return toProductResponse(product, time.Now()), nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest, userID string) error {
	product, err := s.getOwnedProduct(ctx, id, userID)
	if err != nil {
		return err
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Category != "" {
		category := entities.ProductCategory(req.Category)
		if !category.IsValid() {
			return domain.ErrInvalidCategory
		}
		product.Category = category
	}
	if req.Store != "" {
		product.Store = req.Store
	}
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return domain.ErrInvalidQuantity
		}
		product.Quantity = *req.Quantity
	}
	if req.Unit != "" {
		product.Unit = req.Unit
	}
	if req.Price != nil {
		product.Price = req.Price
	}
	if req.IsOpened != nil && *req.IsOpened != product.IsOpened {
		product.IsOpened = *req.IsOpened
		if *req.IsOpened {
			now := time.Now()
			product.OpenedDate = &now
		} else {
			product.OpenedDate = nil
		}
	}
	if req.ExpirationDate != "" {
		expirationDate, err := time.Parse(dateLayout, req.ExpirationDate)
		if err != nil {
			return domain.ErrInvalidExpirationDate
		}
		if expirationDate.Before(product.PurchaseDate) {
			return domain.ErrExpirationBeforePurchase
		}
		product.ExpirationDate = expirationDate
	}
	if req.Location != "" {
		location := entities.ProductLocation(req.Location)
		if !location.IsValid() {
			return domain.ErrInvalidLocation
		}
		product.Location = location
	}
	if req.Status != "" {
		next := entities.ProductStatus(req.Status)
		if !next.IsValid() {
			return domain.ErrInvalidStatus
		}
		if next != product.Status {
			if !product.Status.CanTransitionTo(next) {
				return domain.ErrInvalidTransition
			}
			product.Status = next
		}
	}
	if req.Notes != "" {
		product.Notes = req.Notes
	}

	return s.productRepository.UpdateProduct(ctx, product)
}

func (s *productService) DeleteProduct(ctx context.Context, id string, userID string) error {
	product, err := s.getOwnedProduct(ctx, id, userID)
	if err != nil {
		return err
	}

	if product.ImageURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(product.ImageURL)
		if objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.productRepository.DeleteProduct(ctx, id)
}

func (s *productService) GetProducts(ctx context.Context, userID string, filter domain.ProductFilter) ([]domain.ProductResponse, int64, error) {
	products, count, err := s.productRepository.GetProducts(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	response := make([]domain.ProductResponse, 0, len(products))
	for _, product := range products {
		response = append(response, toProductResponse(product, now))
	}

	return response, count, nil
}

func (s *productService) GetProductByID(ctx context.Context, id string, userID string) (domain.ProductResponse, error) {
	product, err := s.getOwnedProduct(ctx, id, userID)
	if err != nil {
		return domain.ProductResponse{}, err
	}

	return toProductResponse(product, time.Now()), nil
}

func (s *productService) GetExpiringSoon(ctx context.Context, userID string, days int) ([]domain.ProductResponse, error) {
	now := time.Now()
	cutoff := now.AddDate(0, 0, days)

	products, err := s.productRepository.GetProductsByExpirationRange(ctx, userID, now, cutoff)
	if err != nil {
		return nil, err
	}

	response := make([]domain.ProductResponse, 0, len(products))
	for _, product := range products {
		response = append(response, toProductResponse(product, now))
	}

	return response, nil
}

func (s *productService) MarkConsumed(ctx context.Context, id string, userID string) error {
	return s.transition(ctx, id, userID, entities.StatusConsumed)
}

func (s *productService) MarkWasted(ctx context.Context, id string, userID string) error {
	return s.transition(ctx, id, userID, entities.StatusWasted)
}

func (s *productService) transition(ctx context.Context, id string, userID string, next entities.ProductStatus) error {
	product, err := s.getOwnedProduct(ctx, id, userID)
	if err != nil {
		return err
	}

	if !product.Status.CanTransitionTo(next) {
		return domain.ErrInvalidTransition
	}

	return s.productRepository.UpdateProductStatus(ctx, id, next)
}

func (s *productService) UploadProductImage(ctx context.Context, req domain.UploadProductImageRequest, userID string) error {
	product, err := s.getOwnedProduct(ctx, req.ProductID, userID)
	if err != nil {
		return err
	}

	fileName := fmt.Sprintf("product-%s", product.ID.String())
	var objectKey string
	var uploadErr error

	if product.ImageURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(product.ImageURL)
		if existingKey != "" {
			objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
		} else {
			objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "products", storage.AllowImage...)
		}
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "products", storage.AllowImage...)
	}

	if uploadErr != nil {
		return uploadErr
	}

	product.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	return s.productRepository.UpdateProduct(ctx, product)
}

func (s *productService) UploadReceipt(ctx context.Context, req domain.UploadReceiptRequest, userID string) (domain.UploadReceiptResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.UploadReceiptResponse{}, domain.ErrParseUUID
	}

	scanID := uuid.New()
	fileName := fmt.Sprintf("receipt-%s", scanID.String())
	objectKey, err := s.s3.UploadFile(fileName, req.ReceiptImage, "receipts", storage.AllowImage...)
	if err != nil {
		return domain.UploadReceiptResponse{}, err
	}

	imageURL := s.s3.GetPublicLinkKey(objectKey)

	receiptScan := &entities.ReceiptScan{
		ID:       scanID,
		UserID:   userUUID,
		ImageURL: imageURL,
		Status:   "Pending",
	}

	if err := s.productRepository.CreateReceiptScan(ctx, receiptScan); err != nil {
		_ = s.s3.DeleteFile(objectKey)
		return domain.UploadReceiptResponse{}, err
	}

	go s.processReceipt(receiptScan, req.ReceiptImage)

	return domain.UploadReceiptResponse{
		ScanID:   scanID.String(),
		ImageURL: imageURL,
		Status:   "Pending",
	}, nil
}

func (s *productService) processReceipt(receiptScan *entities.ReceiptScan, receiptImage *multipart.FileHeader) {
	ctx := context.Background()

	fail := func(reason string) {
		receiptScan.Status = "Failed"
		receiptScan.OcrResults = reason
		if err := s.productRepository.UpdateReceiptScan(ctx, receiptScan); err != nil {
			log.Printf("Error updating receipt scan: %v", err)
		}
	}

	ocrModelURL := utils.GetConfig("OCR_MODEL_URL")
	if ocrModelURL == "" {
		fail("Error: OCR model URL not configured")
		return
	}

	file, err := receiptImage.Open()
	if err != nil {
		fail(fmt.Sprintf("Error opening file: %s", err.Error()))
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		fail(fmt.Sprintf("Error reading file: %s", err.Error()))
		return
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("image", receiptImage.Filename)
	if err != nil {
		fail(fmt.Sprintf("Error creating form file: %s", err.Error()))
		return
	}

	if _, err = part.Write(fileBytes); err != nil {
		fail(fmt.Sprintf("Error writing to form file: %s", err.Error()))
		return
	}

	if err = writer.Close(); err != nil {
		fail(fmt.Sprintf("Error closing writer: %s", err.Error()))
		return
	}

	httpReq, err := http.NewRequest("POST", ocrModelURL, body)
	if err != nil {
		fail(fmt.Sprintf("Error creating request: %s", err.Error()))
		return
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		fail(fmt.Sprintf("Error sending request to OCR model: %s", err.Error()))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		fail(fmt.Sprintf("OCR model error: %s - %s", resp.Status, string(bodyBytes)))
		return
	}

	var ocrResponse struct {
		Success  bool   `json:"success"`
		Store    string `json:"store"`
		Products []struct {
			Name           string  `json:"name"`
			Category       string  `json:"category"`
			Quantity       float64 `json:"quantity"`
			Unit           string  `json:"unit"`
			ExpirationDate string  `json:"expiration_date"`
		} `json:"products"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&ocrResponse); err != nil {
		fail(fmt.Sprintf("Error parsing OCR response: %s", err.Error()))
		return
	}

	if !ocrResponse.Success || len(ocrResponse.Products) == 0 {
		fail("OCR model couldn't extract any products from receipt")
		return
	}

	resultsJSON, _ := json.Marshal(ocrResponse.Products)
	receiptScan.Status = "Processed"
	receiptScan.Store = ocrResponse.Store
	receiptScan.OcrResults = string(resultsJSON)

	if err := s.productRepository.UpdateReceiptScan(ctx, receiptScan); err != nil {
		log.Printf("Error updating receipt scan: %v", err)
	}
}

func (s *productService) GetReceiptScan(ctx context.Context, id string, userID string) (domain.ReceiptScanResponse, error) {
	scan, err := s.productRepository.GetReceiptScanByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ReceiptScanResponse{}, domain.ErrInvalidReceiptScan
		}
		return domain.ReceiptScanResponse{}, err
	}

	if scan.UserID.String() != userID {
		return domain.ReceiptScanResponse{}, domain.ErrUnauthorizedAccess
	}

	return domain.ReceiptScanResponse{
		ScanID:     scan.ID.String(),
		ImageURL:   scan.ImageURL,
		Store:      scan.Store,
		Status:     scan.Status,
		OcrResults: scan.OcrResults,
	}, nil
}

func (s *productService) SaveScannedProducts(ctx context.Context, req domain.SaveScannedProductsRequest, userID string) error {
	scan, err := s.productRepository.GetReceiptScanByID(ctx, req.ScanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrInvalidReceiptScan
		}
		return err
	}

	if scan.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	for _, item := range req.Products {
		expirationDate, err := time.Parse(dateLayout, item.ExpirationDate)
		if err != nil {
			return domain.ErrInvalidExpirationDate
		}

		category := entities.ProductCategory(item.Category)
		if !category.IsValid() {
			category = entities.CategoryOther
		}

		scanIDStr := scan.ID.String()
		product := &entities.Product{
			ID:             uuid.New(),
			UserID:         userUUID,
			Name:           item.Name,
			Category:       category,
			Store:          scan.Store,
			Quantity:       item.Quantity,
			Unit:           item.Unit,
			PurchaseDate:   time.Now().UTC().Truncate(24 * time.Hour),
			ExpirationDate: expirationDate,
			Location:       entities.LocationPantry,
			Status:         entities.StatusActive,
			ReceiptScanID:  &scanIDStr,
		}

		if err := s.productRepository.AddProduct(ctx, product); err != nil {
			return err
		}
	}

	scan.Status = "Completed"
	return s.productRepository.UpdateReceiptScan(ctx, scan)
}

func (s *productService) getOwnedProduct(ctx context.Context, id string, userID string) (*entities.Product, error) {
	product, err := s.productRepository.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	if product.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}

	return product, nil
}

func toProductResponse(product *entities.Product, now time.Time) domain.ProductResponse {
	return domain.ProductResponse{
		ID:                  product.ID.String(),
		Name:                product.Name,
		Category:            string(product.Category),
		Store:               product.Store,
		Quantity:            product.Quantity,
		Unit:                product.Unit,
		Price:               product.Price,
		IsOpened:            product.IsOpened,
		OpenedDate:          product.OpenedDate,
		PurchaseDate:        product.PurchaseDate,
		ExpirationDate:      product.ExpirationDate,
		Location:            string(product.Location),
		Status:              string(product.Status),
		ImageURL:            product.ImageURL,
		Notes:               product.Notes,
		DaysUntilExpiration: product.DaysUntilExpiration(now),
		IsExpiringSoon:      product.IsExpiringSoon(now, 3),
		CreatedAt:           product.CreatedAt,
	}
}
