package subscription

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"freshkeep/domain"
	"freshkeep/entities"
	"freshkeep/internal/utils"
	"freshkeep/pkg/user"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"
)

const defaultPremiumPrice = 49000

type (
	SubscriptionService interface {
		CreateTransaction(ctx context.Context, userID string) (domain.CreateTransactionResponse, error)
		HandleNotification(ctx context.Context, req domain.MidtransNotificationRequest) error
	}

	subscriptionService struct {
		subscriptionRepository SubscriptionRepository
		userRepository         user.UserRepository
		snapClient             snap.Client
		premiumPrice           int64
	}
)

func NewSubscriptionService(subscriptionRepository SubscriptionRepository, userRepository user.UserRepository) SubscriptionService {
	env := midtrans.Sandbox
	if utils.GetConfig("IsProd") == "true" {
		env = midtrans.Production
	}

	var snapClient snap.Client
	snapClient.New(utils.GetConfig("SERVER_KEY"), env)

	price := int64(defaultPremiumPrice)
	if raw := utils.GetConfig("PREMIUM_PRICE"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			price = parsed
		}
	}

	return &subscriptionService{
		subscriptionRepository: subscriptionRepository,
		userRepository:         userRepository,
		snapClient:             snapClient,
		premiumPrice:           price,
	}
}

func (s *subscriptionService) CreateTransaction(ctx context.Context, userID string) (domain.CreateTransactionResponse, error) {
	u, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CreateTransactionResponse{}, domain.ErrUserNotFound
		}
		return domain.CreateTransactionResponse{}, err
	}

	if u.SubscriptionTier == entities.SubscriptionPremium {
		return domain.CreateTransactionResponse{}, domain.ErrAlreadyPremium
	}

	orderID := fmt.Sprintf("PREMIUM-%s", uuid.New().String())

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: s.premiumPrice,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: u.FullName,
			Email: u.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    "premium-subscription",
				Name:  "FreshKeep Premium",
				Price: s.premiumPrice,
				Qty:   1,
			},
		},
	}

	snapResp, snapErr := s.snapClient.CreateTransaction(snapReq)
	if snapErr != nil {
		return domain.CreateTransactionResponse{}, snapErr
	}

	transaction := &entities.Transaction{
		ID:      uuid.New(),
		UserID:  u.ID,
		OrderID: orderID,
		Amount:  s.premiumPrice,
		Status:  "pending",
	}

	if err := s.subscriptionRepository.CreateTransaction(ctx, transaction); err != nil {
		return domain.CreateTransactionResponse{}, err
	}

	return domain.CreateTransactionResponse{
		OrderID:     orderID,
		SnapToken:   snapResp.Token,
		RedirectURL: snapResp.RedirectURL,
	}, nil
}

// HandleNotification processes the midtrans payment webhook. A settled
// payment upgrades the paying user to the premium tier; terminal failure
// states only update the stored transaction.
func (s *subscriptionService) HandleNotification(ctx context.Context, req domain.MidtransNotificationRequest) error {
	transaction, err := s.subscriptionRepository.GetTransactionByOrderID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTransactionNotFound
		}
		return err
	}

	settled := false
	switch req.TransactionStatus {
	case "capture":
		if req.FraudStatus == "accept" {
			settled = true
		}
	case "settlement":
		settled = true
	case "deny", "cancel", "expire":
		transaction.Status = req.TransactionStatus
		return s.subscriptionRepository.UpdateTransaction(ctx, transaction)
	default:
		return nil
	}

	if !settled || transaction.Status == "settlement" {
		return nil
	}

	transaction.Status = "settlement"
	if err := s.subscriptionRepository.UpdateTransaction(ctx, transaction); err != nil {
		return err
	}

	u, err := s.userRepository.GetUserByID(ctx, transaction.UserID.String())
	if err != nil {
		return err
	}

	u.SubscriptionTier = entities.SubscriptionPremium
	return s.userRepository.UpdateUser(ctx, u)
}
