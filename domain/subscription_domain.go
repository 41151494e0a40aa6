package domain

import (
	"errors"
)

var (
	MessageSuccessCreateTransaction = "subscription transaction created successfully"
	MessageSuccessWebhook           = "webhook processed successfully"

	MessageFailedCreateTransaction = "failed to create subscription transaction"
	MessageFailedWebhook           = "failed to process webhook"

	ErrTransactionNotFound = errors.New("transaction not found")
	ErrAlreadyPremium      = errors.New("user already has a premium subscription")
)

type (
	CreateTransactionResponse struct {
		OrderID     string `json:"order_id"`
		SnapToken   string `json:"snap_token"`
		RedirectURL string `json:"redirect_url"`
	}

	MidtransNotificationRequest struct {
		OrderID           string `json:"order_id"`
		TransactionStatus string `json:"transaction_status"`
		FraudStatus       string `json:"fraud_status"`
	}
)
