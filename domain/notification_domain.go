package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetNotifications = "notifications retrieved successfully"
	MessageSuccessMarkRead         = "notification marked as read"
	MessageSuccessMarkAllRead      = "all notifications marked as read"
	MessageSuccessEvaluate         = "expiration evaluation completed"

	MessageFailedGetNotifications = "failed to retrieve notifications"
	MessageFailedMarkRead         = "failed to mark notification as read"
	MessageFailedMarkAllRead      = "failed to mark all notifications as read"
	MessageFailedEvaluate         = "failed to run expiration evaluation"

	ErrNotificationNotFound = errors.New("notification not found")
)

type (
	NotificationResponse struct {
		ID        string    `json:"id"`
		ProductID string    `json:"product_id,omitempty"`
		Type      string    `json:"type"`
		Title     string    `json:"title"`
		Message   string    `json:"message"`
		IsRead    bool      `json:"is_read"`
		CreatedAt time.Time `json:"created_at"`
	}

	UnreadCountResponse struct {
		Count int64 `json:"count"`
	}

	EvaluationResult struct {
		Evaluated    int      `json:"evaluated"`
		Expired      int      `json:"expired"`
		ExpiringSoon int      `json:"expiring_soon"`
		LowStock     int      `json:"low_stock"`
		Notified     int      `json:"notified"`
		Skipped      []string `json:"skipped,omitempty"`
	}
)
