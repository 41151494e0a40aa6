package notification

import (
	"context"
	"errors"

	"freshkeep/domain"

	"gorm.io/gorm"
)

type (
	NotificationService interface {
		GetNotifications(ctx context.Context, userID string, unreadOnly bool, page, limit int) ([]domain.NotificationResponse, int64, error)
		CountUnread(ctx context.Context, userID string) (int64, error)
		MarkRead(ctx context.Context, id string, userID string) error
		MarkAllRead(ctx context.Context, userID string) error
	}

	notificationService struct {
		notificationRepository NotificationRepository
	}
)

func NewNotificationService(notificationRepository NotificationRepository) NotificationService {
	return &notificationService{
		notificationRepository: notificationRepository,
	}
}

func (s *notificationService) GetNotifications(ctx context.Context, userID string, unreadOnly bool, page, limit int) ([]domain.NotificationResponse, int64, error) {
	notifications, count, err := s.notificationRepository.GetNotifications(ctx, userID, unreadOnly, page, limit)
	if err != nil {
		return nil, 0, err
	}

	response := make([]domain.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		productID := ""
		if n.ProductID != nil {
			productID = n.ProductID.String()
		}
		response = append(response, domain.NotificationResponse{
			ID:        n.ID.String(),
			ProductID: productID,
			Type:      string(n.Type),
			Title:     n.Title,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}

	return response, count, nil
}

func (s *notificationService) CountUnread(ctx context.Context, userID string) (int64, error) {
	return s.notificationRepository.CountUnread(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, id string, userID string) error {
	notification, err := s.notificationRepository.GetNotificationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotificationNotFound
		}
		return err
	}

	if notification.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	return s.notificationRepository.MarkRead(ctx, id)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.notificationRepository.MarkAllRead(ctx, userID)
}
