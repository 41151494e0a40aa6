package notification

import (
	"context"
	"errors"

	"freshkeep/entities"

	"gorm.io/gorm"
)

type (
	NotificationRepository interface {
		// CreateIfAbsent inserts the notification unless an unread one with
		// the same (user, product, type) key already exists. The check and
		// the insert run in one transaction; the migration's partial unique
		// index backs this up under concurrent writers. Returns true when a
		// row was created.
		CreateIfAbsent(ctx context.Context, notification *entities.Notification) (bool, error)
		GetNotificationByID(ctx context.Context, id string) (*entities.Notification, error)
		GetNotifications(ctx context.Context, userID string, unreadOnly bool, page, limit int) ([]*entities.Notification, int64, error)
		CountUnread(ctx context.Context, userID string) (int64, error)
		MarkRead(ctx context.Context, id string) error
		MarkAllRead(ctx context.Context, userID string) error
	}

	notificationRepository struct {
		db *gorm.DB
	}
)

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateIfAbsent(ctx context.Context, notification *entities.Notification) (bool, error) {
	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entities.Notification
		query := tx.Where(
			"user_id = ? AND type = ? AND is_read = ?",
			notification.UserID, notification.Type, false,
		)
		if notification.ProductID != nil {
			query = query.Where("product_id = ?", *notification.ProductID)
		} else {
			query = query.Where("product_id IS NULL")
		}

		err := query.First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(notification).Error; err != nil {
			return err
		}
		created = true
		return nil
	})

	return created, err
}

func (r *notificationRepository) GetNotificationByID(ctx context.Context, id string) (*entities.Notification, error) {
	var notification entities.Notification
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) GetNotifications(ctx context.Context, userID string, unreadOnly bool, page, limit int) ([]*entities.Notification, int64, error) {
	var notifications []*entities.Notification
	var count int64

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	if err := query.Model(&entities.Notification{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, count, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&entities.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_read": true}).Error
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Model(&entities.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true}).Error
}
