package notification

import (
	"context"
	"testing"

	"freshkeep/entities"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	// The postgres schema defaults IDs server-side; the tests always set
	// IDs explicitly, so a plain table is enough here.
	require.NoError(t, db.Exec(`CREATE TABLE notifications (
		id text PRIMARY KEY,
		user_id text,
		product_id text,
		type text,
		title text,
		message text,
		is_read numeric,
		created_at datetime,
		updated_at datetime
	)`).Error)

	return db
}

func newNotification(userID uuid.UUID, productID *uuid.UUID, notificationType entities.NotificationType) *entities.Notification {
	return &entities.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		Type:      notificationType,
		Title:     "title",
		Message:   "message",
	}
}

func TestCreateIfAbsentDeduplicates(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	ctx := context.Background()

	userID := uuid.New()
	productID := uuid.New()

	created, err := repo.CreateIfAbsent(ctx, newNotification(userID, &productID, entities.NotificationExpiringSoon))
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.CreateIfAbsent(ctx, newNotification(userID, &productID, entities.NotificationExpiringSoon))
	require.NoError(t, err)
	assert.False(t, created, "second insert with the same key must be suppressed")

	count, err := repo.CountUnread(ctx, userID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCreateIfAbsentDistinguishesKeys(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	ctx := context.Background()

	userID := uuid.New()
	productID := uuid.New()
	otherProductID := uuid.New()

	created, err := repo.CreateIfAbsent(ctx, newNotification(userID, &productID, entities.NotificationExpiringSoon))
	require.NoError(t, err)
	assert.True(t, created)

	// Same product, different type.
	created, err = repo.CreateIfAbsent(ctx, newNotification(userID, &productID, entities.NotificationExpired))
	require.NoError(t, err)
	assert.True(t, created)

	// Same type, different product.
	created, err = repo.CreateIfAbsent(ctx, newNotification(userID, &otherProductID, entities.NotificationExpiringSoon))
	require.NoError(t, err)
	assert.True(t, created)

	// Same type, different user.
	created, err = repo.CreateIfAbsent(ctx, newNotification(uuid.New(), &productID, entities.NotificationExpiringSoon))
	require.NoError(t, err)
	assert.True(t, created)
}

func TestCreateIfAbsentAllowsNewAfterRead(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	ctx := context.Background()

	userID := uuid.New()
	productID := uuid.New()

	first := newNotification(userID, &productID, entities.NotificationExpiringSoon)
	created, err := repo.CreateIfAbsent(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)

	require.NoError(t, repo.MarkRead(ctx, first.ID.String()))

	// Only unread rows participate in dedup; a read notification does
	// not block a fresh one.
	created, err = repo.CreateIfAbsent(ctx, newNotification(userID, &productID, entities.NotificationExpiringSoon))
	require.NoError(t, err)
	assert.True(t, created)
}

func TestCreateIfAbsentNilProductID(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	ctx := context.Background()

	userID := uuid.New()

	created, err := repo.CreateIfAbsent(ctx, newNotification(userID, nil, entities.NotificationRecipeSuggestion))
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.CreateIfAbsent(ctx, newNotification(userID, nil, entities.NotificationRecipeSuggestion))
	require.NoError(t, err)
	assert.False(t, created)
}

func TestMarkAllRead(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	ctx := context.Background()

	userID := uuid.New()
	for _, notificationType := range []entities.NotificationType{
		entities.NotificationExpiringSoon,
		entities.NotificationExpired,
		entities.NotificationLowStock,
	} {
		productID := uuid.New()
		_, err := repo.CreateIfAbsent(ctx, newNotification(userID, &productID, notificationType))
		require.NoError(t, err)
	}

	require.NoError(t, repo.MarkAllRead(ctx, userID.String()))

	count, err := repo.CountUnread(ctx, userID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	notifications, total, err := repo.GetNotifications(ctx, userID.String(), false, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	for _, n := range notifications {
		assert.True(t, n.IsRead)
	}
}
