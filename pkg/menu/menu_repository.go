package menu

import (
	"context"
	"time"

	"freshkeep/entities"

	"gorm.io/gorm"
)

type (
	MenuRepository interface {
		AddEntry(ctx context.Context, entry *entities.WeeklyMenuEntry) error
		GetEntryByID(ctx context.Context, id string) (*entities.WeeklyMenuEntry, error)
		GetEntriesForWeek(ctx context.Context, userID string, weekStart, weekEnd time.Time) ([]*entities.WeeklyMenuEntry, error)
		UpdateEntry(ctx context.Context, entry *entities.WeeklyMenuEntry) error
		DeleteEntry(ctx context.Context, id string) error
	}

	menuRepository struct {
		db *gorm.DB
	}
)

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) AddEntry(ctx context.Context, entry *entities.WeeklyMenuEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *menuRepository) GetEntryByID(ctx context.Context, id string) (*entities.WeeklyMenuEntry, error) {
	var entry entities.WeeklyMenuEntry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *menuRepository) GetEntriesForWeek(ctx context.Context, userID string, weekStart, weekEnd time.Time) ([]*entities.WeeklyMenuEntry, error) {
	var entries []*entities.WeeklyMenuEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND week_start_date >= ? AND week_start_date < ?", userID, weekStart, weekEnd).
		Order("day_of_week asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *menuRepository) UpdateEntry(ctx context.Context, entry *entities.WeeklyMenuEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *menuRepository) DeleteEntry(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.WeeklyMenuEntry{}).Error
}
