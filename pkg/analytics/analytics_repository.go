package analytics

import (
	"context"
	"time"

	"freshkeep/domain"
	"freshkeep/entities"

	"gorm.io/gorm"
)

type (
	AnalyticsRepository interface {
		CountProductsByStatus(ctx context.Context, userID string, status entities.ProductStatus) (int64, error)
		CountStatusSince(ctx context.Context, userID string, status entities.ProductStatus, since time.Time) (int64, error)
		CountExpiringBetween(ctx context.Context, userID string, from, to time.Time) (int64, error)
		TotalInventoryValue(ctx context.Context, userID string) (float64, error)
		CategoryDistribution(ctx context.Context, userID string) ([]domain.CategoryCount, error)
		LocationDistribution(ctx context.Context, userID string) ([]domain.LocationCount, error)
		StoreDistribution(ctx context.Context, userID string) ([]domain.StoreCount, error)
		AddedPerDay(ctx context.Context, userID string, since time.Time) (map[string]int64, error)
		ConsumedPerDay(ctx context.Context, userID string, since time.Time) (map[string]int64, error)
	}

	analyticsRepository struct {
		db *gorm.DB
	}
)

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) CountProductsByStatus(ctx context.Context, userID string, status entities.ProductStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Product{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountStatusSince(ctx context.Context, userID string, status entities.ProductStatus, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Product{}).
		Where("user_id = ? AND status = ? AND updated_at >= ?", userID, status, since).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountExpiringBetween(ctx context.Context, userID string, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Product{}).
		Where("user_id = ? AND status = ?", userID, entities.StatusActive).
		Where("expiration_date >= ? AND expiration_date <= ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) TotalInventoryValue(ctx context.Context, userID string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&entities.Product{}).
		Where("user_id = ? AND status = ?", userID, entities.StatusActive).
		Select("COALESCE(SUM(price), 0)").
		Scan(&total).Error
	return total, err
}

func (r *analyticsRepository) CategoryDistribution(ctx context.Context, userID string) ([]domain.CategoryCount, error) {
	var rows []domain.CategoryCount
	err := r.db.WithContext(ctx).
		Model(&entities.Product{}).
		Where("user_id = ? AND status = ?", userID, entities.StatusActive).
		Select("category, COUNT(*) as count, COALESCE(SUM(price), 0) as total_value").
		Group("category").
		Order("count desc").
		Scan(&rows).Error
	return rows, err
}

func (r *analyticsRepository) LocationDistribution(ctx context.Context, userID string) ([]domain.LocationCount, error) {
	var rows []domain.LocationCount
	err := r.db.WithContext(ctx).
		Model(&entities.Product{}).
		Where("user_id = ? AND status = ?", userID, entities.StatusActive).
		Select("location, COUNT(*) as count").
		Group("location").
		Order("count desc").
		Scan(&rows).Error
	return rows, err
}

func (r *analyticsRepository) StoreDistribution(ctx context.Context, userID string) ([]domain.StoreCount, error) {
	var rows []domain.StoreCount
	err := r.db.WithContext(ctx).
		Model(&entities.Product{}).
		Where("user_id = ? AND store <> ''", userID).
		Select("store, COUNT(*) as count, COALESCE(SUM(price), 0) as total_spent").
		Group("store").
		Order("count desc").
		Scan(&rows).Error
	return rows, err
}

type dayCount struct {
	Day   time.Time
	Count int64
}

func (r *analyticsRepository) AddedPerDay(ctx context.Context, userID string, since time.Time) (map[string]int64, error) {
	var rows []dayCount
	err := r.db.WithContext(ctx).
		Model(&entities.Product{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Select("DATE(created_at) as day, COUNT(*) as count").
		Group("DATE(created_at)").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDayMap(rows), nil
}

func (r *analyticsRepository) ConsumedPerDay(ctx context.Context, userID string, since time.Time) (map[string]int64, error) {
	var rows []dayCount
	err := r.db.WithContext(ctx).
		Model(&entities.Product{}).
		Where("user_id = ? AND status = ? AND updated_at >= ?", userID, entities.StatusConsumed, since).
		Select("DATE(updated_at) as day, COUNT(*) as count").
		Group("DATE(updated_at)").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDayMap(rows), nil
}

func toDayMap(rows []dayCount) map[string]int64 {
	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.Day.Format("2006-01-02")] = row.Count
	}
	return result
}
