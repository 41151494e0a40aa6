package analytics

import (
	"context"
	"time"

	"freshkeep/domain"
	"freshkeep/entities"
	"freshkeep/pkg/product"
)

const (
	periodDays = 30
	trendDays  = 7
)

type (
	AnalyticsService interface {
		GetDashboardStats(ctx context.Context, userID string, soonThresholdDays int) (domain.DashboardStatsResponse, error)
	}

	analyticsService struct {
		analyticsRepository AnalyticsRepository
		productService      product.ProductService
	}
)

func NewAnalyticsService(analyticsRepository AnalyticsRepository, productService product.ProductService) AnalyticsService {
	return &analyticsService{
		analyticsRepository: analyticsRepository,
		productService:      productService,
	}
}

func (s *analyticsService) GetDashboardStats(ctx context.Context, userID string, soonThresholdDays int) (domain.DashboardStatsResponse, error) {
	now := time.Now()

	overview, err := s.buildOverview(ctx, userID, now, soonThresholdDays)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	categories, err := s.analyticsRepository.CategoryDistribution(ctx, userID)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	locations, err := s.analyticsRepository.LocationDistribution(ctx, userID)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	stores, err := s.analyticsRepository.StoreDistribution(ctx, userID)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	trends, err := s.buildDailyTrends(ctx, userID, now)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	expiring, err := s.productService.GetExpiringSoon(ctx, userID, soonThresholdDays)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	return domain.DashboardStatsResponse{
		Overview:             overview,
		CategoryDistribution: categories,
		LocationDistribution: locations,
		StoreDistribution:    stores,
		DailyTrends:          trends,
		ExpiringProducts:     expiring,
	}, nil
}

func (s *analyticsService) buildOverview(ctx context.Context, userID string, now time.Time, soonThresholdDays int) (domain.DashboardOverview, error) {
	var overview domain.DashboardOverview
	var err error

	if overview.TotalProducts, err = s.analyticsRepository.CountProductsByStatus(ctx, userID, entities.StatusActive); err != nil {
		return overview, err
	}

	if overview.TotalValue, err = s.analyticsRepository.TotalInventoryValue(ctx, userID); err != nil {
		return overview, err
	}

	cutoff := now.AddDate(0, 0, soonThresholdDays)
	if overview.ExpiringSoon, err = s.analyticsRepository.CountExpiringBetween(ctx, userID, now, cutoff); err != nil {
		return overview, err
	}

	if overview.Expired, err = s.analyticsRepository.CountProductsByStatus(ctx, userID, entities.StatusExpired); err != nil {
		return overview, err
	}

	since := now.AddDate(0, 0, -periodDays)
	if overview.Consumed, err = s.analyticsRepository.CountStatusSince(ctx, userID, entities.StatusConsumed, since); err != nil {
		return overview, err
	}
	if overview.Wasted, err = s.analyticsRepository.CountStatusSince(ctx, userID, entities.StatusWasted, since); err != nil {
		return overview, err
	}

	// Waste rate over finished products of the period. Expired but not
	// yet wasted products do not count until the user disposes of them.
	finished := overview.Consumed + overview.Wasted
	if finished > 0 {
		overview.WasteRate = float64(overview.Wasted) / float64(finished)
	}

	return overview, nil
}

func (s *analyticsService) buildDailyTrends(ctx context.Context, userID string, now time.Time) ([]domain.DailyTrend, error) {
	since := now.AddDate(0, 0, -(trendDays - 1))

	added, err := s.analyticsRepository.AddedPerDay(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	consumed, err := s.analyticsRepository.ConsumedPerDay(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	trends := make([]domain.DailyTrend, 0, trendDays)
	for i := 0; i < trendDays; i++ {
		day := since.AddDate(0, 0, i).Format("2006-01-02")
		trends = append(trends, domain.DailyTrend{
			Date:     day,
			Added:    added[day],
			Consumed: consumed[day],
		})
	}

	return trends, nil
}
