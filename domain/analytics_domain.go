package domain

var (
	MessageSuccessGetDashboard = "dashboard statistics retrieved successfully"
	MessageFailedGetDashboard  = "failed to retrieve dashboard statistics"
)

type (
	DashboardOverview struct {
		TotalProducts int64   `json:"total_products"`
		TotalValue    float64 `json:"total_value"`
		ExpiringSoon  int64   `json:"expiring_soon"`
		Expired       int64   `json:"expired"`
		Consumed      int64   `json:"consumed_last_period"`
		Wasted        int64   `json:"wasted_last_period"`
		WasteRate     float64 `json:"waste_rate"`
	}

	CategoryCount struct {
		Category   string  `json:"category"`
		Count      int64   `json:"count"`
		TotalValue float64 `json:"total_value"`
	}

	LocationCount struct {
		Location string `json:"location"`
		Count    int64  `json:"count"`
	}

	StoreCount struct {
		Store      string  `json:"store"`
		Count      int64   `json:"count"`
		TotalSpent float64 `json:"total_spent"`
	}

	DailyTrend struct {
		Date     string `json:"date"`
		Added    int64  `json:"added"`
		Consumed int64  `json:"consumed"`
	}

	DashboardStatsResponse struct {
		Overview             DashboardOverview `json:"overview"`
		CategoryDistribution []CategoryCount   `json:"category_distribution"`
		LocationDistribution []LocationCount   `json:"location_distribution"`
		StoreDistribution    []StoreCount      `json:"store_distribution"`
		DailyTrends          []DailyTrend      `json:"daily_trends"`
		ExpiringProducts     []ProductResponse `json:"expiring_products"`
	}
)
