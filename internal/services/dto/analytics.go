package dto

// AdminDashboard aggregates the read-side metrics for the admin overview.
type AdminDashboard struct {
	Totals     DashboardTotals  `json:"totals"`
	Orders     map[string]int64 `json:"orders_by_status"`
	Users      map[string]int64 `json:"users_by_role"`
	Vendors    map[string]int64 `json:"vendors_by_status"`
	Commission map[string]int64 `json:"commissions_by_status"`
	Products   map[string]int64 `json:"products_by_type"`
	Growth     GrowthMetrics    `json:"growth"`
	Monthly    []MonthlyMetric  `json:"monthly"`
}

type DashboardTotals struct {
	GrossRevenue float64 `json:"gross_revenue"`
	Orders       int64   `json:"orders"`
	Customers    int64   `json:"customers"`
	Vendors      int64   `json:"vendors"`
	Products     int64   `json:"products"`
	Services     int64   `json:"services"`
}

// GrowthMetrics compares the last 30 days with the 30 days before them.
type GrowthMetrics struct {
	OrdersCurrent   int64   `json:"orders_current"`
	OrdersPrevious  int64   `json:"orders_previous"`
	OrdersGrowth    float64 `json:"orders_growth_pct"`
	RevenueCurrent  float64 `json:"revenue_current"`
	RevenuePrevious float64 `json:"revenue_previous"`
	RevenueGrowth   float64 `json:"revenue_growth_pct"`
	SignupsCurrent  int64   `json:"signups_current"`
	SignupsPrevious int64   `json:"signups_previous"`
	SignupsGrowth   float64 `json:"signups_growth_pct"`
}

type MonthlyMetric struct {
	Month   string  `json:"month"`
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
	Signups int64   `json:"signups"`
}
