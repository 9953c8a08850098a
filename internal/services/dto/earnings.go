package dto

import "time"

// EarningsSummary is the vendor payout view: running totals, calendar-month
// buckets and the most recent individual transactions.
type EarningsSummary struct {
	TotalRevenue   float64              `json:"total_revenue"`
	PlatformFee    float64              `json:"platform_fee"`
	NetEarnings    float64              `json:"net_earnings"`
	TotalOrders    int64                `json:"total_orders"`
	CommissionRate float64              `json:"commission_rate"`
	Monthly        []MonthlyEarnings    `json:"monthly"`
	Recent         []EarningTransaction `json:"recent_transactions"`
}

type MonthlyEarnings struct {
	Month       string  `json:"month"` // YYYY-MM
	Revenue     float64 `json:"revenue"`
	PlatformFee float64 `json:"platform_fee"`
	NetEarnings float64 `json:"net_earnings"`
}

type EarningTransaction struct {
	OrderNumber string    `json:"order_number"`
	Title       string    `json:"title"`
	Revenue     float64   `json:"revenue"`
	PlatformFee float64   `json:"platform_fee"`
	NetEarnings float64   `json:"net_earnings"`
	OccurredAt  time.Time `json:"occurred_at"`
}
