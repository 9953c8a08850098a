package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kalavpp_backend/internal/repositories"
)

func TestComputeEarningsSingleLine(t *testing.T) {
	lines := []repositories.EarningLine{
		{OrderNumber: "KAL-1", Title: "Clay bust", Price: 1000, Quantity: 2,
			OrderCreatedAt: time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)},
	}

	summary := computeEarnings(lines, 0.15)

	assert.Equal(t, 2000.0, summary.TotalRevenue)
	assert.Equal(t, 300.0, summary.PlatformFee)
	assert.Equal(t, 1700.0, summary.NetEarnings)

	assert.Len(t, summary.Monthly, 1)
	assert.Equal(t, "2026-03", summary.Monthly[0].Month)
	assert.Equal(t, 2000.0, summary.Monthly[0].Revenue)
	assert.Equal(t, 300.0, summary.Monthly[0].PlatformFee)
	assert.Equal(t, 1700.0, summary.Monthly[0].NetEarnings)

	assert.Len(t, summary.Recent, 1)
	assert.Equal(t, "KAL-1", summary.Recent[0].OrderNumber)
}

func TestComputeEarningsNetEqualsRevenueMinusFee(t *testing.T) {
	lines := []repositories.EarningLine{
		{Price: 33.33, Quantity: 3, OrderCreatedAt: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
		{Price: 120.50, Quantity: 1, OrderCreatedAt: time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)},
		{Price: 9.99, Quantity: 7, OrderCreatedAt: time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)},
	}

	summary := computeEarnings(lines, 0.15)

	for _, bucket := range summary.Monthly {
		assert.InDelta(t, bucket.Revenue-bucket.PlatformFee, bucket.NetEarnings, 0.011,
			"month %s", bucket.Month)
	}
	assert.InDelta(t, summary.TotalRevenue-summary.PlatformFee, summary.NetEarnings, 0.011)

	var monthlyRevenue float64
	for _, bucket := range summary.Monthly {
		monthlyRevenue += bucket.Revenue
	}
	assert.InDelta(t, summary.TotalRevenue, monthlyRevenue, 0.001)
}

func TestComputeEarningsMonthBuckets(t *testing.T) {
	lines := []repositories.EarningLine{
		{Price: 10, Quantity: 1, OrderCreatedAt: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)},
		{Price: 20, Quantity: 1, OrderCreatedAt: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{Price: 30, Quantity: 1, OrderCreatedAt: time.Date(2026, 4, 28, 0, 0, 0, 0, time.UTC)},
	}

	summary := computeEarnings(lines, 0.15)

	assert.Len(t, summary.Monthly, 2)
	// Newest month first.
	assert.Equal(t, "2026-04", summary.Monthly[0].Month)
	assert.Equal(t, 40.0, summary.Monthly[0].Revenue)
	assert.Equal(t, "2026-03", summary.Monthly[1].Month)
	assert.Equal(t, 20.0, summary.Monthly[1].Revenue)
}

func TestComputeEarningsRecentCapped(t *testing.T) {
	lines := make([]repositories.EarningLine, 25)
	for i := range lines {
		lines[i] = repositories.EarningLine{
			Price: 10, Quantity: 1,
			OrderCreatedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		}
	}

	summary := computeEarnings(lines, 0.15)
	assert.Len(t, summary.Recent, recentTransactionLimit)
	assert.Equal(t, 250.0, summary.TotalRevenue)
}

func TestComputeEarningsEmpty(t *testing.T) {
	summary := computeEarnings(nil, 0.15)

	assert.Equal(t, 0.0, summary.TotalRevenue)
	assert.Equal(t, 0.15, summary.CommissionRate)
	assert.Empty(t, summary.Monthly)
	assert.Empty(t, summary.Recent)
}
