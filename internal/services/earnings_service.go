package services

import (
	"sort"

	"kalavpp_backend/internal/config"
	"kalavpp_backend/internal/repositories"
	"kalavpp_backend/internal/services/dto"
	"kalavpp_backend/pkg/apperrors"
)

const recentTransactionLimit = 10

type EarningsService interface {
	GetVendorEarnings(vendorUserID string) (*dto.EarningsSummary, error)
}

type earningsService struct {
	orderRepo  repositories.OrderRepository
	vendorRepo repositories.VendorRepository
}

func NewEarningsService(orderRepo repositories.OrderRepository, vendorRepo repositories.VendorRepository) EarningsService {
	return &earningsService{orderRepo: orderRepo, vendorRepo: vendorRepo}
}

func (s *earningsService) GetVendorEarnings(vendorUserID string) (*dto.EarningsSummary, error) {
	profile, err := s.vendorRepo.FindByUserID(vendorUserID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("vendor", "Vendor profile not found")
	}

	lines, err := s.orderRepo.FindPaidLinesByVendor(profile.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	orderCount, err := s.orderRepo.CountPaidOrdersByVendor(profile.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	summary := computeEarnings(lines, config.GetConfig().Platform.CommissionRate)
	summary.TotalOrders = orderCount
	return summary, nil
}

// computeEarnings folds paid order lines into the vendor payout view.
// Per line: revenue = price*qty, fee = revenue*rate, net = revenue-fee.
// Lines are expected newest-first; the recent list keeps that order.
func computeEarnings(lines []repositories.EarningLine, rate float64) *dto.EarningsSummary {
	summary := &dto.EarningsSummary{
		CommissionRate: rate,
		Monthly:        []dto.MonthlyEarnings{},
		Recent:         []dto.EarningTransaction{},
	}

	byMonth := make(map[string]*dto.MonthlyEarnings)
	for _, line := range lines {
		revenue := roundCents(line.Price * float64(line.Quantity))
		fee := roundCents(revenue * rate)
		net := roundCents(revenue - fee)

		summary.TotalRevenue = roundCents(summary.TotalRevenue + revenue)
		summary.PlatformFee = roundCents(summary.PlatformFee + fee)
		summary.NetEarnings = roundCents(summary.NetEarnings + net)

		month := line.OrderCreatedAt.Format("2006-01")
		bucket, ok := byMonth[month]
		if !ok {
			bucket = &dto.MonthlyEarnings{Month: month}
			byMonth[month] = bucket
		}
		bucket.Revenue = roundCents(bucket.Revenue + revenue)
		bucket.PlatformFee = roundCents(bucket.PlatformFee + fee)
		bucket.NetEarnings = roundCents(bucket.NetEarnings + net)

		if len(summary.Recent) < recentTransactionLimit {
			summary.Recent = append(summary.Recent, dto.EarningTransaction{
				OrderNumber: line.OrderNumber,
				Title:       line.Title,
				Revenue:     revenue,
				PlatformFee: fee,
				NetEarnings: net,
				OccurredAt:  line.OrderCreatedAt,
			})
		}
	}

	for _, bucket := range byMonth {
		summary.Monthly = append(summary.Monthly, *bucket)
	}
	sort.Slice(summary.Monthly, func(i, j int) bool {
		return summary.Monthly[i].Month > summary.Monthly[j].Month
	})

	return summary
}
