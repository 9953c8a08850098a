package services

import (
	"context"
	"time"

	"kalavpp_backend/internal/cache"
	"kalavpp_backend/internal/logger"
	"kalavpp_backend/internal/models"
	"kalavpp_backend/internal/repositories"
	"kalavpp_backend/internal/services/dto"
	"kalavpp_backend/pkg/apperrors"
)

const (
	analyticsCacheKey = "admin:analytics:overview"
	analyticsCacheTTL = 60 * time.Second
	monthlySeriesLen  = 6
	growthWindow      = 30 * 24 * time.Hour
)

type AnalyticsService interface {
	GetAdminDashboard(ctx context.Context) (*dto.AdminDashboard, error)
}

type analyticsService struct {
	analyticsRepo repositories.AnalyticsRepository
	productRepo   repositories.ProductRepository
	serviceRepo   repositories.ServiceRepository
	cache         *cache.Cache
}

func NewAnalyticsService(
	analyticsRepo repositories.AnalyticsRepository,
	productRepo repositories.ProductRepository,
	serviceRepo repositories.ServiceRepository,
	c *cache.Cache,
) AnalyticsService {
	return &analyticsService{
		analyticsRepo: analyticsRepo,
		productRepo:   productRepo,
		serviceRepo:   serviceRepo,
		cache:         c,
	}
}

func (s *analyticsService) GetAdminDashboard(ctx context.Context) (*dto.AdminDashboard, error) {
	var cached dto.AdminDashboard
	if hit, err := s.cache.Get(ctx, analyticsCacheKey, &cached); err == nil && hit {
		return &cached, nil
	} else if err != nil {
		logger.WithError(err).Warn("analytics cache read failed")
	}

	dashboard, err := s.buildDashboard()
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, analyticsCacheKey, dashboard, analyticsCacheTTL); err != nil {
		logger.WithError(err).Warn("analytics cache write failed")
	}
	return dashboard, nil
}

func (s *analyticsService) buildDashboard() (*dto.AdminDashboard, error) {
	ordersByStatus, err := s.analyticsRepo.CountOrdersByStatus()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	usersByRole, err := s.analyticsRepo.CountUsersByRole()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	vendorsByStatus, err := s.analyticsRepo.CountVendorsByStatus()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	commissionsByStatus, err := s.analyticsRepo.CountCommissionsByStatus()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	productsByType, err := s.analyticsRepo.CountProductsByType()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	grossRevenue, err := s.analyticsRepo.SumRevenueAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	productCount, err := s.productRepo.CountAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	serviceCount, err := s.serviceRepo.CountAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	growth, err := s.computeGrowth()
	if err != nil {
		return nil, err
	}

	series, err := s.analyticsRepo.MonthlySeries(monthlySeriesLen)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	monthly := make([]dto.MonthlyMetric, 0, len(series))
	for _, b := range series {
		monthly = append(monthly, dto.MonthlyMetric{
			Month:   b.Month,
			Orders:  b.Orders,
			Revenue: b.Revenue,
			Signups: b.Signups,
		})
	}

	var totalOrders int64
	for _, n := range ordersByStatus {
		totalOrders += n
	}
	var totalVendors int64
	for _, n := range vendorsByStatus {
		totalVendors += n
	}

	return &dto.AdminDashboard{
		Totals: dto.DashboardTotals{
			GrossRevenue: grossRevenue,
			Orders:       totalOrders,
			Customers:    usersByRole[models.UserRoleCustomer],
			Vendors:      totalVendors,
			Products:     productCount,
			Services:     serviceCount,
		},
		Orders:     orderStatusMap(ordersByStatus),
		Users:      userRoleMap(usersByRole),
		Vendors:    vendorStatusMap(vendorsByStatus),
		Commission: commissionStatusMap(commissionsByStatus),
		Products:   productTypeMap(productsByType),
		Growth:     growth,
		Monthly:    monthly,
	}, nil
}

// computeGrowth compares the last 30 days with the 30 days before them.
func (s *analyticsService) computeGrowth() (dto.GrowthMetrics, error) {
	now := time.Now().UTC()
	currentStart := now.Add(-growthWindow)
	previousStart := now.Add(-2 * growthWindow)

	ordersCur, err := s.analyticsRepo.CountOrdersBetween(currentStart, now)
	if err != nil {
		return dto.GrowthMetrics{}, apperrors.InternalError(err)
	}
	ordersPrev, err := s.analyticsRepo.CountOrdersBetween(previousStart, currentStart)
	if err != nil {
		return dto.GrowthMetrics{}, apperrors.InternalError(err)
	}
	revenueCur, err := s.analyticsRepo.SumRevenueBetween(currentStart, now)
	if err != nil {
		return dto.GrowthMetrics{}, apperrors.InternalError(err)
	}
	revenuePrev, err := s.analyticsRepo.SumRevenueBetween(previousStart, currentStart)
	if err != nil {
		return dto.GrowthMetrics{}, apperrors.InternalError(err)
	}
	signupsCur, err := s.analyticsRepo.CountSignupsBetween(currentStart, now)
	if err != nil {
		return dto.GrowthMetrics{}, apperrors.InternalError(err)
	}
	signupsPrev, err := s.analyticsRepo.CountSignupsBetween(previousStart, currentStart)
	if err != nil {
		return dto.GrowthMetrics{}, apperrors.InternalError(err)
	}

	return dto.GrowthMetrics{
		OrdersCurrent:   ordersCur,
		OrdersPrevious:  ordersPrev,
		OrdersGrowth:    growthPercent(float64(ordersCur), float64(ordersPrev)),
		RevenueCurrent:  revenueCur,
		RevenuePrevious: revenuePrev,
		RevenueGrowth:   growthPercent(revenueCur, revenuePrev),
		SignupsCurrent:  signupsCur,
		SignupsPrevious: signupsPrev,
		SignupsGrowth:   growthPercent(float64(signupsCur), float64(signupsPrev)),
	}, nil
}

// growthPercent returns the relative change in percent. With no previous
// activity it reports 100 when there is any current activity, else 0.
func growthPercent(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return roundCents((current - previous) / previous * 100)
}

func orderStatusMap(in map[models.OrderStatus]int64) map[string]int64 {
	out := make(map[string]int64, len(in))
	for k, v := range in {
		out[string(k)] = v
	}
	return out
}

func userRoleMap(in map[models.UserRole]int64) map[string]int64 {
	out := make(map[string]int64, len(in))
	for k, v := range in {
		out[string(k)] = v
	}
	return out
}

func vendorStatusMap(in map[models.VendorStatus]int64) map[string]int64 {
	out := make(map[string]int64, len(in))
	for k, v := range in {
		out[string(k)] = v
	}
	return out
}

func commissionStatusMap(in map[models.CommissionStatus]int64) map[string]int64 {
	out := make(map[string]int64, len(in))
	for k, v := range in {
		out[string(k)] = v
	}
	return out
}

func productTypeMap(in map[models.ProductType]int64) map[string]int64 {
	out := make(map[string]int64, len(in))
	for k, v := range in {
		out[string(k)] = v
	}
	return out
}
