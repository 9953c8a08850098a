package services

import (
	"gorm.io/gorm"

	"kalavpp_backend/internal/cache"
	"kalavpp_backend/internal/email"
	"kalavpp_backend/internal/repositories"
)

// ServiceContainer wires repositories into the full service layer.
type ServiceContainer struct {
	Auth       AuthService
	User       UserService
	Vendor     VendorService
	Catalog    CatalogService
	Order      OrderService
	Commission CommissionService
	Earnings   EarningsService
	Analytics  AnalyticsService
	Review     ReviewService
	Export     ExportService
}

func NewServiceContainer(db *gorm.DB, c *cache.Cache, sender email.Sender) *ServiceContainer {
	userRepo := repositories.NewUserRepository(db)
	vendorRepo := repositories.NewVendorRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)
	serviceRepo := repositories.NewServiceRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	commissionRepo := repositories.NewCommissionRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	addressRepo := repositories.NewAddressRepository(db)
	analyticsRepo := repositories.NewAnalyticsRepository(db)

	return &ServiceContainer{
		Auth:       NewAuthService(userRepo, vendorRepo),
		User:       NewUserService(userRepo, addressRepo),
		Vendor:     NewVendorService(vendorRepo, sender),
		Catalog:    NewCatalogService(productRepo, serviceRepo, categoryRepo, vendorRepo, c),
		Order:      NewOrderService(orderRepo, productRepo, vendorRepo, userRepo, addressRepo, sender),
		Commission: NewCommissionService(commissionRepo, vendorRepo, serviceRepo, userRepo, sender),
		Earnings:   NewEarningsService(orderRepo, vendorRepo),
		Analytics:  NewAnalyticsService(analyticsRepo, productRepo, serviceRepo, c),
		Review:     NewReviewService(reviewRepo, productRepo, serviceRepo, vendorRepo),
		Export:     NewExportService(orderRepo, commissionRepo, vendorRepo, productRepo),
	}
}
