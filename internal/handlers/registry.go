package handlers

import (
	"kalavpp_backend/internal/services"
	"kalavpp_backend/internal/validator"
)

// AppHandlers holds every HTTP handler group.
type AppHandlers struct {
	Auth       *AuthHandler
	Catalog    *CatalogHandler
	Order      *OrderHandler
	Address    *AddressHandler
	Commission *CommissionHandler
	Vendor     *VendorHandler
	Review     *ReviewHandler
	Admin      *AdminHandler
}

func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Auth:       NewAuthHandler(base, sc.Auth),
		Catalog:    NewCatalogHandler(base, sc.Catalog),
		Order:      NewOrderHandler(base, sc.Order),
		Address:    NewAddressHandler(base, sc.User),
		Commission: NewCommissionHandler(base, sc.Commission),
		Vendor:     NewVendorHandler(base, sc.Vendor, sc.Earnings),
		Review:     NewReviewHandler(base, sc.Review),
		Admin:      NewAdminHandler(base, sc.User, sc.Vendor, sc.Catalog, sc.Analytics, sc.Export),
	}
}
