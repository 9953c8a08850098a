package dto

import "time"

type VendorProfileResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	StoreName   string    `json:"store_name"`
	StoreSlug   string    `json:"store_slug"`
	Description string    `json:"description,omitempty"`
	LogoURL     string    `json:"logo_url,omitempty"`
	Status      string    `json:"status"`
	Rating      float64   `json:"rating"`
	TotalSales  int64     `json:"total_sales"`
	CreatedAt   time.Time `json:"created_at"`
}

type UpdateVendorProfileRequest struct {
	StoreName   *string `json:"store_name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	LogoURL     *string `json:"logo_url,omitempty" validate:"omitempty,url"`
}

type VendorModerationRequest struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED SUSPENDED"`
}
