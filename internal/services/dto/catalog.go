package dto

import "time"

// BrowseProductsQuery holds the public catalog query parameters.
type BrowseProductsQuery struct {
	Category string `form:"category"`
	Type     string `form:"type" validate:"omitempty,product-type"`
	Query    string `form:"q" validate:"omitempty,max=200"`
	Featured *bool  `form:"featured"`
	Sort     string `form:"sort" validate:"omitempty,oneof=newest price_asc price_desc title"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	Limit    int    `form:"limit" validate:"omitempty,min=1,max=100"`
}

type BrowseServicesQuery struct {
	Type  string `form:"type" validate:"omitempty,service-type"`
	Query string `form:"q" validate:"omitempty,max=200"`
	Sort  string `form:"sort" validate:"omitempty,oneof=newest price_asc price_desc"`
	Page  int    `form:"page" validate:"omitempty,min=1"`
	Limit int    `form:"limit" validate:"omitempty,min=1,max=100"`
}

type ProductResponse struct {
	ID            string                 `json:"id"`
	VendorID      string                 `json:"vendor_id"`
	Vendor        *VendorProfileResponse `json:"vendor,omitempty"`
	CategoryID    *string                `json:"category_id,omitempty"`
	Category      *CategoryResponse      `json:"category,omitempty"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description,omitempty"`
	Type          string                 `json:"type"`
	Status        string                 `json:"status"`
	Price         float64                `json:"price"`
	StockQuantity int                    `json:"stock_quantity"`
	ImageURL      string                 `json:"image_url,omitempty"`
	Tags          []string               `json:"tags,omitempty"`
	IsFeatured    bool                   `json:"is_featured"`
	CreatedAt     time.Time              `json:"created_at"`
}

type ServiceResponse struct {
	ID           string                 `json:"id"`
	VendorID     string                 `json:"vendor_id"`
	Vendor       *VendorProfileResponse `json:"vendor,omitempty"`
	Title        string                 `json:"title"`
	Description  string                 `json:"description,omitempty"`
	Type         string                 `json:"type"`
	BasePrice    float64                `json:"base_price"`
	DeliveryDays int                    `json:"delivery_days"`
	MaxRevisions int                    `json:"max_revisions"`
	ImageURL     string                 `json:"image_url,omitempty"`
	IsActive     bool                   `json:"is_active"`
	CreatedAt    time.Time              `json:"created_at"`
}

type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

type CreateProductRequest struct {
	Title         string   `json:"title" validate:"required,min=2,max=200"`
	Description   string   `json:"description" validate:"omitempty,max=10000"`
	Type          string   `json:"type" validate:"required,product-type"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	StockQuantity int      `json:"stock_quantity" validate:"omitempty,min=0"`
	CategoryID    *string  `json:"category_id,omitempty"`
	ImageURL      string   `json:"image_url" validate:"omitempty,url"`
	Tags          []string `json:"tags,omitempty" validate:"omitempty,max=10"`
}

type UpdateProductRequest struct {
	Title         *string  `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Description   *string  `json:"description,omitempty" validate:"omitempty,max=10000"`
	Price         *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	StockQuantity *int     `json:"stock_quantity,omitempty" validate:"omitempty,min=0"`
	Status        *string  `json:"status,omitempty" validate:"omitempty,oneof=DRAFT ACTIVE SOLD_OUT ARCHIVED"`
	CategoryID    *string  `json:"category_id,omitempty"`
	ImageURL      *string  `json:"image_url,omitempty" validate:"omitempty,url"`
	Tags          []string `json:"tags,omitempty" validate:"omitempty,max=10"`
	IsFeatured    *bool    `json:"is_featured,omitempty"`
}

type CreateServiceRequest struct {
	Title        string  `json:"title" validate:"required,min=2,max=200"`
	Description  string  `json:"description" validate:"omitempty,max=10000"`
	Type         string  `json:"type" validate:"required,service-type"`
	BasePrice    float64 `json:"base_price" validate:"required,gt=0"`
	DeliveryDays int     `json:"delivery_days" validate:"omitempty,min=1,max=365"`
	MaxRevisions int     `json:"max_revisions" validate:"omitempty,min=0,max=10"`
	ImageURL     string  `json:"image_url" validate:"omitempty,url"`
}

type UpdateServiceRequest struct {
	Title        *string  `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Description  *string  `json:"description,omitempty" validate:"omitempty,max=10000"`
	BasePrice    *float64 `json:"base_price,omitempty" validate:"omitempty,gt=0"`
	DeliveryDays *int     `json:"delivery_days,omitempty" validate:"omitempty,min=1,max=365"`
	MaxRevisions *int     `json:"max_revisions,omitempty" validate:"omitempty,min=0,max=10"`
	ImageURL     *string  `json:"image_url,omitempty" validate:"omitempty,url"`
	IsActive     *bool    `json:"is_active,omitempty"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Slug        string `json:"slug" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}
