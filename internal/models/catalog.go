package models

import "gorm.io/datatypes"

type Category struct {
	BaseModel
	Name        string `gorm:"not null" json:"name"`
	Slug        string `gorm:"not null;uniqueIndex" json:"slug"`
	Description string `json:"description"`
}

type Product struct {
	BaseModel
	VendorID      string         `gorm:"not null;index" json:"vendor_id"`
	CategoryID    *string        `gorm:"index" json:"category_id,omitempty"`
	Title         string         `gorm:"not null" json:"title"`
	Description   string         `json:"description"`
	Type          ProductType    `gorm:"type:varchar(20);not null" json:"type"`
	Status        ProductStatus  `gorm:"type:varchar(20);default:'DRAFT'" json:"status"`
	Price         float64        `gorm:"not null" json:"price"`
	StockQuantity int            `gorm:"default:0" json:"stock_quantity"`
	ImageURL      string         `json:"image_url"`
	Tags          datatypes.JSON `json:"tags,omitempty"`
	IsFeatured    bool           `gorm:"default:false" json:"is_featured"`

	// Relations
	Vendor   *VendorProfile `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	Category *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// IsStocked reports whether the product type tracks inventory.
// Digital goods are never depleted.
func (p *Product) IsStocked() bool {
	return p.Type == ProductTypePhysical || p.Type == ProductTypeMerchandise
}
