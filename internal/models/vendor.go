package models

type VendorProfile struct {
	BaseModel
	UserID      string       `gorm:"not null;uniqueIndex" json:"user_id"`
	StoreName   string       `gorm:"not null" json:"store_name"`
	StoreSlug   string       `gorm:"not null;uniqueIndex" json:"store_slug"`
	Description string       `json:"description"`
	LogoURL     string       `json:"logo_url"`
	Status      VendorStatus `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	Rating      float64      `gorm:"default:0" json:"rating"`
	TotalSales  int64        `gorm:"default:0" json:"total_sales"`

	// Relations
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Products []Product `gorm:"foreignKey:VendorID" json:"products,omitempty"`
	Services []Service `gorm:"foreignKey:VendorID" json:"services,omitempty"`
}
