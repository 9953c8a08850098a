package models

// Service is a bespoke creative offering listed by a vendor, purchased
// through commissions rather than the cart.
type Service struct {
	BaseModel
	VendorID     string      `gorm:"not null;index" json:"vendor_id"`
	Title        string      `gorm:"not null" json:"title"`
	Description  string      `json:"description"`
	Type         ServiceType `gorm:"type:varchar(20);not null" json:"type"`
	BasePrice    float64     `gorm:"not null" json:"base_price"`
	DeliveryDays int         `gorm:"default:7" json:"delivery_days"`
	MaxRevisions int         `gorm:"default:2" json:"max_revisions"`
	ImageURL     string      `json:"image_url"`
	IsActive     bool        `gorm:"default:true" json:"is_active"`

	// Relations
	Vendor *VendorProfile `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
}
