package models

// Review targets exactly one of a product or a service.
type Review struct {
	BaseModel
	UserID     string  `gorm:"not null;index" json:"user_id"`
	ProductID  *string `gorm:"index" json:"product_id,omitempty"`
	ServiceID  *string `gorm:"index" json:"service_id,omitempty"`
	Rating     int     `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment    string  `json:"comment"`
	IsVerified bool    `gorm:"default:false" json:"is_verified"`

	// Relations
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}
