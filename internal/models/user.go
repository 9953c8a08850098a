package models

import "time"

type User struct {
	BaseModel
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	Name         string   `gorm:"not null" json:"name"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`
	AvatarURL    string   `json:"avatar_url"`
	Bio          string   `json:"bio"`

	// Relations
	VendorProfile *VendorProfile `gorm:"foreignKey:UserID" json:"vendor_profile,omitempty"`
	Addresses     []Address      `gorm:"foreignKey:UserID" json:"addresses,omitempty"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}

type Address struct {
	BaseModel
	UserID     string `gorm:"not null;index" json:"user_id"`
	FullName   string `gorm:"not null" json:"full_name"`
	Phone      string `json:"phone"`
	Street     string `gorm:"not null" json:"street"`
	City       string `gorm:"not null" json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `gorm:"not null" json:"country"`
	IsDefault  bool   `gorm:"default:false" json:"is_default"`
}
