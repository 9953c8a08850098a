package models

import (
	"time"

	"gorm.io/datatypes"
)

// Commission is a bespoke work request from a customer to a vendor,
// optionally anchored to one of the vendor's listed services.
type Commission struct {
	BaseModel
	CustomerID      string           `gorm:"not null;index" json:"customer_id"`
	VendorID        string           `gorm:"not null;index" json:"vendor_id"`
	ServiceID       *string          `gorm:"index" json:"service_id,omitempty"`
	Title           string           `gorm:"not null" json:"title"`
	Brief           string           `json:"brief"`
	Budget          float64          `gorm:"not null" json:"budget"`
	Status          CommissionStatus `gorm:"type:varchar(20);default:'REQUESTED'" json:"status"`
	Deadline        *time.Time       `json:"deadline,omitempty"`
	CurrentRevision int              `gorm:"default:0" json:"current_revision"`
	MaxRevisions    int              `gorm:"default:2" json:"max_revisions"`
	ReferenceImages datatypes.JSON   `json:"reference_images,omitempty"`

	// Relations
	Customer *User          `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Vendor   *VendorProfile `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	Service  *Service       `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}
