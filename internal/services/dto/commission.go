package dto

import "time"

type CreateCommissionRequest struct {
	VendorID        string     `json:"vendor_id" validate:"required"`
	ServiceID       *string    `json:"service_id,omitempty"`
	Title           string     `json:"title" validate:"required,min=2,max=200"`
	Brief           string     `json:"brief" validate:"omitempty,max=10000"`
	Budget          float64    `json:"budget" validate:"required,gt=0"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	ReferenceImages []string   `json:"reference_images,omitempty" validate:"omitempty,max=10"`
}

type CommissionTransitionRequest struct {
	Status string `json:"status" validate:"required,oneof=ACCEPTED IN_PROGRESS REVISION_REQUESTED COMPLETED DELIVERED CANCELLED"`
}

type CommissionResponse struct {
	ID              string     `json:"id"`
	CustomerID      string     `json:"customer_id"`
	VendorID        string     `json:"vendor_id"`
	ServiceID       *string    `json:"service_id,omitempty"`
	Title           string     `json:"title"`
	Brief           string     `json:"brief,omitempty"`
	Budget          float64    `json:"budget"`
	Status          string     `json:"status"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	CurrentRevision int        `json:"current_revision"`
	MaxRevisions    int        `json:"max_revisions"`
	CreatedAt       time.Time  `json:"created_at"`
}
