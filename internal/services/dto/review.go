package dto

import "time"

type CreateReviewRequest struct {
	ProductID *string `json:"product_id,omitempty"`
	ServiceID *string `json:"service_id,omitempty"`
	Rating    int     `json:"rating" validate:"required,min=1,max=5"`
	Comment   string  `json:"comment" validate:"omitempty,max=2000"`
}

type ReviewResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name,omitempty"`
	ProductID  *string   `json:"product_id,omitempty"`
	ServiceID  *string   `json:"service_id,omitempty"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}
