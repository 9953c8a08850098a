package dto

import "time"

type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type CreateAddressRequest struct {
	FullName   string `json:"full_name" validate:"required,min=2,max=200"`
	Phone      string `json:"phone" validate:"omitempty,max=30"`
	Street     string `json:"street" validate:"required,max=300"`
	City       string `json:"city" validate:"required,max=100"`
	State      string `json:"state" validate:"omitempty,max=100"`
	PostalCode string `json:"postal_code" validate:"omitempty,max=20"`
	Country    string `json:"country" validate:"required,max=100"`
	IsDefault  bool   `json:"is_default"`
}

type UpdateAddressRequest struct {
	FullName   *string `json:"full_name,omitempty" validate:"omitempty,min=2,max=200"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Street     *string `json:"street,omitempty" validate:"omitempty,max=300"`
	City       *string `json:"city,omitempty" validate:"omitempty,max=100"`
	State      *string `json:"state,omitempty" validate:"omitempty,max=100"`
	PostalCode *string `json:"postal_code,omitempty" validate:"omitempty,max=20"`
	Country    *string `json:"country,omitempty" validate:"omitempty,max=100"`
}

// CreateOrderRequest carries cart contents. Monetary totals are recomputed
// server-side from canonical product prices; client-sent figures are ignored.
type CreateOrderRequest struct {
	Items         []OrderItemRequest    `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string                `json:"payment_method" validate:"required,oneof=CARD PAYPAL BANK_TRANSFER CASH_ON_DELIVERY"`
	AddressID     *string               `json:"address_id,omitempty"`
	Address       *CreateAddressRequest `json:"address,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status        string `json:"status" validate:"omitempty,oneof=PENDING CONFIRMED PROCESSING SHIPPED DELIVERED CANCELLED REFUNDED"`
	PaymentStatus string `json:"payment_status" validate:"omitempty,oneof=PENDING PAID FAILED REFUNDED"`
}

type OrderItemResponse struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	VendorID  string  `json:"vendor_id"`
	Title     string  `json:"title"`
	Type      string  `json:"type"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	OrderNumber   string              `json:"order_number"`
	UserID        string              `json:"user_id"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"payment_status"`
	PaymentMethod string              `json:"payment_method"`
	Subtotal      float64             `json:"subtotal"`
	ShippingCost  float64             `json:"shipping_cost"`
	Tax           float64             `json:"tax"`
	Total         float64             `json:"total"`
	AddressID     *string             `json:"address_id,omitempty"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
}
