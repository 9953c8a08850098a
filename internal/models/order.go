package models

type Order struct {
	BaseModel
	UserID         string        `gorm:"not null;index;uniqueIndex:idx_orders_user_idem" json:"user_id"`
	OrderNumber    string        `gorm:"not null;uniqueIndex" json:"order_number"`
	Status         OrderStatus   `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	PaymentStatus  PaymentStatus `gorm:"type:varchar(20);default:'PENDING'" json:"payment_status"`
	PaymentMethod  string        `json:"payment_method"`
	Subtotal       float64       `gorm:"not null" json:"subtotal"`
	ShippingCost   float64       `gorm:"default:0" json:"shipping_cost"`
	Tax            float64       `gorm:"default:0" json:"tax"`
	Total          float64       `gorm:"not null" json:"total"`
	AddressID      *string       `gorm:"index" json:"address_id,omitempty"`
	IdempotencyKey *string       `gorm:"uniqueIndex:idx_orders_user_idem" json:"-"`

	// VendorsCredited guards the one-time totalSales credit on the first
	// transition to PAID.
	VendorsCredited bool `gorm:"default:false" json:"-"`

	// Relations
	User    *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Address *Address    `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	Items   []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// OrderItem is an immutable snapshot of a purchased line. Later edits or
// deletion of the product never change it.
type OrderItem struct {
	BaseModel
	OrderID   string      `gorm:"not null;index" json:"order_id"`
	ProductID string      `gorm:"not null;index" json:"product_id"`
	VendorID  string      `gorm:"not null;index" json:"vendor_id"`
	Title     string      `gorm:"not null" json:"title"`
	Type      ProductType `gorm:"type:varchar(20);not null" json:"type"`
	Price     float64     `gorm:"not null" json:"price"`
	Quantity  int         `gorm:"not null" json:"quantity"`
}
