package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"kalavpp_backend/internal/models"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDuplicateCheckout = errors.New("duplicate idempotency key")
)

// EarningLine is one paid order line attributable to a vendor, joined with
// the parent order's creation time for monthly bucketing.
type EarningLine struct {
	OrderID        string    `json:"order_id"`
	OrderNumber    string    `json:"order_number"`
	OrderCreatedAt time.Time `json:"order_created_at"`
	Title          string    `json:"title"`
	Price          float64   `json:"price"`
	Quantity       int       `json:"quantity"`
}

type OrderFilter struct {
	UserID   string
	VendorID string // orders containing at least one item of this vendor
	Status   models.OrderStatus
	Limit    int
	Offset   int
}

type OrderRepository interface {
	// CreateCheckout persists address (when given), order and items, and
	// decrements stock for inventory-tracked products, all in one
	// transaction. Returns ErrInsufficientStock when stock cannot cover
	// a line, ErrDuplicateCheckout when the customer's idempotency key
	// lost a race against a concurrent checkout.
	CreateCheckout(order *models.Order, address *models.Address) error
	FindByID(id string) (*models.Order, error)
	FindByIdempotencyKey(userID, key string) (*models.Order, error)
	FindWithFilter(filter OrderFilter) ([]models.Order, int64, error)
	UpdateStatus(id string, status models.OrderStatus) error
	UpdatePaymentStatus(id string, status models.PaymentStatus) error
	// MarkVendorsCredited flips the credit guard; true means this caller
	// won and should apply the totalSales credit.
	MarkVendorsCredited(id string) (bool, error)
	ContainsVendorItems(orderID, vendorID string) (bool, error)

	// Earnings
	FindPaidLinesByVendor(vendorID string) ([]EarningLine, error)
	CountPaidOrdersByVendor(vendorID string) (int64, error)

	// Maintenance
	CancelStalePending(olderThan time.Time) (int64, error)

	// Export
	FindAllForExport() ([]models.Order, error)
}

type OrderRepositoryImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

func (r *OrderRepositoryImpl) CreateCheckout(order *models.Order, address *models.Address) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if address != nil {
			if err := tx.Create(address).Error; err != nil {
				return err
			}
			order.AddressID = &address.ID
		}

		for i := range order.Items {
			item := &order.Items[i]
			if item.Type != models.ProductTypePhysical && item.Type != models.ProductTypeMerchandise {
				continue
			}
			// Guarded decrement so concurrent checkouts cannot oversell.
			result := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", item.ProductID, item.Quantity).
				Update("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrInsufficientStock
			}
			if err := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity = 0 AND status = ?", item.ProductID, models.ProductStatusActive).
				Update("status", models.ProductStatusSoldOut).Error; err != nil {
				return err
			}
		}

		return tx.Create(order).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) && order.IdempotencyKey != nil {
		return ErrDuplicateCheckout
	}
	return err
}

func (r *OrderRepositoryImpl) FindByID(id string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Preload("User").Preload("Address").
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepositoryImpl) FindByIdempotencyKey(userID, key string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").
		First(&order, "user_id = ? AND idempotency_key = ?", userID, key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepositoryImpl) FindWithFilter(filter OrderFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{})

	if filter.UserID != "" {
		query = query.Where("orders.user_id = ?", filter.UserID)
	}
	if filter.VendorID != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM order_items WHERE order_items.order_id = orders.id AND order_items.vendor_id = ?)",
			filter.VendorID)
	}
	if filter.Status != "" {
		query = query.Where("orders.status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := query.Preload("Items").Preload("User").
		Order("orders.created_at DESC").
		Limit(filter.Limit).Offset(filter.Offset).
		Find(&orders).Error
	return orders, total, err
}

func (r *OrderRepositoryImpl) UpdateStatus(id string, status models.OrderStatus) error {
	result := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepositoryImpl) UpdatePaymentStatus(id string, status models.PaymentStatus) error {
	result := r.db.Model(&models.Order{}).Where("id = ?", id).Update("payment_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepositoryImpl) MarkVendorsCredited(id string) (bool, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND vendors_credited = ?", id, false).
		Update("vendors_credited", true)
	return result.RowsAffected > 0, result.Error
}

func (r *OrderRepositoryImpl) ContainsVendorItems(orderID, vendorID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.OrderItem{}).
		Where("order_id = ? AND vendor_id = ?", orderID, vendorID).
		Count(&count).Error
	return count > 0, err
}

func (r *OrderRepositoryImpl) FindPaidLinesByVendor(vendorID string) ([]EarningLine, error) {
	var lines []EarningLine
	err := r.db.Model(&models.OrderItem{}).
		Select("order_items.order_id, orders.order_number, orders.created_at AS order_created_at, order_items.title, order_items.price, order_items.quantity").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.vendor_id = ? AND orders.payment_status = ?", vendorID, models.PaymentStatusPaid).
		Order("orders.created_at DESC").
		Scan(&lines).Error
	return lines, err
}

func (r *OrderRepositoryImpl) CountPaidOrdersByVendor(vendorID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).
		Where("payment_status = ?", models.PaymentStatusPaid).
		Where("EXISTS (SELECT 1 FROM order_items WHERE order_items.order_id = orders.id AND order_items.vendor_id = ?)", vendorID).
		Count(&count).Error
	return count, err
}

func (r *OrderRepositoryImpl) CancelStalePending(olderThan time.Time) (int64, error) {
	result := r.db.Model(&models.Order{}).
		Where("status = ? AND payment_status = ? AND created_at < ?",
			models.OrderStatusPending, models.PaymentStatusPending, olderThan).
		Update("status", models.OrderStatusCancelled)
	return result.RowsAffected, result.Error
}

func (r *OrderRepositoryImpl) FindAllForExport() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Preload("User").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}
