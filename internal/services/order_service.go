package services

import (
	"crypto/rand"
	"encoding/hex"
	"math"
	"strconv"
	"strings"
	"time"

	"kalavpp_backend/internal/config"
	"kalavpp_backend/internal/email"
	"kalavpp_backend/internal/logger"
	"kalavpp_backend/internal/models"
	"kalavpp_backend/internal/repositories"
	"kalavpp_backend/internal/services/dto"
	"kalavpp_backend/pkg/apperrors"
)

type OrderService interface {
	Checkout(userID string, idempotencyKey string, req *dto.CreateOrderRequest) (*dto.OrderResponse, error)
	GetOrder(actorID string, role models.UserRole, orderID string) (*dto.OrderResponse, error)
	ListOrders(actorID string, role models.UserRole, status string, page, limit int) (*dto.PaginatedResponse, error)
	UpdateStatus(actorID string, role models.UserRole, orderID string, req *dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error)
}

type orderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	vendorRepo  repositories.VendorRepository
	userRepo    repositories.UserRepository
	addressRepo repositories.AddressRepository
	sender      email.Sender
}

func NewOrderService(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	vendorRepo repositories.VendorRepository,
	userRepo repositories.UserRepository,
	addressRepo repositories.AddressRepository,
	sender email.Sender,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		vendorRepo:  vendorRepo,
		userRepo:    userRepo,
		addressRepo: addressRepo,
		sender:      sender,
	}
}

// Checkout builds an order from the cart. Prices and totals come from the
// canonical product rows, never from the request. With an Idempotency-Key
// header, a replay returns the previously created order.
func (s *orderService) Checkout(userID string, idempotencyKey string, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if idempotencyKey != "" {
		existing, err := s.orderRepo.FindByIdempotencyKey(userID, idempotencyKey)
		switch {
		case err == nil:
			return buildOrderResponse(existing), nil
		case err != repositories.ErrOrderNotFound:
			return nil, apperrors.InternalError(err)
		}
	}

	ids := make([]string, 0, len(req.Items))
	quantities := make(map[string]int, len(req.Items))
	for _, item := range req.Items {
		if quantities[item.ProductID] > 0 {
			return nil, apperrors.NewBadRequestError("Duplicate product in cart: " + item.ProductID)
		}
		ids = append(ids, item.ProductID)
		quantities[item.ProductID] = item.Quantity
	}

	products, err := s.productRepo.FindByIDs(ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(products) != len(ids) {
		return nil, apperrors.NewNotFoundError("order", "One or more products do not exist")
	}

	cfg := config.GetConfig()
	items := make([]models.OrderItem, 0, len(products))
	hasPhysical := false
	for i := range products {
		p := &products[i]
		if p.Status != models.ProductStatusActive {
			return nil, apperrors.NewConflictError("order", "Product is not available for purchase: "+p.Title)
		}
		qty := quantities[p.ID]
		if p.IsStocked() {
			hasPhysical = true
			if p.StockQuantity < qty {
				return nil, apperrors.NewOutOfStockError(p.Title)
			}
		}
		items = append(items, models.OrderItem{
			ProductID: p.ID,
			VendorID:  p.VendorID,
			Title:     p.Title,
			Type:      p.Type,
			Price:     p.Price,
			Quantity:  qty,
		})
	}

	var shipping float64
	if hasPhysical {
		shipping = cfg.Platform.FlatShippingCost
	}
	subtotal, tax, total := computeOrderTotals(items, cfg.Platform.TaxRate, shipping)

	order := &models.Order{
		UserID:        userID,
		OrderNumber:   generateOrderNumber(cfg.Platform.OrderNumberPrefix),
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		PaymentMethod: req.PaymentMethod,
		Subtotal:      subtotal,
		ShippingCost:  shipping,
		Tax:           tax,
		Total:         total,
		Items:         items,
	}
	if idempotencyKey != "" {
		order.IdempotencyKey = &idempotencyKey
	}

	var address *models.Address
	switch {
	case req.AddressID != nil:
		existing, err := s.addressRepo.FindByID(*req.AddressID)
		if err != nil || existing.UserID != userID {
			return nil, apperrors.NewNotFoundError("order", "Shipping address not found")
		}
		order.AddressID = req.AddressID
	case req.Address != nil:
		address = &models.Address{
			UserID:     userID,
			FullName:   req.Address.FullName,
			Phone:      req.Address.Phone,
			Street:     req.Address.Street,
			City:       req.Address.City,
			State:      req.Address.State,
			PostalCode: req.Address.PostalCode,
			Country:    req.Address.Country,
			IsDefault:  req.Address.IsDefault,
		}
	case hasPhysical:
		return nil, apperrors.NewBadRequestError("A shipping address is required for physical items")
	}

	if err := s.orderRepo.CreateCheckout(order, address); err != nil {
		switch err {
		case repositories.ErrInsufficientStock:
			return nil, apperrors.NewOutOfStockError("")
		case repositories.ErrDuplicateCheckout:
			// Lost a race against a concurrent request with the same key;
			// the winner's order is the canonical one.
			if existing, ferr := s.orderRepo.FindByIdempotencyKey(userID, idempotencyKey); ferr == nil {
				return buildOrderResponse(existing), nil
			}
			return nil, apperrors.InternalError(err)
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	if user, err := s.userRepo.FindByID(userID); err == nil {
		// Fire and forget: SMTP latency must not hold up the checkout response.
		go func(to, number string, total float64) {
			if err := s.sender.SendOrderConfirmation(to, number, total); err != nil {
				logger.WithError(err).Warn("order confirmation email failed", "order_number", number)
			}
		}(user.Email, order.OrderNumber, order.Total)
	}

	return buildOrderResponse(order), nil
}

func (s *orderService) GetOrder(actorID string, role models.UserRole, orderID string) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if err == repositories.ErrOrderNotFound {
			return nil, apperrors.NewNotFoundError("order", "Order not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.authorizeOrderAccess(actorID, role, order); err != nil {
		return nil, err
	}
	return buildOrderResponse(order), nil
}

func (s *orderService) ListOrders(actorID string, role models.UserRole, status string, page, limit int) (*dto.PaginatedResponse, error) {
	filter := repositories.OrderFilter{
		Status: models.OrderStatus(status),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	switch role {
	case models.UserRoleAdmin:
		// unrestricted
	case models.UserRoleVendor:
		profile, err := s.vendorRepo.FindByUserID(actorID)
		if err != nil {
			return nil, apperrors.NewNotFoundError("vendor", "Vendor profile not found")
		}
		filter.VendorID = profile.ID
	default:
		filter.UserID = actorID
	}

	orders, total, err := s.orderRepo.FindWithFilter(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]*dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, buildOrderResponse(&orders[i]))
	}
	return dto.NewPaginatedResponse(out, total, page, limit), nil
}

// UpdateStatus applies a lifecycle transition. Legality comes from the status
// graph; who may request it depends on role:
//   - admins may apply any legal transition
//   - vendors may transition orders that contain their items
//   - customers may only cancel their own order while it is still PENDING
func (s *orderService) UpdateStatus(actorID string, role models.UserRole, orderID string, req *dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	if req.Status == "" && req.PaymentStatus == "" {
		return nil, apperrors.NewBadRequestError("Nothing to update")
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if err == repositories.ErrOrderNotFound {
			return nil, apperrors.NewNotFoundError("order", "Order not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Status != "" {
		next := models.OrderStatus(req.Status)

		// Ownership before legality, so outsiders get a 403 without
		// learning anything about the order's lifecycle state.
		switch role {
		case models.UserRoleAdmin:
			// any legal transition
		case models.UserRoleVendor:
			profile, err := s.vendorRepo.FindByUserID(actorID)
			if err != nil {
				return nil, apperrors.NewForbiddenError("Vendor profile not found")
			}
			ok, err := s.orderRepo.ContainsVendorItems(order.ID, profile.ID)
			if err != nil {
				return nil, apperrors.InternalError(err)
			}
			if !ok {
				return nil, apperrors.NewForbiddenError("Order does not contain your items")
			}
		default:
			if order.UserID != actorID {
				return nil, apperrors.NewForbiddenError("Not your order")
			}
			if !(order.Status == models.OrderStatusPending && next == models.OrderStatusCancelled) {
				return nil, apperrors.NewForbiddenError("Customers may only cancel pending orders")
			}
		}

		if !order.Status.CanTransitionTo(next) {
			return nil, apperrors.NewInvalidTransitionError("order", string(order.Status), string(next))
		}

		if err := s.orderRepo.UpdateStatus(order.ID, next); err != nil {
			return nil, apperrors.InternalError(err)
		}
		order.Status = next
	}

	if req.PaymentStatus != "" {
		if role != models.UserRoleAdmin {
			return nil, apperrors.NewForbiddenError("Only admins may change payment status")
		}
		next := models.PaymentStatus(req.PaymentStatus)
		if err := s.orderRepo.UpdatePaymentStatus(order.ID, next); err != nil {
			return nil, apperrors.InternalError(err)
		}
		order.PaymentStatus = next

		// Credit each vendor's sales counter with the units sold, exactly
		// once over the order's lifetime: the guard column survives
		// PAID -> FAILED -> PAID round trips.
		if next == models.PaymentStatusPaid {
			credited, err := s.orderRepo.MarkVendorsCredited(order.ID)
			if err != nil {
				return nil, apperrors.InternalError(err)
			}
			if credited {
				s.creditVendorSales(order)
			}
		}
	}

	return buildOrderResponse(order), nil
}

func (s *orderService) creditVendorSales(order *models.Order) {
	byVendor := make(map[string]int64)
	for _, item := range order.Items {
		byVendor[item.VendorID] += int64(item.Quantity)
	}
	for vendorID, units := range byVendor {
		if err := s.vendorRepo.AddSales(vendorID, units); err != nil {
			logger.WithError(err).Warn("failed to credit vendor sales",
				"vendor_id", vendorID, "order_id", order.ID)
		}
	}
}

func (s *orderService) authorizeOrderAccess(actorID string, role models.UserRole, order *models.Order) error {
	switch role {
	case models.UserRoleAdmin:
		return nil
	case models.UserRoleVendor:
		if order.UserID == actorID {
			return nil
		}
		profile, err := s.vendorRepo.FindByUserID(actorID)
		if err != nil {
			return apperrors.NewForbiddenError("Access denied")
		}
		ok, err := s.orderRepo.ContainsVendorItems(order.ID, profile.ID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if !ok {
			return apperrors.NewForbiddenError("Access denied")
		}
		return nil
	default:
		if order.UserID != actorID {
			return apperrors.NewForbiddenError("Access denied")
		}
		return nil
	}
}

// computeOrderTotals returns subtotal, tax and total, each rounded to cents.
// Tax applies to the subtotal only, not to shipping.
func computeOrderTotals(items []models.OrderItem, taxRate, shipping float64) (subtotal, tax, total float64) {
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	subtotal = roundCents(subtotal)
	tax = roundCents(subtotal * taxRate)
	total = roundCents(subtotal + shipping + tax)
	return subtotal, tax, total
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// generateOrderNumber produces PREFIX-<base36 ms timestamp>-<4 random bytes>.
// The random suffix keeps numbers unique under concurrent checkouts.
func generateOrderNumber(prefix string) string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return prefix + "-" + ts + "-" + strings.ToUpper(hex.EncodeToString(buf))
}

func buildOrderResponse(order *models.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			VendorID:  item.VendorID,
			Title:     item.Title,
			Type:      string(item.Type),
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return &dto.OrderResponse{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		UserID:        order.UserID,
		Status:        string(order.Status),
		PaymentStatus: string(order.PaymentStatus),
		PaymentMethod: order.PaymentMethod,
		Subtotal:      order.Subtotal,
		ShippingCost:  order.ShippingCost,
		Tax:           order.Tax,
		Total:         order.Total,
		AddressID:     order.AddressID,
		Items:         items,
		CreatedAt:     order.CreatedAt,
	}
}
