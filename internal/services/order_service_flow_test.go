package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kalavpp_backend/internal/config"
	"kalavpp_backend/internal/models"
	"kalavpp_backend/internal/repositories"
	"kalavpp_backend/internal/services/dto"
)

// Stubs embed the repository interfaces so only the methods a flow actually
// touches need implementations.

type stubOrderRepo struct {
	repositories.OrderRepository
	order     *models.Order
	replay    *models.Order
	createErr error
	keyReads  int
	credited  bool
}

func (s *stubOrderRepo) FindByID(id string) (*models.Order, error) {
	if s.order != nil && s.order.ID == id {
		return s.order, nil
	}
	return nil, repositories.ErrOrderNotFound
}

func (s *stubOrderRepo) FindByIdempotencyKey(userID, key string) (*models.Order, error) {
	s.keyReads++
	if s.keyReads == 1 || s.replay == nil {
		return nil, repositories.ErrOrderNotFound
	}
	return s.replay, nil
}

func (s *stubOrderRepo) CreateCheckout(order *models.Order, address *models.Address) error {
	if s.createErr != nil {
		return s.createErr
	}
	order.ID = "order-1"
	s.order = order
	return nil
}

func (s *stubOrderRepo) UpdatePaymentStatus(id string, status models.PaymentStatus) error {
	s.order.PaymentStatus = status
	return nil
}

func (s *stubOrderRepo) MarkVendorsCredited(id string) (bool, error) {
	if s.credited {
		return false, nil
	}
	s.credited = true
	return true, nil
}

type stubVendorRepo struct {
	repositories.VendorRepository
	mu    sync.Mutex
	sales map[string]int64
}

func (s *stubVendorRepo) AddSales(id string, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sales == nil {
		s.sales = make(map[string]int64)
	}
	s.sales[id] += delta
	return nil
}

type stubProductRepo struct {
	repositories.ProductRepository
	products []models.Product
}

func (s *stubProductRepo) FindByIDs(ids []string) ([]models.Product, error) {
	return s.products, nil
}

type stubUserRepo struct {
	repositories.UserRepository
	user *models.User
}

func (s *stubUserRepo) FindByID(id string) (*models.User, error) {
	return s.user, nil
}

// blockingSender parks order-confirmation delivery until released, so tests
// can observe whether a response waited for it.
type blockingSender struct {
	release chan struct{}
	sent    chan struct{}
}

func (b *blockingSender) SendOrderConfirmation(to, orderNumber string, total float64) error {
	<-b.release
	close(b.sent)
	return nil
}

func (b *blockingSender) SendVendorDecision(to, storeName string, approved bool) error { return nil }
func (b *blockingSender) SendCommissionUpdate(to, title, status string) error          { return nil }

func setPlatformConfig(t *testing.T) {
	t.Helper()
	prev := config.AppConfig
	cfg := &config.Config{}
	cfg.Platform.TaxRate = 0.18
	cfg.Platform.OrderNumberPrefix = "KAL"
	config.AppConfig = cfg
	t.Cleanup(func() { config.AppConfig = prev })
}

func digitalTestProduct() models.Product {
	product := models.Product{
		VendorID: "vendor-1",
		Title:    "Print",
		Type:     models.ProductTypeDigital,
		Status:   models.ProductStatusActive,
		Price:    100,
	}
	product.ID = "product-1"
	return product
}

func TestRepaidOrderCreditsVendorOnce(t *testing.T) {
	order := &models.Order{
		UserID:        "customer-1",
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		Items: []models.OrderItem{
			{VendorID: "vendor-1", Quantity: 3},
		},
	}
	order.ID = "order-1"
	orders := &stubOrderRepo{order: order}
	vendors := &stubVendorRepo{}
	svc := NewOrderService(orders, nil, vendors, nil, nil, nil)

	// A payment that bounces and is re-marked PAID must not double count.
	for _, status := range []string{"PAID", "FAILED", "PAID"} {
		_, err := svc.UpdateStatus("admin-1", models.UserRoleAdmin, "order-1",
			&dto.UpdateOrderStatusRequest{PaymentStatus: status})
		require.NoError(t, err)
	}

	assert.Equal(t, int64(3), vendors.sales["vendor-1"])
}

func TestCheckoutReturnsBeforeEmailDelivery(t *testing.T) {
	setPlatformConfig(t)

	sender := &blockingSender{release: make(chan struct{}), sent: make(chan struct{})}
	orders := &stubOrderRepo{}
	users := &stubUserRepo{user: &models.User{Email: "buyer@test.local"}}
	products := &stubProductRepo{products: []models.Product{digitalTestProduct()}}
	svc := NewOrderService(orders, products, nil, users, nil, sender)

	// Delivery is still parked; a synchronous send would deadlock here.
	resp, err := svc.Checkout("customer-1", "", &dto.CreateOrderRequest{
		Items:         []dto.OrderItemRequest{{ProductID: "product-1", Quantity: 1}},
		PaymentMethod: "CARD",
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	close(sender.release)
	select {
	case <-sender.sent:
	case <-time.After(time.Second):
		t.Fatal("confirmation email was never dispatched")
	}
}

func TestCheckoutIdempotencyRaceReplaysWinner(t *testing.T) {
	setPlatformConfig(t)

	winner := &models.Order{UserID: "customer-1", OrderNumber: "KAL-X-AAAA1111"}
	winner.ID = "order-winner"

	orders := &stubOrderRepo{createErr: repositories.ErrDuplicateCheckout, replay: winner}
	products := &stubProductRepo{products: []models.Product{digitalTestProduct()}}
	svc := NewOrderService(orders, products, nil, nil, nil, nil)

	// The pre-read misses, the insert collides with a concurrent checkout,
	// and the caller still gets the winning order back.
	resp, err := svc.Checkout("customer-1", "retry-key", &dto.CreateOrderRequest{
		Items:         []dto.OrderItemRequest{{ProductID: "product-1", Quantity: 1}},
		PaymentMethod: "CARD",
	})
	require.NoError(t, err)
	assert.Equal(t, "order-winner", resp.ID)
	assert.Equal(t, 2, orders.keyReads)
}
