package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kalavpp_backend/internal/models"
	"kalavpp_backend/test/helpers"
)

var testAddress = map[string]any{
	"full_name": "Ada Byron",
	"street":    "12 Marble Lane",
	"city":      "Oslo",
	"country":   "Norway",
}

func checkoutBody(productID string, qty int) map[string]any {
	return map[string]any{
		"items": []map[string]any{
			{"product_id": productID, "quantity": qty},
		},
		"payment_method": "CARD",
		"address":        testAddress,
	}
}

func TestCheckoutRecomputesTotals(t *testing.T) {
	ts := helpers.NewTestServer(t)
	vendor := ts.RegisterVendor("Totals Studio")
	ts.ApproveVendor(vendor.VendorID)
	product := ts.CreateActiveProduct(vendor.VendorID, 500, 10, models.ProductTypePhysical)
	customer := ts.RegisterCustomer()

	// Client-sent totals are not part of the request shape at all; the
	// server derives them from canonical prices.
	resp, body := ts.DoJSON("POST", "/api/v1/orders", customer.Token, checkoutBody(product.ID, 3))
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %v", body)

	assert.Equal(t, 1500.0, body["subtotal"])
	assert.Equal(t, 270.0, body["tax"]) // 18% of subtotal
	assert.Equal(t, 1770.0, body["total"])
	assert.Equal(t, "PENDING", body["status"])
	assert.Equal(t, "PENDING", body["payment_status"])

	orderNumber := body["order_number"].(string)
	assert.Regexp(t, `^KAL-[0-9A-Z]+-[0-9A-F]{8}$`, orderNumber)
}

func TestCheckoutDecrementsStockAndSellsOut(t *testing.T) {
	ts := helpers.NewTestServer(t)
	vendor := ts.RegisterVendor("Scarce Goods")
	ts.ApproveVendor(vendor.VendorID)
	product := ts.CreateActiveProduct(vendor.VendorID, 40, 2, models.ProductTypePhysical)
	customer := ts.RegisterCustomer()

	resp, _ := ts.DoJSON("POST", "/api/v1/orders", customer.Token, checkoutBody(product.ID, 2))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var reloaded models.Product
	require.NoError(t, ts.DB.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 0, reloaded.StockQuantity)
	assert.Equal(t, models.ProductStatusSoldOut, reloaded.Status)

	// The next buyer is rejected with a conflict.
	resp, _ = ts.DoJSON("POST", "/api/v1/orders", customer.Token, checkoutBody(product.ID, 1))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCheckoutInsufficientStock(t *testing.T) {
	ts := helpers.NewTestServer(t)
	vendor := ts.RegisterVendor("Low Stock")
	ts.ApproveVendor(vendor.VendorID)
	product := ts.CreateActiveProduct(vendor.VendorID, 10, 1, models.ProductTypePhysical)
	customer := ts.RegisterCustomer()

	resp, _ := ts.DoJSON("POST", "/api/v1/orders", customer.Token, checkoutBody(product.ID, 5))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Nothing was written.
	var count int64
	ts.DB.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCheckoutIdempotencyKeyReplay(t *testing.T) {
	ts := helpers.NewTestServer(t)
	vendor := ts.RegisterVendor("Replay Shop")
	ts.ApproveVendor(vendor.VendorID)
	product := ts.CreateActiveProduct(vendor.VendorID, 25, 10, models.ProductTypePhysical)
	customer := ts.RegisterCustomer()

	resp, first := ts.DoJSON("POST", "/api/v1/orders", customer.Token,
		checkoutBody(product.ID, 1), "Idempotency-Key", "retry-abc")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, second := ts.DoJSON("POST", "/api/v1/orders", customer.Token,
		checkoutBody(product.ID, 1), "Idempotency-Key", "retry-abc")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, first["id"], second["id"])
	assert.Equal(t, first["order_number"], second["order_number"])

	var count int64
	ts.DB.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// Stock was only taken once.
	var reloaded models.Product
	require.NoError(t, ts.DB.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 9, reloaded.StockQuantity)
}

func TestOrderItemsSnapshotPrices(t *testing.T) {
	ts := helpers.NewTestServer(t)
	vendor := ts.RegisterVendor("Snapshot Atelier")
	ts.ApproveVendor(vendor.VendorID)
	product := ts.CreateActiveProduct(vendor.VendorID, 100, 5, models.ProductTypePhysical)
	customer := ts.RegisterCustomer()

	resp, body := ts.DoJSON("POST", "/api/v1/orders", customer.Token, checkoutBody(product.ID, 1))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	orderID := body["id"].(string)

	// Reprice the product after purchase.
	require.NoError(t, ts.DB.Model(&models.Product{}).
		Where("id = ?", product.ID).Update("price", 999).Error)

	resp, body = ts.DoJSON("GET", "/api/v1/orders/"+orderID, customer.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := body["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, 100.0, items[0].(map[string]any)["price"])
}

func TestOrderStatusTransitionMatrix(t *testing.T) {
	ts := helpers.NewTestServer(t)
	vendor := ts.RegisterVendor("Transitions Inc")
	ts.ApproveVendor(vendor.VendorID)
	product := ts.CreateActiveProduct(vendor.VendorID, 50, 20, models.ProductTypePhysical)
	customer := ts.RegisterCustomer()
	admin := ts.CreateAdmin()

	resp, body := ts.DoJSON("POST", "/api/v1/orders", customer.Token, checkoutBody(product.ID, 1))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	orderID := body["id"].(string)

	// Illegal jump is a conflict even for admins.
	resp, _ = ts.DoJSON("PATCH", "/api/v1/orders/"+orderID+"/status", admin.Token,
		map[string]any{"status": "DELIVERED"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Customers cannot confirm, only cancel while pending.
	resp, _ = ts.DoJSON("PATCH", "/api/v1/orders/"+orderID+"/status", customer.Token,
		map[string]any{"status": "CONFIRMED"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Vendor walks the order forward.
	for _, next := range []string{"CONFIRMED", "PROCESSING", "SHIPPED", "DELIVERED"} {
		resp, body = ts.DoJSON("PATCH", "/api/v1/orders/"+orderID+"/status", vendor.Token,
			map[string]any{"status": next})
		require.Equal(t, http.StatusOK, resp.StatusCode, "transition to %s", next)
		assert.Equal(t, next, body["status"])
	}

	// DELIVERED is not terminal: admin can still refund.
	resp, body = ts.DoJSON("PATCH", "/api/v1/orders/"+orderID+"/status", admin.Token,
		map[string]any{"status": "REFUNDED"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "REFUNDED", body["status"])

	// REFUNDED is terminal.
	resp, _ = ts.DoJSON("PATCH", "/api/v1/orders/"+orderID+"/status", admin.Token,
		map[string]any{"status": "PENDING"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCustomerCanCancelPendingOrder(t *testing.T) {
	ts := helpers.NewTestServer(t)
	vendor := ts.RegisterVendor("Cancelable")
	ts.ApproveVendor(vendor.VendorID)
	product := ts.CreateActiveProduct(vendor.VendorID, 15, 10, models.ProductTypePhysical)
	customer := ts.RegisterCustomer()

	resp, body := ts.DoJSON("POST", "/api/v1/orders", customer.Token, checkoutBody(product.ID, 1))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	orderID := body["id"].(string)

	resp, body = ts.DoJSON("PATCH", "/api/v1/orders/"+orderID+"/status", customer.Token,
		map[string]any{"status": "CANCELLED"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "CANCELLED", body["status"])
}

func TestStrangerCannotSeeOrder(t *testing.T) {
	ts := helpers.NewTestServer(t)
	vendor := ts.RegisterVendor("Private Orders")
	ts.ApproveVendor(vendor.VendorID)
	product := ts.CreateActiveProduct(vendor.VendorID, 10, 5, models.ProductTypePhysical)
	buyer := ts.RegisterCustomer()
	stranger := ts.RegisterCustomer()

	resp, body := ts.DoJSON("POST", "/api/v1/orders", buyer.Token, checkoutBody(product.ID, 1))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	orderID := body["id"].(string)

	resp, _ = ts.DoJSON("GET", "/api/v1/orders/"+orderID, stranger.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Transition attempts on a foreign order get the same flat 403, even
	// when the target status would also be an illegal jump; anything else
	// leaks lifecycle state to outsiders.
	resp, _ = ts.DoJSON("PATCH", "/api/v1/orders/"+orderID+"/status", stranger.Token,
		map[string]any{"status": "DELIVERED"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// A vendor with no items in the order is also rejected.
	otherVendor := ts.RegisterVendor("Uninvolved Goods")
	resp, _ = ts.DoJSON("GET", "/api/v1/orders/"+orderID, otherVendor.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestMarkingPaidCreditsVendorSales(t *testing.T) {
	ts := helpers.NewTestServer(t)
	vendor := ts.RegisterVendor("Sales Counter")
	ts.ApproveVendor(vendor.VendorID)
	product := ts.CreateActiveProduct(vendor.VendorID, 60, 10, models.ProductTypePhysical)
	customer := ts.RegisterCustomer()
	admin := ts.CreateAdmin()

	resp, body := ts.DoJSON("POST", "/api/v1/orders", customer.Token, checkoutBody(product.ID, 3))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	orderID := body["id"].(string)

	// Only admins may change the payment status.
	resp, _ = ts.DoJSON("PATCH", "/api/v1/orders/"+orderID+"/status", customer.Token,
		map[string]any{"payment_status": "PAID"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = ts.DoJSON("PATCH", "/api/v1/orders/"+orderID+"/status", admin.Token,
		map[string]any{"payment_status": "PAID"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile models.VendorProfile
	require.NoError(t, ts.DB.First(&profile, "id = ?", vendor.VendorID).Error)
	assert.Equal(t, int64(3), profile.TotalSales)

	// A bounced payment re-marked PAID must not credit the vendor again.
	for _, status := range []string{"FAILED", "PAID"} {
		resp, _ = ts.DoJSON("PATCH", "/api/v1/orders/"+orderID+"/status", admin.Token,
			map[string]any{"payment_status": status})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	require.NoError(t, ts.DB.First(&profile, "id = ?", vendor.VendorID).Error)
	assert.Equal(t, int64(3), profile.TotalSales)
}
