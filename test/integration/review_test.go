package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kalavpp_backend/internal/models"
	"kalavpp_backend/test/helpers"
)

func TestReviewVerifiedAfterDelivery(t *testing.T) {
	ts := helpers.NewTestServer(t)
	vendor := ts.RegisterVendor("Reviewed Studio")
	ts.ApproveVendor(vendor.VendorID)
	product := ts.CreateActiveProduct(vendor.VendorID, 80, 10, models.ProductTypePhysical)
	customer := ts.RegisterCustomer()

	resp, body := ts.DoJSON("POST", "/api/v1/orders", customer.Token, checkoutBody(product.ID, 1))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	orderID := body["id"].(string)

	for _, next := range []string{"CONFIRMED", "PROCESSING", "SHIPPED", "DELIVERED"} {
		resp, _ = ts.DoJSON("PATCH", "/api/v1/orders/"+orderID+"/status", vendor.Token,
			map[string]any{"status": next})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, body = ts.DoJSON("POST", "/api/v1/reviews", customer.Token, map[string]any{
		"product_id": product.ID,
		"rating":     4,
		"comment":    "Lovely brushwork.",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["is_verified"])

	// The store rating reflects the new review.
	var profile models.VendorProfile
	require.NoError(t, ts.DB.First(&profile, "id = ?", vendor.VendorID).Error)
	assert.Equal(t, 4.0, profile.Rating)

	// Reviews are publicly readable.
	resp, body = ts.DoJSON("GET", "/api/v1/products/"+product.ID+"/reviews", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["total"])
}

func TestReviewWithoutPurchaseIsUnverified(t *testing.T) {
	ts := helpers.NewTestServer(t)
	vendor := ts.RegisterVendor("Unverified Studio")
	ts.ApproveVendor(vendor.VendorID)
	product := ts.CreateActiveProduct(vendor.VendorID, 80, 10, models.ProductTypePhysical)
	customer := ts.RegisterCustomer()

	resp, body := ts.DoJSON("POST", "/api/v1/reviews", customer.Token, map[string]any{
		"product_id": product.ID,
		"rating":     2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, false, body["is_verified"])
}

func TestReviewTargetExclusivity(t *testing.T) {
	ts := helpers.NewTestServer(t)
	vendor := ts.RegisterVendor("Exclusive Studio")
	ts.ApproveVendor(vendor.VendorID)
	product := ts.CreateActiveProduct(vendor.VendorID, 80, 10, models.ProductTypePhysical)
	service := createTestService(ts, vendor.VendorID, 100, 2)
	customer := ts.RegisterCustomer()

	// Neither target.
	resp, _ := ts.DoJSON("POST", "/api/v1/reviews", customer.Token, map[string]any{
		"rating": 5,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Both targets.
	resp, _ = ts.DoJSON("POST", "/api/v1/reviews", customer.Token, map[string]any{
		"product_id": product.ID,
		"service_id": service.ID,
		"rating":     5,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDuplicateReviewRejected(t *testing.T) {
	ts := helpers.NewTestServer(t)
	vendor := ts.RegisterVendor("Once Only Studio")
	ts.ApproveVendor(vendor.VendorID)
	product := ts.CreateActiveProduct(vendor.VendorID, 80, 10, models.ProductTypePhysical)
	customer := ts.RegisterCustomer()

	body := map[string]any{"product_id": product.ID, "rating": 3}
	resp, _ := ts.DoJSON("POST", "/api/v1/reviews", customer.Token, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = ts.DoJSON("POST", "/api/v1/reviews", customer.Token, body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestReviewDeletion(t *testing.T) {
	ts := helpers.NewTestServer(t)
	vendor := ts.RegisterVendor("Deletable Studio")
	ts.ApproveVendor(vendor.VendorID)
	product := ts.CreateActiveProduct(vendor.VendorID, 80, 10, models.ProductTypePhysical)
	author := ts.RegisterCustomer()
	stranger := ts.RegisterCustomer()
	admin := ts.CreateAdmin()

	resp, body := ts.DoJSON("POST", "/api/v1/reviews", author.Token, map[string]any{
		"product_id": product.ID,
		"rating":     1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	reviewID := body["id"].(string)

	resp, _ = ts.DoJSON("DELETE", "/api/v1/reviews/"+reviewID, stranger.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = ts.DoJSON("DELETE", "/api/v1/reviews/"+reviewID, admin.Token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}
