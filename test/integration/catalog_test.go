package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kalavpp_backend/internal/models"
	"kalavpp_backend/test/helpers"
)

func TestProductInvisibleUntilVendorApproved(t *testing.T) {
	ts := helpers.NewTestServer(t)
	vendor := ts.RegisterVendor("Hidden Gallery")

	resp, body := ts.DoJSON("POST", "/api/v1/vendor/products", vendor.Token, map[string]any{
		"title": "Sunset Oil Painting",
		"type":  "PHYSICAL",
		"price": 250.0,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	productID := body["id"].(string)
	assert.Equal(t, "DRAFT", body["status"])

	// Activate the listing; the store itself is still PENDING.
	resp, _ = ts.DoJSON("PATCH", "/api/v1/vendor/products/"+productID, vendor.Token, map[string]any{
		"status": "ACTIVE",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = ts.DoJSON("GET", "/api/v1/products", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["total"])

	resp, _ = ts.DoJSON("GET", "/api/v1/products/"+productID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Approval makes the same listing discoverable, with no product change.
	ts.ApproveVendor(vendor.VendorID)

	resp, body = ts.DoJSON("GET", "/api/v1/products", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["total"])

	resp, body = ts.DoJSON("GET", "/api/v1/products/"+productID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Sunset Oil Painting", body["title"])
}

func TestBrowseFilters(t *testing.T) {
	ts := helpers.NewTestServer(t)
	vendor := ts.RegisterVendor("Filter Works")
	ts.ApproveVendor(vendor.VendorID)

	ts.CreateActiveProduct(vendor.VendorID, 10, 5, models.ProductTypePhysical)
	ts.CreateActiveProduct(vendor.VendorID, 20, 0, models.ProductTypeDigital)
	ts.CreateActiveProduct(vendor.VendorID, 30, 2, models.ProductTypeMerchandise)

	resp, body := ts.DoJSON("GET", "/api/v1/products?type=DIGITAL", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["total"])

	resp, body = ts.DoJSON("GET", "/api/v1/products?sort=price_desc", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := body["items"].([]any)
	require.Len(t, items, 3)
	first := items[0].(map[string]any)
	assert.Equal(t, 30.0, first["price"])

	resp, body = ts.DoJSON("GET", "/api/v1/products?page=1&limit=2", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), body["total"])
	assert.Len(t, body["items"].([]any), 2)
	assert.Equal(t, float64(2), body["total_pages"])
}

func TestOtherVendorCannotEditProduct(t *testing.T) {
	ts := helpers.NewTestServer(t)
	owner := ts.RegisterVendor("Owner Studio")
	intruder := ts.RegisterVendor("Intruder Studio")
	product := ts.CreateActiveProduct(owner.VendorID, 99, 1, models.ProductTypePhysical)

	resp, _ := ts.DoJSON("PATCH", "/api/v1/vendor/products/"+product.ID, intruder.Token, map[string]any{
		"price": 1.0,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestServiceLifecycle(t *testing.T) {
	ts := helpers.NewTestServer(t)
	vendor := ts.RegisterVendor("Commission Corner")
	ts.ApproveVendor(vendor.VendorID)

	resp, body := ts.DoJSON("POST", "/api/v1/vendor/services", vendor.Token, map[string]any{
		"title":         "Custom Pet Portrait",
		"type":          "PORTRAIT",
		"base_price":    150.0,
		"delivery_days": 10,
		"max_revisions": 3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	serviceID := body["id"].(string)
	assert.Equal(t, true, body["is_active"])

	resp, body = ts.DoJSON("GET", "/api/v1/services", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["total"])

	// Deactivated services disappear from the public catalog.
	resp, _ = ts.DoJSON("PATCH", "/api/v1/vendor/services/"+serviceID, vendor.Token, map[string]any{
		"is_active": false,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = ts.DoJSON("GET", "/api/v1/services/"+serviceID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStorefrontVisibility(t *testing.T) {
	ts := helpers.NewTestServer(t)
	vendor := ts.RegisterVendor("Slug Store")

	resp, _ := ts.DoJSON("GET", "/api/v1/stores/slug-store", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	ts.ApproveVendor(vendor.VendorID)

	resp, body := ts.DoJSON("GET", "/api/v1/stores/slug-store", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Slug Store", body["store_name"])
}

func TestCategoryDeleteBlockedWhileInUse(t *testing.T) {
	ts := helpers.NewTestServer(t)
	admin := ts.CreateAdmin()
	vendor := ts.RegisterVendor("Category Works")
	ts.ApproveVendor(vendor.VendorID)

	resp, body := ts.DoJSON("POST", "/api/v1/admin/categories", admin.Token, map[string]any{
		"name": "Paintings",
		"slug": "paintings",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	categoryID := body["id"].(string)

	resp, _ = ts.DoJSON("POST", "/api/v1/vendor/products", vendor.Token, map[string]any{
		"title":       "Categorised Piece",
		"type":        "PHYSICAL",
		"price":       75.0,
		"category_id": categoryID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = ts.DoJSON("DELETE", "/api/v1/admin/categories/"+categoryID, admin.Token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCategoryManagementRequiresAdmin(t *testing.T) {
	ts := helpers.NewTestServer(t)
	customer := ts.RegisterCustomer()

	resp, _ := ts.DoJSON("POST", "/api/v1/admin/categories", customer.Token, map[string]any{
		"name": "Nope",
		"slug": "nope",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
