package integration

import (
	"encoding/csv"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kalavpp_backend/internal/models"
	"kalavpp_backend/test/helpers"
)

func TestExportOrdersCSV(t *testing.T) {
	ts := helpers.NewTestServer(t)
	admin := ts.CreateAdmin()
	vendor := ts.RegisterVendor("Export Studio")
	ts.ApproveVendor(vendor.VendorID)
	product := ts.CreateActiveProduct(vendor.VendorID, 120, 5, models.ProductTypePhysical)
	customer := ts.RegisterCustomer()

	resp, body := ts.DoJSON("POST", "/api/v1/orders", customer.Token, checkoutBody(product.ID, 2))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	orderNumber := body["order_number"].(string)

	resp, raw := ts.Do("GET", "/api/v1/admin/export?type=orders", admin.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "orders-")

	records, err := csv.NewReader(strings.NewReader(string(raw))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{
		"order_number", "customer_email", "status", "payment_status",
		"subtotal", "shipping", "tax", "total", "items", "created_at",
	}, records[0])
	assert.Equal(t, orderNumber, records[1][0])
	assert.Equal(t, customer.Email, records[1][1])
	assert.Equal(t, "PENDING", records[1][2])
}

func TestExportVendorsCSV(t *testing.T) {
	ts := helpers.NewTestServer(t)
	admin := ts.CreateAdmin()
	vendor := ts.RegisterVendor("Listed Studio")
	ts.ApproveVendor(vendor.VendorID)

	resp, raw := ts.Do("GET", "/api/v1/admin/export?type=vendors", admin.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	records, err := csv.NewReader(strings.NewReader(string(raw))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "store_name", records[0][0])
	assert.Equal(t, "Listed Studio", records[1][0])
	assert.Equal(t, vendor.Email, records[1][2])
}

func TestExportUnknownType(t *testing.T) {
	ts := helpers.NewTestServer(t)
	admin := ts.CreateAdmin()

	resp, _ := ts.DoJSON("GET", "/api/v1/admin/export?type=invoices", admin.Token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExportRequiresAdmin(t *testing.T) {
	ts := helpers.NewTestServer(t)
	vendor := ts.RegisterVendor("No Export Studio")

	resp, _ := ts.DoJSON("GET", "/api/v1/admin/export?type=orders", vendor.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
