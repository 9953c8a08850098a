package integration

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kalavpp_backend/internal/models"
	"kalavpp_backend/internal/repositories"
	"kalavpp_backend/test/helpers"
)

func TestAdminDashboard(t *testing.T) {
	ts := helpers.NewTestServer(t)
	admin := ts.CreateAdmin()
	vendor := ts.RegisterVendor("Metrics Studio")
	ts.ApproveVendor(vendor.VendorID)
	product := ts.CreateActiveProduct(vendor.VendorID, 200, 10, models.ProductTypePhysical)
	customer := ts.RegisterCustomer()

	resp, _ := ts.DoJSON("POST", "/api/v1/orders", customer.Token, checkoutBody(product.ID, 1))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := ts.DoJSON("GET", "/api/v1/admin/analytics", admin.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	totals := body["totals"].(map[string]any)
	assert.Equal(t, float64(1), totals["orders"])
	assert.Equal(t, float64(1), totals["customers"])
	assert.Equal(t, float64(1), totals["vendors"])
	assert.Equal(t, float64(1), totals["products"])

	ordersByStatus := body["orders_by_status"].(map[string]any)
	assert.Equal(t, float64(1), ordersByStatus["PENDING"])

	vendorsByStatus := body["vendors_by_status"].(map[string]any)
	assert.Equal(t, float64(1), vendorsByStatus["APPROVED"])

	// Everything happened inside the current window, so growth bottoms
	// out at the fresh-start fallback.
	growth := body["growth"].(map[string]any)
	assert.Equal(t, float64(1), growth["orders_current"])
	assert.Equal(t, float64(0), growth["orders_previous"])
	assert.Equal(t, float64(100), growth["orders_growth_pct"])

	monthly := body["monthly"].([]any)
	assert.Len(t, monthly, 6)
}

func TestMonthlySeriesBucketsInUTC(t *testing.T) {
	ts := helpers.NewTestServer(t)
	customer := ts.RegisterCustomer()

	// A row just past the UTC month boundary lands in the previous month
	// when bucketed in a timezone west of UTC.
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 30, 0, 0, time.UTC)

	order := &models.Order{
		UserID:        customer.UserID,
		OrderNumber:   "KAL-TZCHECK-0001",
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		Subtotal:      10,
		Total:         10,
	}
	require.NoError(t, ts.DB.Create(order).Error)
	require.NoError(t, ts.DB.Model(order).Update("created_at", monthStart).Error)

	key := monthStart.Format("2006-01")
	err := ts.DB.Connection(func(tx *gorm.DB) error {
		if err := tx.Exec("SET TIME ZONE 'America/New_York'").Error; err != nil {
			return err
		}
		buckets, err := repositories.NewAnalyticsRepository(tx).MonthlySeries(6)
		if err != nil {
			return err
		}
		for _, b := range buckets {
			if b.Month == key {
				assert.Equal(t, int64(1), b.Orders)
				return nil
			}
		}
		t.Fatalf("no bucket for month %s", key)
		return nil
	})
	require.NoError(t, err)
}

func TestAdminDashboardRequiresAdmin(t *testing.T) {
	ts := helpers.NewTestServer(t)
	vendor := ts.RegisterVendor("Not An Admin")

	resp, _ := ts.DoJSON("GET", "/api/v1/admin/analytics", vendor.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminUserManagement(t *testing.T) {
	ts := helpers.NewTestServer(t)
	admin := ts.CreateAdmin()
	customer := ts.RegisterCustomer()

	resp, body := ts.DoJSON("GET", "/api/v1/admin/users", admin.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["total"]) // admin + customer

	resp, _ = ts.DoJSON("DELETE", "/api/v1/admin/users/"+customer.UserID, admin.Token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = ts.DoJSON("GET", "/api/v1/admin/users", admin.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["total"])
}

func TestAdminVendorModeration(t *testing.T) {
	ts := helpers.NewTestServer(t)
	admin := ts.CreateAdmin()
	vendor := ts.RegisterVendor("Moderated Store")

	resp, body := ts.DoJSON("PATCH", "/api/v1/admin/vendors/"+vendor.VendorID+"/status", admin.Token,
		map[string]any{"status": "REJECTED", "reason": "Incomplete portfolio"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "REJECTED", body["status"])

	// Rejected stores stay invisible to the public.
	resp, _ = ts.DoJSON("GET", "/api/v1/stores/moderated-store", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
