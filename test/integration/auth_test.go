package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kalavpp_backend/test/helpers"
)

func TestRegisterAndLogin(t *testing.T) {
	ts := helpers.NewTestServer(t)

	customer := ts.RegisterCustomer()
	require.NotEmpty(t, customer.Token)

	resp, body := ts.DoJSON("POST", "/api/v1/auth/login", "", map[string]any{
		"email":    customer.Email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["access_token"])
	assert.NotEmpty(t, body["refresh_token"])

	user := body["user"].(map[string]any)
	assert.Equal(t, "CUSTOMER", user["role"])
}

func TestLoginWrongPassword(t *testing.T) {
	ts := helpers.NewTestServer(t)
	customer := ts.RegisterCustomer()

	resp, _ := ts.DoJSON("POST", "/api/v1/auth/login", "", map[string]any{
		"email":    customer.Email,
		"password": "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestVendorRegistrationCreatesPendingStore(t *testing.T) {
	ts := helpers.NewTestServer(t)

	vendor := ts.RegisterVendor("Atelier Nord")
	require.NotEmpty(t, vendor.VendorID)

	resp, body := ts.DoJSON("GET", "/api/v1/auth/me", vendor.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	profile := body["vendor_profile"].(map[string]any)
	assert.Equal(t, "PENDING", profile["status"])
	assert.Equal(t, "Atelier Nord", profile["store_name"])
	assert.Equal(t, "atelier-nord", profile["store_slug"])
}

func TestVendorRegistrationRequiresStoreName(t *testing.T) {
	ts := helpers.NewTestServer(t)

	resp, _ := ts.DoJSON("POST", "/api/v1/auth/register", "", map[string]any{
		"email":    "nameless@test.local",
		"name":     "No Store",
		"password": "password123",
		"role":     "VENDOR",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ts := helpers.NewTestServer(t)
	customer := ts.RegisterCustomer()

	resp, _ := ts.DoJSON("POST", "/api/v1/auth/register", "", map[string]any{
		"email":    customer.Email,
		"name":     "Copycat",
		"password": "password123",
		"role":     "CUSTOMER",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRefreshRotation(t *testing.T) {
	ts := helpers.NewTestServer(t)
	customer := ts.RegisterCustomer()

	resp, body := ts.DoJSON("POST", "/api/v1/auth/login", "", map[string]any{
		"email":    customer.Email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	refresh := body["refresh_token"].(string)

	resp, body = ts.DoJSON("POST", "/api/v1/auth/refresh", "", map[string]any{
		"refresh_token": refresh,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["access_token"])

	// The old refresh token is single-use.
	resp, _ = ts.DoJSON("POST", "/api/v1/auth/refresh", "", map[string]any{
		"refresh_token": refresh,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMeRequiresToken(t *testing.T) {
	ts := helpers.NewTestServer(t)

	resp, _ := ts.DoJSON("GET", "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
