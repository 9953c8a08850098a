package helpers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kalavpp_backend/internal/app"
	"kalavpp_backend/internal/auth"
	"kalavpp_backend/internal/config"
	"kalavpp_backend/internal/database"
	"kalavpp_backend/internal/logger"
	"kalavpp_backend/internal/models"
)

// TestServer spins up the real router over a throwaway database state.
// Requires DATABASE_URL; tests skip when it is not set.
type TestServer struct {
	T      *testing.T
	DB     *gorm.DB
	Server *httptest.Server
}

func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set; skipping integration test")
	}

	config.LoadConfig()
	cfg := config.GetConfig()
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "integration-test-secret"
	}
	logger.Init("development")

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("database connect: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	truncateAll(t, db)

	server := httptest.NewServer(app.SetupRouter(db, cfg))
	t.Cleanup(server.Close)

	return &TestServer{T: t, DB: db, Server: server}
}

func truncateAll(t *testing.T, db *gorm.DB) {
	t.Helper()
	err := db.Exec(`TRUNCATE TABLE
		reviews, commissions, order_items, orders, addresses,
		services, products, categories, vendor_profiles,
		refresh_tokens, users
		RESTART IDENTITY CASCADE`).Error
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

// Do performs a request against the test server. Body is JSON-encoded when
// non-nil; headers are optional key/value pairs.
func (s *TestServer) Do(method, path, token string, body any, headers ...string) (*http.Response, []byte) {
	s.T.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			s.T.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.Server.URL+path, reader)
	if err != nil {
		s.T.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		s.T.Fatalf("request %s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		s.T.Fatalf("read response body: %v", err)
	}
	return resp, raw
}

// DoJSON performs a request and decodes the JSON response into a generic map.
func (s *TestServer) DoJSON(method, path, token string, body any, headers ...string) (*http.Response, map[string]any) {
	s.T.Helper()

	resp, raw := s.Do(method, path, token, body, headers...)
	out := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			s.T.Fatalf("decode response %s: %v", string(raw), err)
		}
	}
	return resp, out
}

// Account is a registered principal with its token and related IDs.
type Account struct {
	Token    string
	UserID   string
	VendorID string // vendor profile ID, vendors only
	Email    string
}

// RegisterCustomer creates a customer via the public API.
func (s *TestServer) RegisterCustomer() *Account {
	s.T.Helper()
	email := fmt.Sprintf("customer-%s@test.local", uuid.NewString()[:8])

	resp, body := s.DoJSON("POST", "/api/v1/auth/register", "", map[string]any{
		"email":    email,
		"name":     "Test Customer",
		"password": "password123",
		"role":     "CUSTOMER",
	})
	if resp.StatusCode != http.StatusCreated {
		s.T.Fatalf("register customer: status %d, body %v", resp.StatusCode, body)
	}

	user := body["user"].(map[string]any)
	return &Account{
		Token:  body["access_token"].(string),
		UserID: user["id"].(string),
		Email:  email,
	}
}

// RegisterVendor creates a vendor via the public API. The store starts
// PENDING; call ApproveVendor to make it discoverable.
func (s *TestServer) RegisterVendor(storeName string) *Account {
	s.T.Helper()
	email := fmt.Sprintf("vendor-%s@test.local", uuid.NewString()[:8])

	resp, body := s.DoJSON("POST", "/api/v1/auth/register", "", map[string]any{
		"email":      email,
		"name":       "Test Vendor",
		"password":   "password123",
		"role":       "VENDOR",
		"store_name": storeName,
	})
	if resp.StatusCode != http.StatusCreated {
		s.T.Fatalf("register vendor: status %d, body %v", resp.StatusCode, body)
	}

	user := body["user"].(map[string]any)
	profile := user["vendor_profile"].(map[string]any)
	return &Account{
		Token:    body["access_token"].(string),
		UserID:   user["id"].(string),
		VendorID: profile["id"].(string),
		Email:    email,
	}
}

// CreateAdmin seeds an admin row directly and logs in through the API.
func (s *TestServer) CreateAdmin() *Account {
	s.T.Helper()
	email := fmt.Sprintf("admin-%s@test.local", uuid.NewString()[:8])

	hash, err := auth.HashPassword("password123")
	if err != nil {
		s.T.Fatalf("hash admin password: %v", err)
	}
	admin := &models.User{
		Email:        email,
		Name:         "Test Admin",
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
	}
	if err := s.DB.Create(admin).Error; err != nil {
		s.T.Fatalf("create admin: %v", err)
	}

	resp, body := s.DoJSON("POST", "/api/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": "password123",
	})
	if resp.StatusCode != http.StatusOK {
		s.T.Fatalf("admin login: status %d, body %v", resp.StatusCode, body)
	}

	return &Account{
		Token:  body["access_token"].(string),
		UserID: admin.ID,
		Email:  email,
	}
}

// ApproveVendor flips a vendor profile to APPROVED directly in the database.
func (s *TestServer) ApproveVendor(vendorID string) {
	s.T.Helper()
	err := s.DB.Model(&models.VendorProfile{}).
		Where("id = ?", vendorID).
		Update("status", models.VendorStatusApproved).Error
	if err != nil {
		s.T.Fatalf("approve vendor: %v", err)
	}
}

// CreateActiveProduct inserts a purchasable product for the vendor.
func (s *TestServer) CreateActiveProduct(vendorID string, price float64, stock int, productType models.ProductType) *models.Product {
	s.T.Helper()
	product := &models.Product{
		VendorID:      vendorID,
		Title:         "Test Artwork " + uuid.NewString()[:8],
		Type:          productType,
		Status:        models.ProductStatusActive,
		Price:         price,
		StockQuantity: stock,
	}
	if err := s.DB.Create(product).Error; err != nil {
		s.T.Fatalf("create product: %v", err)
	}
	return product
}
