package services

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"kalavpp_backend/internal/repositories"
	"kalavpp_backend/pkg/apperrors"
)

// ExportService renders admin CSV exports. Header rows are fixed per type so
// downstream spreadsheets can rely on column positions.
type ExportService interface {
	// Export returns the CSV body and the suggested filename.
	Export(exportType string) ([]byte, string, error)
}

type exportService struct {
	orderRepo      repositories.OrderRepository
	commissionRepo repositories.CommissionRepository
	vendorRepo     repositories.VendorRepository
	productRepo    repositories.ProductRepository
}

func NewExportService(
	orderRepo repositories.OrderRepository,
	commissionRepo repositories.CommissionRepository,
	vendorRepo repositories.VendorRepository,
	productRepo repositories.ProductRepository,
) ExportService {
	return &exportService{
		orderRepo:      orderRepo,
		commissionRepo: commissionRepo,
		vendorRepo:     vendorRepo,
		productRepo:    productRepo,
	}
}

func (s *exportService) Export(exportType string) ([]byte, string, error) {
	var (
		rows [][]string
		err  error
	)

	switch exportType {
	case "orders":
		rows, err = s.orderRows()
	case "commissions":
		rows, err = s.commissionRows()
	case "vendors":
		rows, err = s.vendorRows()
	case "products":
		rows, err = s.productRows()
	default:
		return nil, "", apperrors.NewBadRequestError("Unknown export type: " + exportType)
	}
	if err != nil {
		return nil, "", apperrors.InternalError(err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, "", apperrors.InternalError(err)
	}

	filename := exportType + "-" + time.Now().UTC().Format("2006-01-02") + ".csv"
	return buf.Bytes(), filename, nil
}

func (s *exportService) orderRows() ([][]string, error) {
	orders, err := s.orderRepo.FindAllForExport()
	if err != nil {
		return nil, err
	}

	rows := [][]string{{
		"order_number", "customer_email", "status", "payment_status",
		"subtotal", "shipping", "tax", "total", "items", "created_at",
	}}
	for i := range orders {
		o := &orders[i]
		email := ""
		if o.User != nil {
			email = o.User.Email
		}
		rows = append(rows, []string{
			o.OrderNumber,
			email,
			string(o.Status),
			string(o.PaymentStatus),
			formatMoney(o.Subtotal),
			formatMoney(o.ShippingCost),
			formatMoney(o.Tax),
			formatMoney(o.Total),
			strconv.Itoa(len(o.Items)),
			o.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return rows, nil
}

func (s *exportService) commissionRows() ([][]string, error) {
	commissions, err := s.commissionRepo.FindAllForExport()
	if err != nil {
		return nil, err
	}

	rows := [][]string{{
		"id", "title", "customer_email", "store", "budget", "status",
		"revisions", "created_at",
	}}
	for i := range commissions {
		c := &commissions[i]
		email, store := "", ""
		if c.Customer != nil {
			email = c.Customer.Email
		}
		if c.Vendor != nil {
			store = c.Vendor.StoreName
		}
		rows = append(rows, []string{
			c.ID,
			c.Title,
			email,
			store,
			formatMoney(c.Budget),
			string(c.Status),
			strconv.Itoa(c.CurrentRevision) + "/" + strconv.Itoa(c.MaxRevisions),
			c.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return rows, nil
}

func (s *exportService) vendorRows() ([][]string, error) {
	vendors, err := s.vendorRepo.FindAllForExport()
	if err != nil {
		return nil, err
	}

	rows := [][]string{{
		"store_name", "store_slug", "owner_email", "status", "rating",
		"total_sales", "created_at",
	}}
	for i := range vendors {
		v := &vendors[i]
		email := ""
		if v.User != nil {
			email = v.User.Email
		}
		rows = append(rows, []string{
			v.StoreName,
			v.StoreSlug,
			email,
			string(v.Status),
			strconv.FormatFloat(v.Rating, 'f', 2, 64),
			strconv.FormatInt(v.TotalSales, 10),
			v.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return rows, nil
}

func (s *exportService) productRows() ([][]string, error) {
	products, err := s.productRepo.FindAllForExport()
	if err != nil {
		return nil, err
	}

	rows := [][]string{{
		"title", "store", "category", "type", "status", "price", "stock",
		"created_at",
	}}
	for i := range products {
		p := &products[i]
		store, category := "", ""
		if p.Vendor != nil {
			store = p.Vendor.StoreName
		}
		if p.Category != nil {
			category = p.Category.Name
		}
		rows = append(rows, []string{
			p.Title,
			store,
			category,
			string(p.Type),
			string(p.Status),
			formatMoney(p.Price),
			strconv.Itoa(p.StockQuantity),
			p.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return rows, nil
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
