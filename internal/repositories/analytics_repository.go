package repositories

import (
	"time"

	"gorm.io/gorm"

	"kalavpp_backend/internal/models"
)

// MonthBucket is one calendar month of aggregated order activity.
type MonthBucket struct {
	Month   string  `json:"month"` // YYYY-MM
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
	Signups int64   `json:"signups"`
}

type AnalyticsRepository interface {
	CountOrdersByStatus() (map[models.OrderStatus]int64, error)
	CountOrdersBetween(from, to time.Time) (int64, error)
	SumRevenueBetween(from, to time.Time) (float64, error)
	SumRevenueAll() (float64, error)
	CountUsersByRole() (map[models.UserRole]int64, error)
	CountSignupsBetween(from, to time.Time) (int64, error)
	CountVendorsByStatus() (map[models.VendorStatus]int64, error)
	CountCommissionsByStatus() (map[models.CommissionStatus]int64, error)
	CountProductsByType() (map[models.ProductType]int64, error)
	MonthlySeries(months int) ([]MonthBucket, error)
}

type AnalyticsRepositoryImpl struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &AnalyticsRepositoryImpl{db: db}
}

type statusCount struct {
	Status string
	Count  int64
}

func (r *AnalyticsRepositoryImpl) CountOrdersByStatus() (map[models.OrderStatus]int64, error) {
	var rows []statusCount
	err := r.db.Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[models.OrderStatus]int64, len(rows))
	for _, row := range rows {
		out[models.OrderStatus(row.Status)] = row.Count
	}
	return out, nil
}

func (r *AnalyticsRepositoryImpl) CountOrdersBetween(from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *AnalyticsRepositoryImpl) SumRevenueBetween(from, to time.Time) (float64, error) {
	var sum float64
	err := r.db.Model(&models.Order{}).
		Where("payment_status = ? AND created_at >= ? AND created_at < ?",
			models.PaymentStatusPaid, from, to).
		Select("COALESCE(SUM(total), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *AnalyticsRepositoryImpl) SumRevenueAll() (float64, error) {
	var sum float64
	err := r.db.Model(&models.Order{}).
		Where("payment_status = ?", models.PaymentStatusPaid).
		Select("COALESCE(SUM(total), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *AnalyticsRepositoryImpl) CountUsersByRole() (map[models.UserRole]int64, error) {
	var rows []struct {
		Role  string
		Count int64
	}
	err := r.db.Model(&models.User{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[models.UserRole]int64, len(rows))
	for _, row := range rows {
		out[models.UserRole(row.Role)] = row.Count
	}
	return out, nil
}

func (r *AnalyticsRepositoryImpl) CountSignupsBetween(from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *AnalyticsRepositoryImpl) CountVendorsByStatus() (map[models.VendorStatus]int64, error) {
	var rows []statusCount
	err := r.db.Model(&models.VendorProfile{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[models.VendorStatus]int64, len(rows))
	for _, row := range rows {
		out[models.VendorStatus(row.Status)] = row.Count
	}
	return out, nil
}

func (r *AnalyticsRepositoryImpl) CountCommissionsByStatus() (map[models.CommissionStatus]int64, error) {
	var rows []statusCount
	err := r.db.Model(&models.Commission{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[models.CommissionStatus]int64, len(rows))
	for _, row := range rows {
		out[models.CommissionStatus(row.Status)] = row.Count
	}
	return out, nil
}

func (r *AnalyticsRepositoryImpl) CountProductsByType() (map[models.ProductType]int64, error) {
	var rows []struct {
		Type  string
		Count int64
	}
	err := r.db.Model(&models.Product{}).
		Select("type, COUNT(*) AS count").
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[models.ProductType]int64, len(rows))
	for _, row := range rows {
		out[models.ProductType(row.Type)] = row.Count
	}
	return out, nil
}

// MonthlySeries returns per-calendar-month order counts, paid revenue and
// signups for the last `months` months, oldest first. Months with no
// activity are still present.
func (r *AnalyticsRepositoryImpl) MonthlySeries(months int) ([]MonthBucket, error) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	buckets := make([]MonthBucket, 0, months)
	index := make(map[string]*MonthBucket, months)
	for i := 0; i < months; i++ {
		m := start.AddDate(0, i, 0)
		key := m.Format("2006-01")
		buckets = append(buckets, MonthBucket{Month: key})
		index[key] = &buckets[len(buckets)-1]
	}

	var orderRows []struct {
		Month   string
		Orders  int64
		Revenue float64
	}
	err := r.db.Model(&models.Order{}).
		Select("to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM') AS month, COUNT(*) AS orders, COALESCE(SUM(total) FILTER (WHERE payment_status = 'PAID'), 0) AS revenue").
		Where("created_at >= ?", start).
		Group("month").
		Scan(&orderRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range orderRows {
		if b, ok := index[row.Month]; ok {
			b.Orders = row.Orders
			b.Revenue = row.Revenue
		}
	}

	var signupRows []struct {
		Month   string
		Signups int64
	}
	err = r.db.Model(&models.User{}).
		Select("to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM') AS month, COUNT(*) AS signups").
		Where("created_at >= ?", start).
		Group("month").
		Scan(&signupRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range signupRows {
		if b, ok := index[row.Month]; ok {
			b.Signups = row.Signups
		}
	}

	return buckets, nil
}
