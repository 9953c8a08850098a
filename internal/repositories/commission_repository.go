package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"kalavpp_backend/internal/models"
)

var (
	ErrCommissionNotFound = errors.New("commission not found")
)

type CommissionFilter struct {
	CustomerID string
	VendorID   string
	Status     models.CommissionStatus
	Limit      int
	Offset     int
}

type CommissionRepository interface {
	Create(commission *models.Commission) error
	FindByID(id string) (*models.Commission, error)
	Update(commission *models.Commission) error
	FindWithFilter(filter CommissionFilter) ([]models.Commission, int64, error)
	CountByStatus(status models.CommissionStatus) (int64, error)
	CancelExpiredRequests(now time.Time) (int64, error)
	FindAllForExport() ([]models.Commission, error)
}

type CommissionRepositoryImpl struct {
	db *gorm.DB
}

func NewCommissionRepository(db *gorm.DB) CommissionRepository {
	return &CommissionRepositoryImpl{db: db}
}

func (r *CommissionRepositoryImpl) Create(commission *models.Commission) error {
	return r.db.Create(commission).Error
}

func (r *CommissionRepositoryImpl) FindByID(id string) (*models.Commission, error) {
	var commission models.Commission
	err := r.db.Preload("Customer").Preload("Vendor").Preload("Service").
		First(&commission, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommissionNotFound
		}
		return nil, err
	}
	return &commission, nil
}

func (r *CommissionRepositoryImpl) Update(commission *models.Commission) error {
	return r.db.Save(commission).Error
}

func (r *CommissionRepositoryImpl) FindWithFilter(filter CommissionFilter) ([]models.Commission, int64, error) {
	query := r.db.Model(&models.Commission{})

	if filter.CustomerID != "" {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.VendorID != "" {
		query = query.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var commissions []models.Commission
	err := query.Preload("Customer").Preload("Vendor").Preload("Service").
		Order("created_at DESC").
		Limit(filter.Limit).Offset(filter.Offset).
		Find(&commissions).Error
	return commissions, total, err
}

func (r *CommissionRepositoryImpl) CountByStatus(status models.CommissionStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Commission{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// CancelExpiredRequests cancels commissions still awaiting a vendor response
// past their deadline.
func (r *CommissionRepositoryImpl) CancelExpiredRequests(now time.Time) (int64, error) {
	result := r.db.Model(&models.Commission{}).
		Where("status = ? AND deadline IS NOT NULL AND deadline < ?",
			models.CommissionStatusRequested, now).
		Update("status", models.CommissionStatusCancelled)
	return result.RowsAffected, result.Error
}

func (r *CommissionRepositoryImpl) FindAllForExport() ([]models.Commission, error) {
	var commissions []models.Commission
	err := r.db.Preload("Customer").Preload("Vendor").
		Order("created_at DESC").
		Find(&commissions).Error
	return commissions, err
}
