package repositories

import (
	"errors"

	"gorm.io/gorm"

	"kalavpp_backend/internal/models"
)

var (
	ErrServiceNotFound = errors.New("service not found")
)

type ServiceFilter struct {
	Type       models.ServiceType
	Query      string
	VendorID   string
	PublicOnly bool
	Sort       string // newest | price_asc | price_desc
	Limit      int
	Offset     int
}

type ServiceRepository interface {
	Create(service *models.Service) error
	FindByID(id string) (*models.Service, error)
	Update(service *models.Service) error
	Delete(id string) error
	Search(filter ServiceFilter) ([]models.Service, int64, error)
	CountAll() (int64, error)
}

type ServiceRepositoryImpl struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &ServiceRepositoryImpl{db: db}
}

func (r *ServiceRepositoryImpl) Create(service *models.Service) error {
	return r.db.Create(service).Error
}

func (r *ServiceRepositoryImpl) FindByID(id string) (*models.Service, error) {
	var service models.Service
	err := r.db.Preload("Vendor").First(&service, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &service, nil
}

func (r *ServiceRepositoryImpl) Update(service *models.Service) error {
	return r.db.Save(service).Error
}

func (r *ServiceRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.Service{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (r *ServiceRepositoryImpl) Search(filter ServiceFilter) ([]models.Service, int64, error) {
	query := r.db.Model(&models.Service{})

	if filter.PublicOnly {
		query = query.
			Where("services.is_active = ?", true).
			Joins("JOIN vendor_profiles ON vendor_profiles.id = services.vendor_id").
			Where("vendor_profiles.status = ?", models.VendorStatusApproved)
	}
	if filter.VendorID != "" {
		query = query.Where("services.vendor_id = ?", filter.VendorID)
	}
	if filter.Type != "" {
		query = query.Where("services.type = ?", filter.Type)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where("services.title ILIKE ? OR services.description ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.Sort {
	case "price_asc":
		query = query.Order("services.base_price ASC")
	case "price_desc":
		query = query.Order("services.base_price DESC")
	default:
		query = query.Order("services.created_at DESC")
	}

	var services []models.Service
	err := query.Preload("Vendor").
		Limit(filter.Limit).Offset(filter.Offset).
		Find(&services).Error
	return services, total, err
}

func (r *ServiceRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Service{}).Count(&count).Error
	return count, err
}
