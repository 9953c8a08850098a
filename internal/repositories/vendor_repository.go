package repositories

import (
	"errors"

	"gorm.io/gorm"

	"kalavpp_backend/internal/models"
)

var (
	ErrVendorNotFound   = errors.New("vendor profile not found")
	ErrSlugAlreadyTaken = errors.New("store slug already taken")
)

type VendorRepository interface {
	Create(profile *models.VendorProfile) error
	FindByID(id string) (*models.VendorProfile, error)
	FindByUserID(userID string) (*models.VendorProfile, error)
	FindBySlug(slug string) (*models.VendorProfile, error)
	Update(profile *models.VendorProfile) error
	UpdateStatus(id string, status models.VendorStatus) error
	FindAll(status models.VendorStatus, limit, offset int) ([]models.VendorProfile, int64, error)
	CountByStatus(status models.VendorStatus) (int64, error)
	AddSales(id string, delta int64) error
	UpdateRating(id string, rating float64) error
	FindAllForExport() ([]models.VendorProfile, error)
}

type VendorRepositoryImpl struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &VendorRepositoryImpl{db: db}
}

func (r *VendorRepositoryImpl) Create(profile *models.VendorProfile) error {
	var count int64
	if err := r.db.Model(&models.VendorProfile{}).Where("store_slug = ?", profile.StoreSlug).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugAlreadyTaken
	}
	return r.db.Create(profile).Error
}

func (r *VendorRepositoryImpl) FindByID(id string) (*models.VendorProfile, error) {
	var profile models.VendorProfile
	err := r.db.Preload("User").First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *VendorRepositoryImpl) FindByUserID(userID string) (*models.VendorProfile, error) {
	var profile models.VendorProfile
	err := r.db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *VendorRepositoryImpl) FindBySlug(slug string) (*models.VendorProfile, error) {
	var profile models.VendorProfile
	err := r.db.Preload("User").First(&profile, "store_slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *VendorRepositoryImpl) Update(profile *models.VendorProfile) error {
	return r.db.Save(profile).Error
}

func (r *VendorRepositoryImpl) UpdateStatus(id string, status models.VendorStatus) error {
	result := r.db.Model(&models.VendorProfile{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVendorNotFound
	}
	return nil
}

func (r *VendorRepositoryImpl) FindAll(status models.VendorStatus, limit, offset int) ([]models.VendorProfile, int64, error) {
	query := r.db.Model(&models.VendorProfile{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []models.VendorProfile
	err := query.Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&profiles).Error
	return profiles, total, err
}

func (r *VendorRepositoryImpl) CountByStatus(status models.VendorStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.VendorProfile{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *VendorRepositoryImpl) AddSales(id string, delta int64) error {
	return r.db.Model(&models.VendorProfile{}).Where("id = ?", id).
		Update("total_sales", gorm.Expr("total_sales + ?", delta)).Error
}

func (r *VendorRepositoryImpl) UpdateRating(id string, rating float64) error {
	return r.db.Model(&models.VendorProfile{}).Where("id = ?", id).
		Update("rating", rating).Error
}

func (r *VendorRepositoryImpl) FindAllForExport() ([]models.VendorProfile, error) {
	var profiles []models.VendorProfile
	err := r.db.Preload("User").Order("created_at DESC").Find(&profiles).Error
	return profiles, err
}
