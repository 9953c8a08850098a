package repositories

import (
	"errors"

	"gorm.io/gorm"

	"kalavpp_backend/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductFilter drives catalog browsing. PublicOnly restricts results to
// ACTIVE products of APPROVED vendors.
type ProductFilter struct {
	CategorySlug string
	Type         models.ProductType
	Query        string
	Featured     *bool
	VendorID     string
	Status       models.ProductStatus
	PublicOnly   bool
	Sort         string // newest | price_asc | price_desc | title
	Limit        int
	Offset       int
}

type ProductRepository interface {
	Create(product *models.Product) error
	FindByID(id string) (*models.Product, error)
	FindByIDs(ids []string) ([]models.Product, error)
	Update(product *models.Product) error
	Delete(id string) error
	Search(filter ProductFilter) ([]models.Product, int64, error)
	CountByVendor(vendorID string) (int64, error)
	CountAll() (int64, error)
	FindAllForExport() ([]models.Product, error)
}

type ProductRepositoryImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &ProductRepositoryImpl{db: db}
}

func (r *ProductRepositoryImpl) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *ProductRepositoryImpl) FindByID(id string) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Vendor").Preload("Category").First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepositoryImpl) FindByIDs(ids []string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *ProductRepositoryImpl) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

func (r *ProductRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *ProductRepositoryImpl) Search(filter ProductFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})

	if filter.PublicOnly {
		query = query.
			Where("products.status = ?", models.ProductStatusActive).
			Joins("JOIN vendor_profiles ON vendor_profiles.id = products.vendor_id").
			Where("vendor_profiles.status = ?", models.VendorStatusApproved)
	}
	if filter.Status != "" {
		query = query.Where("products.status = ?", filter.Status)
	}
	if filter.VendorID != "" {
		query = query.Where("products.vendor_id = ?", filter.VendorID)
	}
	if filter.CategorySlug != "" {
		query = query.
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.Type != "" {
		query = query.Where("products.type = ?", filter.Type)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where("products.title ILIKE ? OR products.description ILIKE ?", like, like)
	}
	if filter.Featured != nil {
		query = query.Where("products.is_featured = ?", *filter.Featured)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.Sort {
	case "price_asc":
		query = query.Order("products.price ASC")
	case "price_desc":
		query = query.Order("products.price DESC")
	case "title":
		query = query.Order("products.title ASC")
	default:
		query = query.Order("products.created_at DESC")
	}

	var products []models.Product
	err := query.Preload("Vendor").Preload("Category").
		Limit(filter.Limit).Offset(filter.Offset).
		Find(&products).Error
	return products, total, err
}

func (r *ProductRepositoryImpl) CountByVendor(vendorID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("vendor_id = ?", vendorID).Count(&count).Error
	return count, err
}

func (r *ProductRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Count(&count).Error
	return count, err
}

func (r *ProductRepositoryImpl) FindAllForExport() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Preload("Vendor").Preload("Category").
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}
