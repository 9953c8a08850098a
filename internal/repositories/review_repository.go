package repositories

import (
	"errors"

	"gorm.io/gorm"

	"kalavpp_backend/internal/models"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for this target")
)

type ReviewRepository interface {
	Create(review *models.Review) error
	FindByID(id string) (*models.Review, error)
	FindByProduct(productID string, limit, offset int) ([]models.Review, int64, error)
	FindByService(serviceID string, limit, offset int) ([]models.Review, int64, error)
	Delete(id string) error
	AverageRatingForVendor(vendorID string) (float64, error)
	// HasDeliveredOrderWithProduct reports whether the user has a delivered
	// order containing the product; used to mark reviews verified.
	HasDeliveredOrderWithProduct(userID, productID string) (bool, error)
}

type ReviewRepositoryImpl struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &ReviewRepositoryImpl{db: db}
}

func (r *ReviewRepositoryImpl) Create(review *models.Review) error {
	query := r.db.Model(&models.Review{}).Where("user_id = ?", review.UserID)
	if review.ProductID != nil {
		query = query.Where("product_id = ?", *review.ProductID)
	} else if review.ServiceID != nil {
		query = query.Where("service_id = ?", *review.ServiceID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrReviewAlreadyExists
	}

	return r.db.Create(review).Error
}

func (r *ReviewRepositoryImpl) FindByID(id string) (*models.Review, error) {
	var review models.Review
	err := r.db.Preload("User").First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindByProduct(productID string, limit, offset int) ([]models.Review, int64, error) {
	query := r.db.Model(&models.Review{}).Where("product_id = ?", productID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := query.Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error
	return reviews, total, err
}

func (r *ReviewRepositoryImpl) FindByService(serviceID string, limit, offset int) ([]models.Review, int64, error) {
	query := r.db.Model(&models.Review{}).Where("service_id = ?", serviceID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := query.Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error
	return reviews, total, err
}

func (r *ReviewRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.Review{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepositoryImpl) AverageRatingForVendor(vendorID string) (float64, error) {
	var avg float64
	err := r.db.Model(&models.Review{}).
		Joins("LEFT JOIN products ON products.id = reviews.product_id").
		Joins("LEFT JOIN services ON services.id = reviews.service_id").
		Where("products.vendor_id = ? OR services.vendor_id = ?", vendorID, vendorID).
		Select("COALESCE(AVG(reviews.rating), 0)").
		Scan(&avg).Error
	return avg, err
}

func (r *ReviewRepositoryImpl) HasDeliveredOrderWithProduct(userID, productID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND orders.status = ? AND order_items.product_id = ?",
			userID, models.OrderStatusDelivered, productID).
		Count(&count).Error
	return count > 0, err
}
