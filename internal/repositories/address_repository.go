package repositories

import (
	"errors"

	"gorm.io/gorm"

	"kalavpp_backend/internal/models"
)

var (
	ErrAddressNotFound = errors.New("address not found")
)

type AddressRepository interface {
	Create(address *models.Address) error
	FindByID(id string) (*models.Address, error)
	FindByUser(userID string) ([]models.Address, error)
	Update(address *models.Address) error
	Delete(id string) error
	// SetDefault makes the address the user's default and clears the flag
	// on the rest.
	SetDefault(userID, addressID string) error
}

type AddressRepositoryImpl struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &AddressRepositoryImpl{db: db}
}

func (r *AddressRepositoryImpl) Create(address *models.Address) error {
	return r.db.Create(address).Error
}

func (r *AddressRepositoryImpl) FindByID(id string) (*models.Address, error) {
	var address models.Address
	err := r.db.First(&address, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	return &address, nil
}

func (r *AddressRepositoryImpl) FindByUser(userID string) ([]models.Address, error) {
	var addresses []models.Address
	err := r.db.Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error
	return addresses, err
}

func (r *AddressRepositoryImpl) Update(address *models.Address) error {
	return r.db.Save(address).Error
}

func (r *AddressRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.Address{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func (r *AddressRepositoryImpl) SetDefault(userID, addressID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Address{}).
			Where("user_id = ?", userID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		result := tx.Model(&models.Address{}).
			Where("id = ? AND user_id = ?", addressID, userID).
			Update("is_default", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAddressNotFound
		}
		return nil
	})
}
