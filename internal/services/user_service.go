package services

import (
	"kalavpp_backend/internal/models"
	"kalavpp_backend/internal/repositories"
	"kalavpp_backend/internal/services/dto"
	"kalavpp_backend/pkg/apperrors"
)

// UserService covers admin user management and customer address books.
type UserService interface {
	ListUsers(role, search string, page, limit int) (*dto.PaginatedResponse, error)
	DeleteUser(id string) error

	ListAddresses(userID string) ([]*models.Address, error)
	CreateAddress(userID string, req *dto.CreateAddressRequest) (*models.Address, error)
	UpdateAddress(userID, addressID string, req *dto.UpdateAddressRequest) (*models.Address, error)
	DeleteAddress(userID, addressID string) error
	SetDefaultAddress(userID, addressID string) error
}

type userService struct {
	userRepo    repositories.UserRepository
	addressRepo repositories.AddressRepository
}

func NewUserService(userRepo repositories.UserRepository, addressRepo repositories.AddressRepository) UserService {
	return &userService{userRepo: userRepo, addressRepo: addressRepo}
}

func (s *userService) ListUsers(role, search string, page, limit int) (*dto.PaginatedResponse, error) {
	page, limit = normalizePage(page, limit)
	users, total, err := s.userRepo.FindWithFilter(repositories.UserFilter{
		Role:   models.UserRole(role),
		Search: search,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]*dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, buildUserResponse(&users[i]))
	}
	return dto.NewPaginatedResponse(out, total, page, limit), nil
}

func (s *userService) DeleteUser(id string) error {
	if err := s.userRepo.Delete(id); err != nil {
		if err == repositories.ErrUserNotFound {
			return apperrors.NewNotFoundError("user", "User not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *userService) ListAddresses(userID string) ([]*models.Address, error) {
	addresses, err := s.addressRepo.FindByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*models.Address, 0, len(addresses))
	for i := range addresses {
		out = append(out, &addresses[i])
	}
	return out, nil
}

func (s *userService) CreateAddress(userID string, req *dto.CreateAddressRequest) (*models.Address, error) {
	address := &models.Address{
		UserID:     userID,
		FullName:   req.FullName,
		Phone:      req.Phone,
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		IsDefault:  req.IsDefault,
	}
	if err := s.addressRepo.Create(address); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if address.IsDefault {
		if err := s.addressRepo.SetDefault(userID, address.ID); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}
	return address, nil
}

func (s *userService) UpdateAddress(userID, addressID string, req *dto.UpdateAddressRequest) (*models.Address, error) {
	address, err := s.ownedAddress(userID, addressID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		address.FullName = *req.FullName
	}
	if req.Phone != nil {
		address.Phone = *req.Phone
	}
	if req.Street != nil {
		address.Street = *req.Street
	}
	if req.City != nil {
		address.City = *req.City
	}
	if req.State != nil {
		address.State = *req.State
	}
	if req.PostalCode != nil {
		address.PostalCode = *req.PostalCode
	}
	if req.Country != nil {
		address.Country = *req.Country
	}

	if err := s.addressRepo.Update(address); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return address, nil
}

func (s *userService) DeleteAddress(userID, addressID string) error {
	if _, err := s.ownedAddress(userID, addressID); err != nil {
		return err
	}
	if err := s.addressRepo.Delete(addressID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *userService) SetDefaultAddress(userID, addressID string) error {
	if err := s.addressRepo.SetDefault(userID, addressID); err != nil {
		if err == repositories.ErrAddressNotFound {
			return apperrors.NewNotFoundError("address", "Address not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *userService) ownedAddress(userID, addressID string) (*models.Address, error) {
	address, err := s.addressRepo.FindByID(addressID)
	if err != nil || address.UserID != userID {
		return nil, apperrors.NewNotFoundError("address", "Address not found")
	}
	return address, nil
}
