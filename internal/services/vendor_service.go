package services

import (
	"kalavpp_backend/internal/email"
	"kalavpp_backend/internal/logger"
	"kalavpp_backend/internal/models"
	"kalavpp_backend/internal/repositories"
	"kalavpp_backend/internal/services/dto"
	"kalavpp_backend/pkg/apperrors"
)

type VendorService interface {
	GetStorefront(slug string) (*dto.VendorProfileResponse, error)
	GetOwnProfile(userID string) (*dto.VendorProfileResponse, error)
	UpdateOwnProfile(userID string, req *dto.UpdateVendorProfileRequest) (*dto.VendorProfileResponse, error)

	// Admin moderation
	ListVendors(status string, page, limit int) (*dto.PaginatedResponse, error)
	Moderate(vendorID string, req *dto.VendorModerationRequest) (*dto.VendorProfileResponse, error)
}

type vendorService struct {
	vendorRepo repositories.VendorRepository
	sender     email.Sender
}

func NewVendorService(vendorRepo repositories.VendorRepository, sender email.Sender) VendorService {
	return &vendorService{vendorRepo: vendorRepo, sender: sender}
}

// GetStorefront resolves a public store page. Only approved stores are
// visible.
func (s *vendorService) GetStorefront(slug string) (*dto.VendorProfileResponse, error) {
	profile, err := s.vendorRepo.FindBySlug(slug)
	if err != nil {
		return nil, apperrors.NewNotFoundError("vendor", "Store not found")
	}
	if profile.Status != models.VendorStatusApproved {
		return nil, apperrors.NewNotFoundError("vendor", "Store not found")
	}
	return buildVendorProfileResponse(profile), nil
}

func (s *vendorService) GetOwnProfile(userID string) (*dto.VendorProfileResponse, error) {
	profile, err := s.vendorRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("vendor", "Vendor profile not found")
	}
	return buildVendorProfileResponse(profile), nil
}

func (s *vendorService) UpdateOwnProfile(userID string, req *dto.UpdateVendorProfileRequest) (*dto.VendorProfileResponse, error) {
	profile, err := s.vendorRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("vendor", "Vendor profile not found")
	}

	if req.StoreName != nil {
		profile.StoreName = *req.StoreName
	}
	if req.Description != nil {
		profile.Description = *req.Description
	}
	if req.LogoURL != nil {
		profile.LogoURL = *req.LogoURL
	}

	if err := s.vendorRepo.Update(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildVendorProfileResponse(profile), nil
}

func (s *vendorService) ListVendors(status string, page, limit int) (*dto.PaginatedResponse, error) {
	page, limit = normalizePage(page, limit)
	profiles, total, err := s.vendorRepo.FindAll(models.VendorStatus(status), limit, (page-1)*limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]*dto.VendorProfileResponse, 0, len(profiles))
	for i := range profiles {
		out = append(out, buildVendorProfileResponse(&profiles[i]))
	}
	return dto.NewPaginatedResponse(out, total, page, limit), nil
}

func (s *vendorService) Moderate(vendorID string, req *dto.VendorModerationRequest) (*dto.VendorProfileResponse, error) {
	profile, err := s.vendorRepo.FindByID(vendorID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("vendor", "Vendor profile not found")
	}

	next := models.VendorStatus(req.Status)
	if err := s.vendorRepo.UpdateStatus(profile.ID, next); err != nil {
		return nil, apperrors.InternalError(err)
	}
	profile.Status = next

	if profile.User != nil {
		approved := next == models.VendorStatusApproved
		go func(to, store, id string) {
			if err := s.sender.SendVendorDecision(to, store, approved); err != nil {
				logger.WithError(err).Warn("vendor decision email failed", "vendor_id", id)
			}
		}(profile.User.Email, profile.StoreName, profile.ID)
	}

	return buildVendorProfileResponse(profile), nil
}
