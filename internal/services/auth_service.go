package services

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"kalavpp_backend/internal/auth"
	"kalavpp_backend/internal/config"
	"kalavpp_backend/internal/models"
	"kalavpp_backend/internal/repositories"
	"kalavpp_backend/internal/services/dto"
	"kalavpp_backend/pkg/apperrors"
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(refreshToken string) (*dto.AuthResponse, error)
	Logout(refreshToken string) error
	GetMe(userID string) (*dto.UserResponse, error)
	UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

type authService struct {
	userRepo   repositories.UserRepository
	vendorRepo repositories.VendorRepository
}

func NewAuthService(userRepo repositories.UserRepository, vendorRepo repositories.VendorRepository) AuthService {
	return &authService{
		userRepo:   userRepo,
		vendorRepo: vendorRepo,
	}
}

func (s *authService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	role := models.UserRole(req.Role)
	if role == models.UserRoleVendor && strings.TrimSpace(req.StoreName) == "" {
		return nil, apperrors.NewBadRequestError("store_name is required for vendor registration")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        strings.ToLower(req.Email),
		Name:         req.Name,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.userRepo.Create(user); err != nil {
		if err == repositories.ErrUserAlreadyExists {
			return nil, apperrors.New(apperrors.CodeAlreadyExists, "auth", "Email already registered", http.StatusConflict)
		}
		return nil, apperrors.InternalError(err)
	}

	// Vendor stores open in PENDING and stay undiscoverable until an admin
	// approves them.
	if role == models.UserRoleVendor {
		profile := &models.VendorProfile{
			UserID:    user.ID,
			StoreName: req.StoreName,
			StoreSlug: slugify(req.StoreName),
			Status:    models.VendorStatusPending,
		}
		if err := s.vendorRepo.Create(profile); err != nil {
			if err == repositories.ErrSlugAlreadyTaken {
				profile.StoreSlug = profile.StoreSlug + "-" + uuid.NewString()[:8]
				err = s.vendorRepo.Create(profile)
			}
			if err != nil {
				return nil, apperrors.InternalError(err)
			}
		}
		user.VendorProfile = profile
	}

	return s.issueTokens(user)
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(strings.ToLower(req.Email))
	if err != nil {
		return nil, apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid email or password", http.StatusUnauthorized)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid email or password", http.StatusUnauthorized)
	}

	return s.issueTokens(user)
}

func (s *authService) Refresh(refreshToken string) (*dto.AuthResponse, error) {
	stored, err := s.userRepo.FindRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeInvalidToken, "auth", "Invalid refresh token", http.StatusUnauthorized)
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.userRepo.DeleteRefreshToken(refreshToken)
		return nil, apperrors.New(apperrors.CodeTokenExpired, "auth", "Refresh token expired", http.StatusUnauthorized)
	}

	user, err := s.userRepo.FindByID(stored.UserID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("User no longer exists")
	}

	// Rotate: the old refresh token is single-use.
	_ = s.userRepo.DeleteRefreshToken(refreshToken)
	return s.issueTokens(user)
}

func (s *authService) Logout(refreshToken string) error {
	return s.userRepo.DeleteRefreshToken(refreshToken)
}

func (s *authService) GetMe(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("user", "User not found")
	}
	return buildUserResponse(user), nil
}

func (s *authService) UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("user", "User not found")
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildUserResponse(user), nil
}

func (s *authService) issueTokens(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	cfg := config.GetConfig()
	refreshToken := &models.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(time.Duration(cfg.JWT.RefreshTTL) * time.Hour),
	}
	if err := s.userRepo.CreateRefreshToken(refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
		User:         buildUserResponse(user),
	}, nil
}

func buildUserResponse(user *models.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      string(user.Role),
		AvatarURL: user.AvatarURL,
		Bio:       user.Bio,
	}
	if user.VendorProfile != nil {
		resp.VendorProfile = buildVendorProfileResponse(user.VendorProfile)
	}
	return resp
}

func buildVendorProfileResponse(p *models.VendorProfile) *dto.VendorProfileResponse {
	return &dto.VendorProfileResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		StoreName:   p.StoreName,
		StoreSlug:   p.StoreSlug,
		Description: p.Description,
		LogoURL:     p.LogoURL,
		Status:      string(p.Status),
		Rating:      p.Rating,
		TotalSales:  p.TotalSales,
		CreatedAt:   p.CreatedAt,
	}
}

// slugify lowercases and dash-joins a store name for URL use.
func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
