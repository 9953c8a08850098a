package services

import (
	"kalavpp_backend/internal/logger"
	"kalavpp_backend/internal/models"
	"kalavpp_backend/internal/repositories"
	"kalavpp_backend/internal/services/dto"
	"kalavpp_backend/pkg/apperrors"
)

type ReviewService interface {
	Create(userID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	ListForProduct(productID string, page, limit int) (*dto.PaginatedResponse, error)
	ListForService(serviceID string, page, limit int) (*dto.PaginatedResponse, error)
	Delete(actorID string, role models.UserRole, reviewID string) error
}

type reviewService struct {
	reviewRepo  repositories.ReviewRepository
	productRepo repositories.ProductRepository
	serviceRepo repositories.ServiceRepository
	vendorRepo  repositories.VendorRepository
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	productRepo repositories.ProductRepository,
	serviceRepo repositories.ServiceRepository,
	vendorRepo repositories.VendorRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		serviceRepo: serviceRepo,
		vendorRepo:  vendorRepo,
	}
}

// Create records a review against exactly one product or service. Product
// reviews are marked verified when the author has a delivered order
// containing that product.
func (s *reviewService) Create(userID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if (req.ProductID == nil) == (req.ServiceID == nil) {
		return nil, apperrors.NewBadRequestError("Exactly one of product_id or service_id is required")
	}

	review := &models.Review{
		UserID:  userID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	var vendorID string
	if req.ProductID != nil {
		product, err := s.productRepo.FindByID(*req.ProductID)
		if err != nil {
			return nil, apperrors.NewNotFoundError("review", "Product not found")
		}
		review.ProductID = req.ProductID
		vendorID = product.VendorID

		verified, err := s.reviewRepo.HasDeliveredOrderWithProduct(userID, *req.ProductID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		review.IsVerified = verified
	} else {
		service, err := s.serviceRepo.FindByID(*req.ServiceID)
		if err != nil {
			return nil, apperrors.NewNotFoundError("review", "Service not found")
		}
		review.ServiceID = req.ServiceID
		vendorID = service.VendorID
	}

	if err := s.reviewRepo.Create(review); err != nil {
		if err == repositories.ErrReviewAlreadyExists {
			return nil, apperrors.NewConflictError("review", "You have already reviewed this item")
		}
		return nil, apperrors.InternalError(err)
	}

	s.refreshVendorRating(vendorID)
	return buildReviewResponse(review), nil
}

func (s *reviewService) ListForProduct(productID string, page, limit int) (*dto.PaginatedResponse, error) {
	page, limit = normalizePage(page, limit)
	reviews, total, err := s.reviewRepo.FindByProduct(productID, limit, (page-1)*limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaginatedResponse(buildReviewResponses(reviews), total, page, limit), nil
}

func (s *reviewService) ListForService(serviceID string, page, limit int) (*dto.PaginatedResponse, error) {
	page, limit = normalizePage(page, limit)
	reviews, total, err := s.reviewRepo.FindByService(serviceID, limit, (page-1)*limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaginatedResponse(buildReviewResponses(reviews), total, page, limit), nil
}

func (s *reviewService) Delete(actorID string, role models.UserRole, reviewID string) error {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		return apperrors.NewNotFoundError("review", "Review not found")
	}
	if role != models.UserRoleAdmin && review.UserID != actorID {
		return apperrors.NewForbiddenError("Not your review")
	}
	if err := s.reviewRepo.Delete(reviewID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *reviewService) refreshVendorRating(vendorID string) {
	avg, err := s.reviewRepo.AverageRatingForVendor(vendorID)
	if err == nil {
		err = s.vendorRepo.UpdateRating(vendorID, avg)
	}
	if err != nil {
		logger.WithError(err).Warn("failed to refresh vendor rating", "vendor_id", vendorID)
	}
}

func buildReviewResponse(r *models.Review) *dto.ReviewResponse {
	resp := &dto.ReviewResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		ProductID:  r.ProductID,
		ServiceID:  r.ServiceID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		IsVerified: r.IsVerified,
		CreatedAt:  r.CreatedAt,
	}
	if r.User != nil {
		resp.UserName = r.User.Name
	}
	return resp
}

func buildReviewResponses(reviews []models.Review) []*dto.ReviewResponse {
	out := make([]*dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, buildReviewResponse(&reviews[i]))
	}
	return out
}
