package services

import (
	"encoding/json"
	"net/http"

	"kalavpp_backend/internal/email"
	"kalavpp_backend/internal/logger"
	"kalavpp_backend/internal/models"
	"kalavpp_backend/internal/repositories"
	"kalavpp_backend/internal/services/dto"
	"kalavpp_backend/pkg/apperrors"
)

type CommissionService interface {
	Create(customerID string, req *dto.CreateCommissionRequest) (*dto.CommissionResponse, error)
	Get(actorID string, role models.UserRole, commissionID string) (*dto.CommissionResponse, error)
	List(actorID string, role models.UserRole, status string, page, limit int) (*dto.PaginatedResponse, error)
	Transition(actorID string, role models.UserRole, commissionID string, req *dto.CommissionTransitionRequest) (*dto.CommissionResponse, error)
}

type commissionService struct {
	commissionRepo repositories.CommissionRepository
	vendorRepo     repositories.VendorRepository
	serviceRepo    repositories.ServiceRepository
	userRepo       repositories.UserRepository
	sender         email.Sender
}

func NewCommissionService(
	commissionRepo repositories.CommissionRepository,
	vendorRepo repositories.VendorRepository,
	serviceRepo repositories.ServiceRepository,
	userRepo repositories.UserRepository,
	sender email.Sender,
) CommissionService {
	return &commissionService{
		commissionRepo: commissionRepo,
		vendorRepo:     vendorRepo,
		serviceRepo:    serviceRepo,
		userRepo:       userRepo,
		sender:         sender,
	}
}

func (s *commissionService) Create(customerID string, req *dto.CreateCommissionRequest) (*dto.CommissionResponse, error) {
	vendor, err := s.vendorRepo.FindByID(req.VendorID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("commission", "Vendor not found")
	}
	if vendor.Status != models.VendorStatusApproved {
		return nil, apperrors.NewConflictError("commission", "Vendor is not accepting commissions")
	}
	if vendor.UserID == customerID {
		return nil, apperrors.NewBadRequestError("You cannot commission your own store")
	}

	commission := &models.Commission{
		CustomerID:   customerID,
		VendorID:     vendor.ID,
		Title:        req.Title,
		Brief:        req.Brief,
		Budget:       req.Budget,
		Status:       models.CommissionStatusRequested,
		Deadline:     req.Deadline,
		MaxRevisions: 2,
	}

	if req.ServiceID != nil {
		service, err := s.serviceRepo.FindByID(*req.ServiceID)
		if err != nil {
			return nil, apperrors.NewNotFoundError("commission", "Service not found")
		}
		if service.VendorID != vendor.ID {
			return nil, apperrors.NewBadRequestError("Service does not belong to the chosen vendor")
		}
		if !service.IsActive {
			return nil, apperrors.NewConflictError("commission", "Service is not open for requests")
		}
		if req.Budget < service.BasePrice {
			return nil, apperrors.NewBadRequestError("Budget is below the service base price")
		}
		commission.ServiceID = req.ServiceID
		commission.MaxRevisions = service.MaxRevisions
	}

	if len(req.ReferenceImages) > 0 {
		raw, err := json.Marshal(req.ReferenceImages)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		commission.ReferenceImages = raw
	}

	if err := s.commissionRepo.Create(commission); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildCommissionResponse(commission), nil
}

func (s *commissionService) Get(actorID string, role models.UserRole, commissionID string) (*dto.CommissionResponse, error) {
	commission, err := s.findAuthorized(actorID, role, commissionID)
	if err != nil {
		return nil, err
	}
	return buildCommissionResponse(commission), nil
}

func (s *commissionService) List(actorID string, role models.UserRole, status string, page, limit int) (*dto.PaginatedResponse, error) {
	page, limit = normalizePage(page, limit)
	filter := repositories.CommissionFilter{
		Status: models.CommissionStatus(status),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	switch role {
	case models.UserRoleAdmin:
		// unrestricted
	case models.UserRoleVendor:
		profile, err := s.vendorRepo.FindByUserID(actorID)
		if err != nil {
			return nil, apperrors.NewNotFoundError("vendor", "Vendor profile not found")
		}
		filter.VendorID = profile.ID
	default:
		filter.CustomerID = actorID
	}

	commissions, total, err := s.commissionRepo.FindWithFilter(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]*dto.CommissionResponse, 0, len(commissions))
	for i := range commissions {
		out = append(out, buildCommissionResponse(&commissions[i]))
	}
	return dto.NewPaginatedResponse(out, total, page, limit), nil
}

// Transition moves a commission through its lifecycle. Vendors drive the
// production side (ACCEPTED, IN_PROGRESS, COMPLETED, plus cancelling before
// work starts); customers drive acceptance of the result
// (REVISION_REQUESTED, DELIVERED, plus cancelling an unanswered request);
// admins may apply any legal transition.
func (s *commissionService) Transition(actorID string, role models.UserRole, commissionID string, req *dto.CommissionTransitionRequest) (*dto.CommissionResponse, error) {
	commission, err := s.findAuthorized(actorID, role, commissionID)
	if err != nil {
		return nil, err
	}

	next := models.CommissionStatus(req.Status)
	if !commission.Status.CanTransitionTo(next) {
		return nil, apperrors.NewInvalidTransitionError("commission", string(commission.Status), string(next))
	}

	if role != models.UserRoleAdmin {
		party := models.UserRoleCustomer
		if role == models.UserRoleVendor && commission.CustomerID != actorID {
			party = models.UserRoleVendor
		}
		if err := authorizeCommissionTransition(party, commission.Status, next); err != nil {
			return nil, err
		}
	}

	if next == models.CommissionStatusRevisionRequested {
		if commission.CurrentRevision >= commission.MaxRevisions {
			return nil, apperrors.New(apperrors.CodeLimitExceeded, "commission",
				"Revision limit reached", http.StatusConflict)
		}
		commission.CurrentRevision++
	}

	commission.Status = next
	if err := s.commissionRepo.Update(commission); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if commission.Customer != nil {
		go func(to, title, status, id string) {
			if err := s.sender.SendCommissionUpdate(to, title, status); err != nil {
				logger.WithError(err).Warn("commission update email failed", "commission_id", id)
			}
		}(commission.Customer.Email, commission.Title, string(next), commission.ID)
	}

	return buildCommissionResponse(commission), nil
}

// authorizeCommissionTransition maps each legal edge to the role allowed to
// request it.
func authorizeCommissionTransition(role models.UserRole, from, to models.CommissionStatus) error {
	vendorDriven := map[models.CommissionStatus]bool{
		models.CommissionStatusAccepted:   true,
		models.CommissionStatusInProgress: true,
		models.CommissionStatusCompleted:  true,
	}
	customerDriven := map[models.CommissionStatus]bool{
		models.CommissionStatusRevisionRequested: true,
		models.CommissionStatusDelivered:         true,
	}

	switch role {
	case models.UserRoleVendor:
		if vendorDriven[to] {
			return nil
		}
		// Vendors may decline before work starts.
		if to == models.CommissionStatusCancelled &&
			(from == models.CommissionStatusRequested || from == models.CommissionStatusAccepted) {
			return nil
		}
	default:
		if customerDriven[to] {
			return nil
		}
		// Customers may withdraw an unanswered request.
		if to == models.CommissionStatusCancelled && from == models.CommissionStatusRequested {
			return nil
		}
	}
	return apperrors.NewForbiddenError("Your role may not apply this transition")
}

func (s *commissionService) findAuthorized(actorID string, role models.UserRole, commissionID string) (*models.Commission, error) {
	commission, err := s.commissionRepo.FindByID(commissionID)
	if err != nil {
		if err == repositories.ErrCommissionNotFound {
			return nil, apperrors.NewNotFoundError("commission", "Commission not found")
		}
		return nil, apperrors.InternalError(err)
	}

	switch role {
	case models.UserRoleAdmin:
		return commission, nil
	case models.UserRoleVendor:
		if commission.CustomerID == actorID {
			return commission, nil
		}
		profile, err := s.vendorRepo.FindByUserID(actorID)
		if err != nil || commission.VendorID != profile.ID {
			return nil, apperrors.NewForbiddenError("Access denied")
		}
		return commission, nil
	default:
		if commission.CustomerID != actorID {
			return nil, apperrors.NewForbiddenError("Access denied")
		}
		return commission, nil
	}
}

func buildCommissionResponse(c *models.Commission) *dto.CommissionResponse {
	return &dto.CommissionResponse{
		ID:              c.ID,
		CustomerID:      c.CustomerID,
		VendorID:        c.VendorID,
		ServiceID:       c.ServiceID,
		Title:           c.Title,
		Brief:           c.Brief,
		Budget:          c.Budget,
		Status:          string(c.Status),
		Deadline:        c.Deadline,
		CurrentRevision: c.CurrentRevision,
		MaxRevisions:    c.MaxRevisions,
		CreatedAt:       c.CreatedAt,
	}
}
