package services

import (
	"context"
	"encoding/json"
	"time"

	"kalavpp_backend/internal/cache"
	"kalavpp_backend/internal/logger"
	"kalavpp_backend/internal/models"
	"kalavpp_backend/internal/repositories"
	"kalavpp_backend/internal/services/dto"
	"kalavpp_backend/pkg/apperrors"
)

const (
	featuredCacheKey = "catalog:products:featured"
	featuredCacheTTL = 60 * time.Second
)

// CatalogService covers products, bespoke services and categories: the public
// read side plus vendor-scoped and admin-scoped writes.
type CatalogService interface {
	// Public catalog
	BrowseProducts(ctx context.Context, query *dto.BrowseProductsQuery) (*dto.PaginatedResponse, error)
	GetPublicProduct(id string) (*dto.ProductResponse, error)
	BrowseServices(query *dto.BrowseServicesQuery) (*dto.PaginatedResponse, error)
	GetPublicService(id string) (*dto.ServiceResponse, error)
	ListCategories() ([]*dto.CategoryResponse, error)

	// Vendor-scoped product management
	CreateProduct(vendorUserID string, req *dto.CreateProductRequest) (*dto.ProductResponse, error)
	UpdateProduct(vendorUserID string, productID string, req *dto.UpdateProductRequest) (*dto.ProductResponse, error)
	DeleteProduct(vendorUserID string, productID string) error
	ListVendorProducts(vendorUserID string, page, limit int) (*dto.PaginatedResponse, error)

	// Vendor-scoped service management
	CreateService(vendorUserID string, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	UpdateService(vendorUserID string, serviceID string, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error)
	DeleteService(vendorUserID string, serviceID string) error
	ListVendorServices(vendorUserID string, page, limit int) (*dto.PaginatedResponse, error)

	// Admin category management
	CreateCategory(req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	UpdateCategory(id string, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(id string) error
}

type catalogService struct {
	productRepo  repositories.ProductRepository
	serviceRepo  repositories.ServiceRepository
	categoryRepo repositories.CategoryRepository
	vendorRepo   repositories.VendorRepository
	cache        *cache.Cache
}

func NewCatalogService(
	productRepo repositories.ProductRepository,
	serviceRepo repositories.ServiceRepository,
	categoryRepo repositories.CategoryRepository,
	vendorRepo repositories.VendorRepository,
	c *cache.Cache,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		serviceRepo:  serviceRepo,
		categoryRepo: categoryRepo,
		vendorRepo:   vendorRepo,
		cache:        c,
	}
}

// --- Public catalog ---

func (s *catalogService) BrowseProducts(ctx context.Context, query *dto.BrowseProductsQuery) (*dto.PaginatedResponse, error) {
	page, limit := normalizePage(query.Page, query.Limit)

	// The bare featured front-page query is hot and tolerates short staleness.
	cacheable := query.Featured != nil && *query.Featured &&
		query.Category == "" && query.Type == "" && query.Query == "" &&
		query.Sort == "" && page == 1 && query.Limit == 0
	if cacheable {
		var cached dto.PaginatedResponse
		if hit, err := s.cache.Get(ctx, featuredCacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	filter := repositories.ProductFilter{
		CategorySlug: query.Category,
		Type:         models.ProductType(query.Type),
		Query:        query.Query,
		Featured:     query.Featured,
		PublicOnly:   true,
		Sort:         query.Sort,
		Limit:        limit,
		Offset:       (page - 1) * limit,
	}

	products, total, err := s.productRepo.Search(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewPaginatedResponse(buildProductResponses(products), total, page, limit)
	if cacheable {
		if err := s.cache.Set(ctx, featuredCacheKey, resp, featuredCacheTTL); err != nil {
			logger.WithError(err).Warn("failed to cache featured products")
		}
	}
	return resp, nil
}

func (s *catalogService) GetPublicProduct(id string) (*dto.ProductResponse, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, apperrors.NewNotFoundError("catalog", "Product not found")
	}
	// Hidden listings and unapproved stores look identical to missing ones.
	if product.Status != models.ProductStatusActive && product.Status != models.ProductStatusSoldOut {
		return nil, apperrors.NewNotFoundError("catalog", "Product not found")
	}
	if product.Vendor == nil || product.Vendor.Status != models.VendorStatusApproved {
		return nil, apperrors.NewNotFoundError("catalog", "Product not found")
	}
	return buildProductResponse(product), nil
}

func (s *catalogService) BrowseServices(query *dto.BrowseServicesQuery) (*dto.PaginatedResponse, error) {
	page, limit := normalizePage(query.Page, query.Limit)
	filter := repositories.ServiceFilter{
		Type:       models.ServiceType(query.Type),
		Query:      query.Query,
		PublicOnly: true,
		Sort:       query.Sort,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	services, total, err := s.serviceRepo.Search(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaginatedResponse(buildServiceResponses(services), total, page, limit), nil
}

func (s *catalogService) GetPublicService(id string) (*dto.ServiceResponse, error) {
	service, err := s.serviceRepo.FindByID(id)
	if err != nil {
		return nil, apperrors.NewNotFoundError("catalog", "Service not found")
	}
	if !service.IsActive || service.Vendor == nil || service.Vendor.Status != models.VendorStatusApproved {
		return nil, apperrors.NewNotFoundError("catalog", "Service not found")
	}
	return buildServiceResponse(service), nil
}

func (s *catalogService) ListCategories() ([]*dto.CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, buildCategoryResponse(&categories[i]))
	}
	return out, nil
}

// --- Vendor product management ---

func (s *catalogService) CreateProduct(vendorUserID string, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	profile, err := s.requireVendor(vendorUserID)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*req.CategoryID); err != nil {
			return nil, apperrors.NewBadRequestError("Unknown category")
		}
	}

	product := &models.Product{
		VendorID:      profile.ID,
		CategoryID:    req.CategoryID,
		Title:         req.Title,
		Description:   req.Description,
		Type:          models.ProductType(req.Type),
		Status:        models.ProductStatusDraft,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
	}
	if len(req.Tags) > 0 {
		raw, err := json.Marshal(req.Tags)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		product.Tags = raw
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildProductResponse(product), nil
}

func (s *catalogService) UpdateProduct(vendorUserID string, productID string, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := s.ownedProduct(vendorUserID, productID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		product.Title = *req.Title
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
		// Restocking a sold-out listing makes it purchasable again.
		if product.Status == models.ProductStatusSoldOut && *req.StockQuantity > 0 {
			product.Status = models.ProductStatusActive
		}
	}
	if req.Status != nil {
		product.Status = models.ProductStatus(*req.Status)
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*req.CategoryID); err != nil {
			return nil, apperrors.NewBadRequestError("Unknown category")
		}
		product.CategoryID = req.CategoryID
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.Tags != nil {
		raw, err := json.Marshal(req.Tags)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		product.Tags = raw
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildProductResponse(product), nil
}

func (s *catalogService) DeleteProduct(vendorUserID string, productID string) error {
	product, err := s.ownedProduct(vendorUserID, productID)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(product.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *catalogService) ListVendorProducts(vendorUserID string, page, limit int) (*dto.PaginatedResponse, error) {
	profile, err := s.requireVendor(vendorUserID)
	if err != nil {
		return nil, err
	}
	page, limit = normalizePage(page, limit)

	products, total, err := s.productRepo.Search(repositories.ProductFilter{
		VendorID: profile.ID,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaginatedResponse(buildProductResponses(products), total, page, limit), nil
}

// --- Vendor service management ---

func (s *catalogService) CreateService(vendorUserID string, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	profile, err := s.requireVendor(vendorUserID)
	if err != nil {
		return nil, err
	}

	service := &models.Service{
		VendorID:     profile.ID,
		Title:        req.Title,
		Description:  req.Description,
		Type:         models.ServiceType(req.Type),
		BasePrice:    req.BasePrice,
		DeliveryDays: req.DeliveryDays,
		MaxRevisions: req.MaxRevisions,
		ImageURL:     req.ImageURL,
		IsActive:     true,
	}
	if service.DeliveryDays == 0 {
		service.DeliveryDays = 7
	}
	if service.MaxRevisions == 0 {
		service.MaxRevisions = 2
	}

	if err := s.serviceRepo.Create(service); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildServiceResponse(service), nil
}

func (s *catalogService) UpdateService(vendorUserID string, serviceID string, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	service, err := s.ownedService(vendorUserID, serviceID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		service.Title = *req.Title
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.BasePrice != nil {
		service.BasePrice = *req.BasePrice
	}
	if req.DeliveryDays != nil {
		service.DeliveryDays = *req.DeliveryDays
	}
	if req.MaxRevisions != nil {
		service.MaxRevisions = *req.MaxRevisions
	}
	if req.ImageURL != nil {
		service.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := s.serviceRepo.Update(service); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildServiceResponse(service), nil
}

func (s *catalogService) DeleteService(vendorUserID string, serviceID string) error {
	service, err := s.ownedService(vendorUserID, serviceID)
	if err != nil {
		return err
	}
	if err := s.serviceRepo.Delete(service.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *catalogService) ListVendorServices(vendorUserID string, page, limit int) (*dto.PaginatedResponse, error) {
	profile, err := s.requireVendor(vendorUserID)
	if err != nil {
		return nil, err
	}
	page, limit = normalizePage(page, limit)

	services, total, err := s.serviceRepo.Search(repositories.ServiceFilter{
		VendorID: profile.ID,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaginatedResponse(buildServiceResponses(services), total, page, limit), nil
}

// --- Category management ---

func (s *catalogService) CreateCategory(req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if _, err := s.categoryRepo.FindBySlug(req.Slug); err == nil {
		return nil, apperrors.NewConflictError("catalog", "Category slug already exists")
	}

	category := &models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildCategoryResponse(category), nil
}

func (s *catalogService) UpdateCategory(id string, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, apperrors.NewNotFoundError("catalog", "Category not found")
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildCategoryResponse(category), nil
}

func (s *catalogService) DeleteCategory(id string) error {
	err := s.categoryRepo.Delete(id)
	switch err {
	case nil:
		return nil
	case repositories.ErrCategoryNotFound:
		return apperrors.NewNotFoundError("catalog", "Category not found")
	case repositories.ErrCategoryInUse:
		return apperrors.NewConflictError("catalog", "Category still has products attached")
	default:
		return apperrors.InternalError(err)
	}
}

// --- helpers ---

func (s *catalogService) requireVendor(userID string) (*models.VendorProfile, error) {
	profile, err := s.vendorRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.NewForbiddenError("Vendor profile not found")
	}
	return profile, nil
}

func (s *catalogService) ownedProduct(vendorUserID, productID string) (*models.Product, error) {
	profile, err := s.requireVendor(vendorUserID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("catalog", "Product not found")
	}
	if product.VendorID != profile.ID {
		return nil, apperrors.NewForbiddenError("Not your product")
	}
	return product, nil
}

func (s *catalogService) ownedService(vendorUserID, serviceID string) (*models.Service, error) {
	profile, err := s.requireVendor(vendorUserID)
	if err != nil {
		return nil, err
	}
	service, err := s.serviceRepo.FindByID(serviceID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("catalog", "Service not found")
	}
	if service.VendorID != profile.ID {
		return nil, apperrors.NewForbiddenError("Not your service")
	}
	return service, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func buildProductResponse(p *models.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:            p.ID,
		VendorID:      p.VendorID,
		CategoryID:    p.CategoryID,
		Title:         p.Title,
		Description:   p.Description,
		Type:          string(p.Type),
		Status:        string(p.Status),
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageURL,
		IsFeatured:    p.IsFeatured,
		CreatedAt:     p.CreatedAt,
	}
	if len(p.Tags) > 0 {
		var tags []string
		if err := json.Unmarshal(p.Tags, &tags); err == nil {
			resp.Tags = tags
		}
	}
	if p.Vendor != nil {
		resp.Vendor = buildVendorProfileResponse(p.Vendor)
	}
	if p.Category != nil {
		resp.Category = buildCategoryResponse(p.Category)
	}
	return resp
}

func buildProductResponses(products []models.Product) []*dto.ProductResponse {
	out := make([]*dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, buildProductResponse(&products[i]))
	}
	return out
}

func buildServiceResponse(s *models.Service) *dto.ServiceResponse {
	resp := &dto.ServiceResponse{
		ID:           s.ID,
		VendorID:     s.VendorID,
		Title:        s.Title,
		Description:  s.Description,
		Type:         string(s.Type),
		BasePrice:    s.BasePrice,
		DeliveryDays: s.DeliveryDays,
		MaxRevisions: s.MaxRevisions,
		ImageURL:     s.ImageURL,
		IsActive:     s.IsActive,
		CreatedAt:    s.CreatedAt,
	}
	if s.Vendor != nil {
		resp.Vendor = buildVendorProfileResponse(s.Vendor)
	}
	return resp
}

func buildServiceResponses(services []models.Service) []*dto.ServiceResponse {
	out := make([]*dto.ServiceResponse, 0, len(services))
	for i := range services {
		out = append(out, buildServiceResponse(&services[i]))
	}
	return out
}

func buildCategoryResponse(c *models.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
	}
}
