package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kalavpp_backend/internal/middleware"
	"kalavpp_backend/internal/models"
	"kalavpp_backend/internal/services"
	"kalavpp_backend/internal/services/dto"
)

// CatalogHandler serves the public browse surface and the vendor-facing
// product and service management endpoints.
type CatalogHandler struct {
	BaseHandler
	catalogService services.CatalogService
}

func NewCatalogHandler(base BaseHandler, catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{BaseHandler: base, catalogService: catalogService}
}

func (h *CatalogHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/products", h.BrowseProducts)
	public.GET("/products/:id", h.GetProduct)
	public.GET("/services", h.BrowseServices)
	public.GET("/services/:id", h.GetService)
	public.GET("/categories", h.ListCategories)

	vendor := authed.Group("/vendor", middleware.RequireRoles(models.UserRoleVendor, models.UserRoleAdmin))
	{
		vendor.GET("/products", h.ListOwnProducts)
		vendor.POST("/products", h.CreateProduct)
		vendor.PATCH("/products/:id", h.UpdateProduct)
		vendor.DELETE("/products/:id", h.DeleteProduct)

		vendor.GET("/services", h.ListOwnServices)
		vendor.POST("/services", h.CreateService)
		vendor.PATCH("/services/:id", h.UpdateService)
		vendor.DELETE("/services/:id", h.DeleteService)
	}
}

// --- Public catalog ---

func (h *CatalogHandler) BrowseProducts(c *gin.Context) {
	var query dto.BrowseProductsQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	resp, err := h.catalogService.BrowseProducts(c.Request.Context(), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	resp, err := h.catalogService.GetPublicProduct(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) BrowseServices(c *gin.Context) {
	var query dto.BrowseServicesQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	resp, err := h.catalogService.BrowseServices(&query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) GetService(c *gin.Context) {
	resp, err := h.catalogService.GetPublicService(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	resp, err := h.catalogService.ListCategories()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": resp})
}

// --- Vendor products ---

func (h *CatalogHandler) ListOwnProducts(c *gin.Context) {
	page, limit := h.ParsePagination(c)
	resp, err := h.catalogService.ListVendorProducts(middleware.GetUserID(c), page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.catalogService.CreateProduct(middleware.GetUserID(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var req dto.UpdateProductRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.catalogService.UpdateProduct(middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	if err := h.catalogService.DeleteProduct(middleware.GetUserID(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Vendor services ---

func (h *CatalogHandler) ListOwnServices(c *gin.Context) {
	page, limit := h.ParsePagination(c)
	resp, err := h.catalogService.ListVendorServices(middleware.GetUserID(c), page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req dto.CreateServiceRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.catalogService.CreateService(middleware.GetUserID(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	var req dto.UpdateServiceRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.catalogService.UpdateService(middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) DeleteService(c *gin.Context) {
	if err := h.catalogService.DeleteService(middleware.GetUserID(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
