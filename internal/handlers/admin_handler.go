package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kalavpp_backend/internal/middleware"
	"kalavpp_backend/internal/models"
	"kalavpp_backend/internal/services"
	"kalavpp_backend/internal/services/dto"
)

// AdminHandler groups the moderation and back-office endpoints.
type AdminHandler struct {
	BaseHandler
	userService      services.UserService
	vendorService    services.VendorService
	catalogService   services.CatalogService
	analyticsService services.AnalyticsService
	exportService    services.ExportService
}

func NewAdminHandler(
	base BaseHandler,
	userService services.UserService,
	vendorService services.VendorService,
	catalogService services.CatalogService,
	analyticsService services.AnalyticsService,
	exportService services.ExportService,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:      base,
		userService:      userService,
		vendorService:    vendorService,
		catalogService:   catalogService,
		analyticsService: analyticsService,
		exportService:    exportService,
	}
}

func (h *AdminHandler) RegisterRoutes(authed *gin.RouterGroup) {
	admin := authed.Group("/admin", middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("/analytics", h.GetAnalytics)
		admin.GET("/export", h.Export)

		admin.GET("/users", h.ListUsers)
		admin.DELETE("/users/:id", h.DeleteUser)

		admin.GET("/vendors", h.ListVendors)
		admin.PATCH("/vendors/:id/status", h.ModerateVendor)

		admin.POST("/categories", h.CreateCategory)
		admin.PATCH("/categories/:id", h.UpdateCategory)
		admin.DELETE("/categories/:id", h.DeleteCategory)
	}
}

func (h *AdminHandler) GetAnalytics(c *gin.Context) {
	resp, err := h.analyticsService.GetAdminDashboard(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) Export(c *gin.Context) {
	body, filename, err := h.exportService.Export(c.Query("type"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", body)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit := h.ParsePagination(c)
	resp, err := h.userService.ListUsers(c.Query("role"), c.Query("q"), page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.DeleteUser(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) ListVendors(c *gin.Context) {
	page, limit := h.ParsePagination(c)
	resp, err := h.vendorService.ListVendors(c.Query("status"), page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) ModerateVendor(c *gin.Context) {
	var req dto.VendorModerationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.vendorService.Moderate(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.catalogService.CreateCategory(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	var req dto.UpdateCategoryRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.catalogService.UpdateCategory(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	if err := h.catalogService.DeleteCategory(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
