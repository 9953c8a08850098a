package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kalavpp_backend/internal/middleware"
	"kalavpp_backend/internal/models"
	"kalavpp_backend/internal/services"
	"kalavpp_backend/internal/services/dto"
)

// VendorHandler serves the public storefront page plus the vendor's own
// profile and earnings endpoints.
type VendorHandler struct {
	BaseHandler
	vendorService   services.VendorService
	earningsService services.EarningsService
}

func NewVendorHandler(base BaseHandler, vendorService services.VendorService, earningsService services.EarningsService) *VendorHandler {
	return &VendorHandler{
		BaseHandler:     base,
		vendorService:   vendorService,
		earningsService: earningsService,
	}
}

func (h *VendorHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/stores/:slug", h.GetStorefront)

	vendor := authed.Group("/vendor", middleware.RequireRoles(models.UserRoleVendor))
	{
		vendor.GET("/profile", h.GetProfile)
		vendor.PATCH("/profile", h.UpdateProfile)
		vendor.GET("/earnings", h.GetEarnings)
	}
}

func (h *VendorHandler) GetStorefront(c *gin.Context) {
	resp, err := h.vendorService.GetStorefront(c.Param("slug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VendorHandler) GetProfile(c *gin.Context) {
	resp, err := h.vendorService.GetOwnProfile(middleware.GetUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VendorHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateVendorProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.vendorService.UpdateOwnProfile(middleware.GetUserID(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VendorHandler) GetEarnings(c *gin.Context) {
	resp, err := h.earningsService.GetVendorEarnings(middleware.GetUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
