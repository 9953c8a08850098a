package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kalavpp_backend/internal/middleware"
	"kalavpp_backend/internal/services"
	"kalavpp_backend/internal/services/dto"
)

type AddressHandler struct {
	BaseHandler
	userService services.UserService
}

func NewAddressHandler(base BaseHandler, userService services.UserService) *AddressHandler {
	return &AddressHandler{BaseHandler: base, userService: userService}
}

func (h *AddressHandler) RegisterRoutes(authed *gin.RouterGroup) {
	addresses := authed.Group("/addresses")
	{
		addresses.GET("", h.List)
		addresses.POST("", h.Create)
		addresses.PATCH("/:id", h.Update)
		addresses.DELETE("/:id", h.Delete)
		addresses.POST("/:id/default", h.SetDefault)
	}
}

func (h *AddressHandler) List(c *gin.Context) {
	resp, err := h.userService.ListAddresses(middleware.GetUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": resp})
}

func (h *AddressHandler) Create(c *gin.Context) {
	var req dto.CreateAddressRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.userService.CreateAddress(middleware.GetUserID(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AddressHandler) Update(c *gin.Context) {
	var req dto.UpdateAddressRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.userService.UpdateAddress(middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AddressHandler) Delete(c *gin.Context) {
	if err := h.userService.DeleteAddress(middleware.GetUserID(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AddressHandler) SetDefault(c *gin.Context) {
	if err := h.userService.SetDefaultAddress(middleware.GetUserID(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Default address updated"})
}
