package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kalavpp_backend/internal/services"
	"kalavpp_backend/internal/services/dto"
)

type CommissionHandler struct {
	BaseHandler
	commissionService services.CommissionService
}

func NewCommissionHandler(base BaseHandler, commissionService services.CommissionService) *CommissionHandler {
	return &CommissionHandler{BaseHandler: base, commissionService: commissionService}
}

func (h *CommissionHandler) RegisterRoutes(authed *gin.RouterGroup) {
	commissions := authed.Group("/commissions")
	{
		commissions.POST("", h.Create)
		commissions.GET("", h.List)
		commissions.GET("/:id", h.Get)
		commissions.PATCH("/:id/status", h.Transition)
	}
}

func (h *CommissionHandler) Create(c *gin.Context) {
	var req dto.CreateCommissionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	userID, _ := h.Principal(c)
	resp, err := h.commissionService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CommissionHandler) List(c *gin.Context) {
	userID, role := h.Principal(c)
	page, limit := h.ParsePagination(c)

	resp, err := h.commissionService.List(userID, role, c.Query("status"), page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CommissionHandler) Get(c *gin.Context) {
	userID, role := h.Principal(c)
	resp, err := h.commissionService.Get(userID, role, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CommissionHandler) Transition(c *gin.Context) {
	var req dto.CommissionTransitionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	userID, role := h.Principal(c)
	resp, err := h.commissionService.Transition(userID, role, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
