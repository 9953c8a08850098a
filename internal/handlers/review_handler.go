package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kalavpp_backend/internal/services"
	"kalavpp_backend/internal/services/dto"
)

type ReviewHandler struct {
	BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{BaseHandler: base, reviewService: reviewService}
}

func (h *ReviewHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/products/:id/reviews", h.ListForProduct)
	public.GET("/services/:id/reviews", h.ListForService)

	authed.POST("/reviews", h.Create)
	authed.DELETE("/reviews/:id", h.Delete)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var req dto.CreateReviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	userID, _ := h.Principal(c)
	resp, err := h.reviewService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ReviewHandler) ListForProduct(c *gin.Context) {
	page, limit := h.ParsePagination(c)
	resp, err := h.reviewService.ListForProduct(c.Param("id"), page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) ListForService(c *gin.Context) {
	page, limit := h.ParsePagination(c)
	resp, err := h.reviewService.ListForService(c.Param("id"), page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	userID, role := h.Principal(c)
	if err := h.reviewService.Delete(userID, role, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
