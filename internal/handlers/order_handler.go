package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kalavpp_backend/internal/services"
	"kalavpp_backend/internal/services/dto"
)

type OrderHandler struct {
	BaseHandler
	orderService services.OrderService
}

func NewOrderHandler(base BaseHandler, orderService services.OrderService) *OrderHandler {
	return &OrderHandler{BaseHandler: base, orderService: orderService}
}

func (h *OrderHandler) RegisterRoutes(authed *gin.RouterGroup) {
	orders := authed.Group("/orders")
	{
		orders.POST("", h.Checkout)
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.PATCH("/:id/status", h.UpdateStatus)
	}
}

// Checkout creates an order from the cart. Clients may send an
// Idempotency-Key header to make retries safe.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	userID, _ := h.Principal(c)
	resp, err := h.orderService.Checkout(userID, c.GetHeader("Idempotency-Key"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrderHandler) List(c *gin.Context) {
	userID, role := h.Principal(c)
	page, limit := h.ParsePagination(c)

	resp, err := h.orderService.ListOrders(userID, role, c.Query("status"), page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) Get(c *gin.Context) {
	userID, role := h.Principal(c)
	resp, err := h.orderService.GetOrder(userID, role, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	userID, role := h.Principal(c)
	resp, err := h.orderService.UpdateStatus(userID, role, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
