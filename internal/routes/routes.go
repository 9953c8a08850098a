package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kalavpp_backend/internal/handlers"
	"kalavpp_backend/internal/middleware"
)

// Setup mounts the full API surface under /api/v1. The public group carries
// no auth; everything else goes through the JWT middleware, with role guards
// applied per group inside the handlers.
func Setup(router *gin.Engine, h *handlers.AppHandlers) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	public := api.Group("")
	authed := api.Group("", middleware.AuthMiddleware())

	h.Auth.RegisterRoutes(public, authed)
	h.Catalog.RegisterRoutes(public, authed)
	h.Vendor.RegisterRoutes(public, authed)
	h.Review.RegisterRoutes(public, authed)
	h.Order.RegisterRoutes(authed)
	h.Address.RegisterRoutes(authed)
	h.Commission.RegisterRoutes(authed)
	h.Admin.RegisterRoutes(authed)
}
