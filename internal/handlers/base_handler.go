package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"kalavpp_backend/internal/middleware"
	"kalavpp_backend/internal/models"
	"kalavpp_backend/internal/validator"
	"kalavpp_backend/pkg/apperrors"
)

// BaseHandler carries the request plumbing shared by every handler:
// binding, validation and the error envelope.
type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) BaseHandler {
	return BaseHandler{validator: v}
}

// BindAndValidateJSON decodes the JSON body into req and runs validation.
// On failure it writes the error response and returns false.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}
	return h.validate(c, req)
}

// BindAndValidateQuery decodes query parameters into req and runs validation.
func (h *BaseHandler) BindAndValidateQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}
	return h.validate(c, req)
}

func (h *BaseHandler) validate(c *gin.Context, req interface{}) bool {
	if err := h.validator.Validate(req); err != nil {
		if ve, ok := err.(*validator.ValidationError); ok {
			apperrors.HandleError(c, apperrors.ValidationError(ve.Errors))
		} else {
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// HandleServiceError writes a service-layer error in the standard envelope.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
}

// Principal returns the authenticated user ID and role.
func (h *BaseHandler) Principal(c *gin.Context) (string, models.UserRole) {
	role, _ := middleware.RoleFromContext(c)
	return middleware.GetUserID(c), role
}

// ParsePagination reads page/limit query params with sane bounds.
func (h *BaseHandler) ParsePagination(c *gin.Context) (page, limit int) {
	page = parseQueryInt(c, "page", 1)
	limit = parseQueryInt(c, "limit", 20)
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

func parseQueryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
