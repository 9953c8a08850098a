package validator

import (
	"github.com/go-playground/validator/v10"

	"kalavpp_backend/internal/models"
)

// Custom enum rules used by catalog DTOs.
func registerCustomRules(v *validator.Validate) {
	_ = v.RegisterValidation("product-type", func(fl validator.FieldLevel) bool {
		switch models.ProductType(fl.Field().String()) {
		case models.ProductTypePhysical, models.ProductTypeDigital, models.ProductTypeMerchandise:
			return true
		}
		return false
	})

	_ = v.RegisterValidation("service-type", func(fl validator.FieldLevel) bool {
		switch models.ServiceType(fl.Field().String()) {
		case models.ServiceTypePortrait, models.ServiceTypeSculpture, models.ServiceTypeIllustration,
			models.ServiceTypeCrochet, models.ServiceTypePainting, models.ServiceTypeDigitalArt,
			models.ServiceTypeCustom:
			return true
		}
		return false
	})
}
