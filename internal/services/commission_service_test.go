package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kalavpp_backend/internal/models"
)

func TestAuthorizeCommissionTransitionVendorSide(t *testing.T) {
	// Production-side transitions belong to the vendor.
	assert.NoError(t, authorizeCommissionTransition(models.UserRoleVendor,
		models.CommissionStatusRequested, models.CommissionStatusAccepted))
	assert.NoError(t, authorizeCommissionTransition(models.UserRoleVendor,
		models.CommissionStatusAccepted, models.CommissionStatusInProgress))
	assert.NoError(t, authorizeCommissionTransition(models.UserRoleVendor,
		models.CommissionStatusInProgress, models.CommissionStatusCompleted))

	// Vendors may decline before work starts, not after.
	assert.NoError(t, authorizeCommissionTransition(models.UserRoleVendor,
		models.CommissionStatusRequested, models.CommissionStatusCancelled))
	assert.NoError(t, authorizeCommissionTransition(models.UserRoleVendor,
		models.CommissionStatusAccepted, models.CommissionStatusCancelled))

	// Accepting the result is the customer's call.
	assert.Error(t, authorizeCommissionTransition(models.UserRoleVendor,
		models.CommissionStatusCompleted, models.CommissionStatusDelivered))
	assert.Error(t, authorizeCommissionTransition(models.UserRoleVendor,
		models.CommissionStatusCompleted, models.CommissionStatusRevisionRequested))
}

func TestAuthorizeCommissionTransitionCustomerSide(t *testing.T) {
	assert.NoError(t, authorizeCommissionTransition(models.UserRoleCustomer,
		models.CommissionStatusCompleted, models.CommissionStatusRevisionRequested))
	assert.NoError(t, authorizeCommissionTransition(models.UserRoleCustomer,
		models.CommissionStatusCompleted, models.CommissionStatusDelivered))
	assert.NoError(t, authorizeCommissionTransition(models.UserRoleCustomer,
		models.CommissionStatusRequested, models.CommissionStatusCancelled))

	// Customers cannot drive production.
	assert.Error(t, authorizeCommissionTransition(models.UserRoleCustomer,
		models.CommissionStatusRequested, models.CommissionStatusAccepted))
	assert.Error(t, authorizeCommissionTransition(models.UserRoleCustomer,
		models.CommissionStatusAccepted, models.CommissionStatusInProgress))
	assert.Error(t, authorizeCommissionTransition(models.UserRoleCustomer,
		models.CommissionStatusAccepted, models.CommissionStatusCancelled))
}
