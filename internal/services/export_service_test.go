package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kalavpp_backend/pkg/apperrors"
)

func TestExportUnknownType(t *testing.T) {
	svc := NewExportService(nil, nil, nil, nil)

	_, _, err := svc.Export("invoices")
	assert.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "10.00", formatMoney(10))
	assert.Equal(t, "0.15", formatMoney(0.15))
	assert.Equal(t, "1769.99", formatMoney(1769.99))
}
