package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrowthPercent(t *testing.T) {
	assert.Equal(t, 100.0, growthPercent(5, 0), "activity from nothing reports 100")
	assert.Equal(t, 0.0, growthPercent(0, 0))
	assert.Equal(t, 50.0, growthPercent(150, 100))
	assert.Equal(t, -50.0, growthPercent(50, 100))
	assert.Equal(t, -100.0, growthPercent(0, 100))
	assert.Equal(t, 25.0, growthPercent(125, 100))
}
