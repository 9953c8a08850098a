package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusConfirmed, OrderStatusProcessing, true},
		{OrderStatusConfirmed, OrderStatusRefunded, true},
		{OrderStatusConfirmed, OrderStatusPending, false},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusRefunded, true},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusRefunded, OrderStatusPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatusNoBackwardTransitions(t *testing.T) {
	// No status may loop back to PENDING.
	all := []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled,
		OrderStatusRefunded,
	}
	for _, s := range all {
		assert.False(t, s.CanTransitionTo(OrderStatusPending), "%s -> PENDING must be illegal", s)
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.True(t, OrderStatusRefunded.IsTerminal())
	assert.False(t, OrderStatusDelivered.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
}

func TestCommissionStatusTransitions(t *testing.T) {
	cases := []struct {
		from    CommissionStatus
		to      CommissionStatus
		allowed bool
	}{
		{CommissionStatusRequested, CommissionStatusAccepted, true},
		{CommissionStatusRequested, CommissionStatusCancelled, true},
		{CommissionStatusRequested, CommissionStatusInProgress, false},
		{CommissionStatusAccepted, CommissionStatusInProgress, true},
		{CommissionStatusAccepted, CommissionStatusCancelled, true},
		{CommissionStatusAccepted, CommissionStatusCompleted, false},
		{CommissionStatusInProgress, CommissionStatusCompleted, true},
		{CommissionStatusInProgress, CommissionStatusCancelled, false},
		{CommissionStatusCompleted, CommissionStatusRevisionRequested, true},
		{CommissionStatusCompleted, CommissionStatusDelivered, true},
		{CommissionStatusRevisionRequested, CommissionStatusInProgress, true},
		{CommissionStatusRevisionRequested, CommissionStatusDelivered, false},
		{CommissionStatusDelivered, CommissionStatusRevisionRequested, false},
		{CommissionStatusCancelled, CommissionStatusAccepted, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestCommissionRevisionLoop(t *testing.T) {
	// COMPLETED -> REVISION_REQUESTED -> IN_PROGRESS -> COMPLETED must be a
	// legal cycle.
	assert.True(t, CommissionStatusCompleted.CanTransitionTo(CommissionStatusRevisionRequested))
	assert.True(t, CommissionStatusRevisionRequested.CanTransitionTo(CommissionStatusInProgress))
	assert.True(t, CommissionStatusInProgress.CanTransitionTo(CommissionStatusCompleted))
}

func TestStatusValidity(t *testing.T) {
	assert.True(t, OrderStatusPending.IsValid())
	assert.False(t, OrderStatus("SHINY").IsValid())
	assert.True(t, CommissionStatusDelivered.IsValid())
	assert.False(t, CommissionStatus("").IsValid())
	assert.True(t, PaymentStatusPaid.IsValid())
	assert.False(t, PaymentStatus("MAYBE").IsValid())
}
