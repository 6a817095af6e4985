package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionOrder(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderPending, OrderAccepted, true},
		{OrderPending, OrderCompleted, true},
		{OrderPending, OrderFailed, true},
		{OrderAccepted, OrderCompleted, true},
		{OrderAccepted, OrderFailed, true},
		{OrderAccepted, OrderPending, false},
		{OrderCompleted, OrderFailed, false},
		{OrderFailed, OrderAccepted, false},
		{OrderPending, OrderPending, false},
		{OrderPending, "cancelled", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransitionOrder(tt.from, tt.to))
		})
	}
}

func TestCanTransitionPayment(t *testing.T) {
	all := []PaymentStatus{PaymentAwaitingInitial, PaymentProcessing, PaymentCompleted, PaymentFailed}
	allowed := map[[2]PaymentStatus]bool{
		{PaymentAwaitingInitial, PaymentProcessing}: true,
		{PaymentProcessing, PaymentCompleted}:       true,
		{PaymentProcessing, PaymentFailed}:          true,
		{PaymentFailed, PaymentProcessing}:          true,
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]PaymentStatus{from, to}], CanTransitionPayment(from, to), "%s -> %s", from, to)
		}
	}
	for _, to := range all {
		assert.False(t, CanTransitionPayment(PaymentCompleted, to))
	}
}

func TestPaymentStatus_Chargeable(t *testing.T) {
	assert.True(t, PaymentAwaitingInitial.Chargeable())
	assert.True(t, PaymentFailed.Chargeable())
	assert.False(t, PaymentProcessing.Chargeable())
	assert.False(t, PaymentCompleted.Chargeable())
}

func TestCanTransitionDispute(t *testing.T) {
	assert.True(t, CanTransitionDispute(DisputePending, DisputeUnderReview))
	assert.True(t, CanTransitionDispute(DisputeUnderReview, DisputeResolved))
	assert.False(t, CanTransitionDispute(DisputePending, DisputeResolved))
	assert.False(t, CanTransitionDispute(DisputeResolved, DisputePending))
}

func TestOrderStatus_Valid(t *testing.T) {
	assert.True(t, OrderAccepted.Valid())
	assert.False(t, OrderStatus("shipped").Valid())
}
