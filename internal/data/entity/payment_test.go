package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentStatusTransitions(t *testing.T) {
	tests := []struct {
		from PaymentStatus
		to   PaymentStatus
		want bool
	}{
		{PaymentStatusPending, PaymentStatusPartial, true},
		{PaymentStatusPending, PaymentStatusPaid, true},
		{PaymentStatusPending, PaymentStatusRefunded, false},

		{PaymentStatusPartial, PaymentStatusPaid, true},
		{PaymentStatusPartial, PaymentStatusPending, true},
		{PaymentStatusPartial, PaymentStatusRefunded, true},

		{PaymentStatusPaid, PaymentStatusPending, true},
		{PaymentStatusPaid, PaymentStatusRefunded, true},
		{PaymentStatusPaid, PaymentStatusPartial, false},

		{PaymentStatusOverdue, PaymentStatusPaid, true},
		{PaymentStatusOverdue, PaymentStatusPending, true},
		{PaymentStatusOverdue, PaymentStatusRefunded, false},

		{PaymentStatusRefunded, PaymentStatusPending, false},
		{PaymentStatusRefunded, PaymentStatusPaid, false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestPaymentStatusRefundedTerminal(t *testing.T) {
	assert.Empty(t, PaymentStatusRefunded.AllowedTransitions())
}

func TestPaymentStatusIsValid(t *testing.T) {
	assert.True(t, PaymentStatusPartial.IsValid())
	assert.False(t, PaymentStatus("settled").IsValid())
}
