package enum

import (
	"encoding/json"
	"testing"

	"github.com/collinsdev/marketplace-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    PaymentStatus
		to      PaymentStatus
		allowed bool
	}{
		{"pending to completed", PaymentStatusPending, PaymentStatusCompleted, true},
		{"pending to failed", PaymentStatusPending, PaymentStatusFailed, true},
		{"pending to cancelled", PaymentStatusPending, PaymentStatusCancelled, true},
		{"pending to refunded", PaymentStatusPending, PaymentStatusRefunded, false},
		{"completed to refunded", PaymentStatusCompleted, PaymentStatusRefunded, true},
		{"completed to pending", PaymentStatusCompleted, PaymentStatusPending, false},
		{"completed to failed", PaymentStatusCompleted, PaymentStatusFailed, false},
		{"failed back to pending for retry", PaymentStatusFailed, PaymentStatusPending, true},
		{"failed to completed", PaymentStatusFailed, PaymentStatusCompleted, false},
		{"cancelled to pending", PaymentStatusCancelled, PaymentStatusPending, false},
		{"refunded to completed", PaymentStatusRefunded, PaymentStatusCompleted, false},
		{"pending to pending is a no-op", PaymentStatusPending, PaymentStatusPending, true},
		{"refunded to refunded is a no-op", PaymentStatusRefunded, PaymentStatusRefunded, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))

			err := tt.from.ValidateTransition(tt.to)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, apperror.IsConflict(err))
			}
		})
	}
}

func TestPaymentStatusValidateTransitionRejectsUnknownTarget(t *testing.T) {
	err := PaymentStatusPending.ValidateTransition(PaymentStatus(42))
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestPaymentStatusIsTerminal(t *testing.T) {
	assert.False(t, PaymentStatusPending.IsTerminal())
	assert.False(t, PaymentStatusCompleted.IsTerminal())
	assert.False(t, PaymentStatusFailed.IsTerminal())
	assert.True(t, PaymentStatusCancelled.IsTerminal())
	assert.True(t, PaymentStatusRefunded.IsTerminal())
}

func TestPaymentStatusUnmarshalRejectsUnknown(t *testing.T) {
	var s PaymentStatus
	require.NoError(t, json.Unmarshal([]byte(`"Refunded"`), &s))
	assert.Equal(t, PaymentStatusRefunded, s)

	err := json.Unmarshal([]byte(`"Refundd"`), &s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Refundd")

	err = json.Unmarshal([]byte(`9`), &s)
	require.Error(t, err)
}

func TestPaymentMethodIsValid(t *testing.T) {
	assert.True(t, PaymentMethodCash.IsValid())
	assert.True(t, PaymentMethodMobileMoney.IsValid())
	assert.False(t, PaymentMethod(-1).IsValid())
	assert.False(t, PaymentMethod(4).IsValid())
}
