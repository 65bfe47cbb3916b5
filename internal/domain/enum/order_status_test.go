package enum

import (
	"encoding/json"
	"testing"

	"github.com/collinsdev/marketplace-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"pending to completed", OrderStatusPending, OrderStatusCompleted, true},
		{"pending to cancelled", OrderStatusPending, OrderStatusCancelled, true},
		{"completed to pending", OrderStatusCompleted, OrderStatusPending, false},
		{"completed to cancelled", OrderStatusCompleted, OrderStatusCancelled, false},
		{"cancelled to pending", OrderStatusCancelled, OrderStatusPending, false},
		{"cancelled to completed", OrderStatusCancelled, OrderStatusCompleted, false},
		{"pending to pending is a no-op", OrderStatusPending, OrderStatusPending, true},
		{"completed to completed is a no-op", OrderStatusCompleted, OrderStatusCompleted, true},
		{"cancelled to cancelled is a no-op", OrderStatusCancelled, OrderStatusCancelled, true},
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

func TestOrderStatusValidateTransitionRejectsUnknownTarget(t *testing.T) {
	err := OrderStatusPending.ValidateTransition(OrderStatus(99))
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestOrderStatusIsValid(t *testing.T) {
	assert.True(t, OrderStatusPending.IsValid())
	assert.True(t, OrderStatusCompleted.IsValid())
	assert.True(t, OrderStatusCancelled.IsValid())
	assert.False(t, OrderStatus(-1).IsValid())
	assert.False(t, OrderStatus(3).IsValid())
}

func TestOrderStatusIsTerminal(t *testing.T) {
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.True(t, OrderStatusCompleted.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
}

func TestOrderStatusJSON(t *testing.T) {
	data, err := json.Marshal(OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, `"Completed"`, string(data))

	var fromName OrderStatus
	require.NoError(t, json.Unmarshal([]byte(`"Cancelled"`), &fromName))
	assert.Equal(t, OrderStatusCancelled, fromName)

	var fromNumber OrderStatus
	require.NoError(t, json.Unmarshal([]byte(`1`), &fromNumber))
	assert.Equal(t, OrderStatusCompleted, fromNumber)
}

func TestOrderStatusUnmarshalRejectsUnknown(t *testing.T) {
	// A typo must not silently decode to the zero value.
	var s OrderStatus
	err := json.Unmarshal([]byte(`"Cancelld"`), &s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cancelld")

	err = json.Unmarshal([]byte(`7`), &s)
	require.Error(t, err)
}
