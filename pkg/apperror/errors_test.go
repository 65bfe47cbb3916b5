package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("Order")
	assert.Equal(t, http.StatusNotFound, err.Code)
	assert.Equal(t, "Order not found", err.Message)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsConflict(err))
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("Quantity must be greater than zero.")
	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.True(t, IsValidation(err))
}

func TestNewConflictError(t *testing.T) {
	err := NewConflictError("Order number 'ORD-1' already exists.")
	assert.Equal(t, http.StatusConflict, err.Code)
	assert.True(t, IsConflict(err))
}

func TestCheckersRejectPlainErrors(t *testing.T) {
	plain := errors.New("boom")
	assert.False(t, IsAppError(plain))
	assert.False(t, IsNotFound(plain))
	assert.False(t, IsValidation(plain))
	assert.False(t, IsConflict(plain))
}

func TestCheckersUnwrap(t *testing.T) {
	wrapped := fmt.Errorf("saving order: %w", NewConflictError("version mismatch"))
	assert.True(t, IsAppError(wrapped))
	assert.True(t, IsConflict(wrapped))
}

func TestGetAppError(t *testing.T) {
	appErr := NewNotFoundError("Payment")
	assert.Equal(t, appErr, GetAppError(appErr))

	got := GetAppError(errors.New("connection refused"))
	require.NotNil(t, got)
	assert.Equal(t, http.StatusInternalServerError, got.Code)
	assert.Equal(t, "connection refused", got.Message)
}

func TestNewFieldValidationError(t *testing.T) {
	err := NewFieldValidationError([]FieldError{
		{Field: "email", Message: "must be a valid email"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	require.Len(t, err.Errors, 1)
	assert.Equal(t, "email", err.Errors[0].Field)
}
