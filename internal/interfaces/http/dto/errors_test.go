package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{ErrCodeAccountNotAvailable, http.StatusConflict},
		{ErrCodeDuplicateActiveOrder, http.StatusConflict},
		{ErrCodeDuplicateReceipt, http.StatusConflict},
		{ErrCodeAccountNotDeletable, http.StatusConflict},
		{ErrCodeAccountHasOrders, http.StatusConflict},
		{ErrCodePaymentMismatch, http.StatusUnprocessableEntity},
		{ErrCodeInsufficientBalance, http.StatusUnprocessableEntity},
		{ErrCodeOrderNotFound, http.StatusNotFound},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeVerifierUnavailable, http.StatusServiceUnavailable},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{"SOMETHING_UNKNOWN", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a", "b"}, 41, 2, 20)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(41), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "not here", "req-1")

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
}
