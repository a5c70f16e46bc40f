package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/escrowdesk/backend/internal/domain/shared"
)

func serveWithError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	base := NewBaseHandler(zap.NewNop())
	router := gin.New()
	router.GET("/", func(c *gin.Context) {
		base.HandleError(c, err)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestHandleError_DomainErrorMapsToStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"account not available", shared.ErrAccountNotAvailable, http.StatusConflict, "ACCOUNT_NOT_AVAILABLE"},
		{"duplicate receipt", shared.ErrDuplicateReceipt, http.StatusConflict, "DUPLICATE_RECEIPT"},
		{"payment mismatch", shared.ErrPaymentMismatch, http.StatusUnprocessableEntity, "PAYMENT_MISMATCH"},
		{"order not found", shared.ErrOrderNotFound, http.StatusNotFound, "ORDER_NOT_FOUND"},
		{"forbidden", shared.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"verifier unavailable", shared.ErrVerifierUnavailable, http.StatusServiceUnavailable, "VERIFIER_UNAVAILABLE"},
		{"insufficient balance", shared.ErrInsufficientBalance, http.StatusUnprocessableEntity, "INSUFFICIENT_BALANCE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveWithError(t, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.code)
		})
	}
}

func TestHandleError_WrappedDomainError(t *testing.T) {
	wrapped := fmt.Errorf("creating order: %w", shared.ErrDuplicateActiveOrder)

	w := serveWithError(t, wrapped)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "DUPLICATE_ACTIVE_ORDER")
}

func TestHandleError_UnknownErrorIsInternal(t *testing.T) {
	w := serveWithError(t, errors.New("connection reset"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	assert.NotContains(t, w.Body.String(), "connection reset")
}
