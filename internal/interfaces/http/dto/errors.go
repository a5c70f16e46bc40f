package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
)

// Resource error codes
const (
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeConflict            = "CONFLICT"
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	ErrCodeInvalidInput        = "INVALID_INPUT"
	ErrCodeInvalidState        = "INVALID_STATE"
)

// Escrow flow error codes, matching the domain error taxonomy
const (
	ErrCodeAccountNotAvailable  = "ACCOUNT_NOT_AVAILABLE"
	ErrCodeAccountNotDeletable  = "ACCOUNT_NOT_DELETABLE"
	ErrCodeAccountHasOrders     = "ACCOUNT_HAS_ORDERS"
	ErrCodeDuplicateActiveOrder = "DUPLICATE_ACTIVE_ORDER"
	ErrCodeOrderNotFound        = "ORDER_NOT_FOUND"
	ErrCodePaymentMismatch      = "PAYMENT_MISMATCH"
	ErrCodeDuplicateReceipt     = "DUPLICATE_RECEIPT"
	ErrCodeVerifierUnavailable  = "VERIFIER_UNAVAILABLE"
	ErrCodeInsufficientBalance  = "INSUFFICIENT_BALANCE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
// Contention outcomes (lost reservation race, duplicate order, reused
// receipt) are conflicts; rejected but well-formed requests (payment
// mismatch, insufficient balance) are unprocessable.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeInvalidInput:        http.StatusBadRequest,
	ErrCodeInvalidState:        http.StatusUnprocessableEntity,

	ErrCodeAccountNotAvailable:  http.StatusConflict,
	ErrCodeAccountNotDeletable:  http.StatusConflict,
	ErrCodeAccountHasOrders:     http.StatusConflict,
	ErrCodeDuplicateActiveOrder: http.StatusConflict,
	ErrCodeOrderNotFound:        http.StatusNotFound,
	ErrCodePaymentMismatch:      http.StatusUnprocessableEntity,
	ErrCodeDuplicateReceipt:     http.StatusConflict,
	ErrCodeVerifierUnavailable:  http.StatusServiceUnavailable,
	ErrCodeInsufficientBalance:  http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
