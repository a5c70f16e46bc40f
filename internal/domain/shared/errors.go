package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")

	// Escrow flow errors
	ErrAccountNotAvailable  = NewDomainError("ACCOUNT_NOT_AVAILABLE", "Account is not available for reservation")
	ErrAccountNotDeletable  = NewDomainError("ACCOUNT_NOT_DELETABLE", "Account cannot be deleted in its current state")
	ErrAccountHasOrders     = NewDomainError("ACCOUNT_HAS_ORDERS", "Account still has orders referencing it")
	ErrDuplicateActiveOrder = NewDomainError("DUPLICATE_ACTIVE_ORDER", "Account already has an active order")
	ErrOrderNotFound        = NewDomainError("ORDER_NOT_FOUND", "Order not found")
	ErrPaymentMismatch      = NewDomainError("PAYMENT_MISMATCH", "Payment does not match the expected amount or receiver")
	ErrDuplicateReceipt     = NewDomainError("DUPLICATE_RECEIPT", "Payment receipt has already been used")
	ErrVerifierUnavailable  = NewDomainError("VERIFIER_UNAVAILABLE", "Payment verifier is temporarily unavailable")
	ErrInsufficientBalance  = NewDomainError("INSUFFICIENT_BALANCE", "Insufficient balance available")
)
