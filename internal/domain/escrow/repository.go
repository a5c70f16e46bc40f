package escrow

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines the persistence contract for orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByAccount(ctx context.Context, accountID uuid.UUID) ([]Order, error)

	// FindActiveByAccount returns the single non-terminal order referencing
	// the account, or shared.ErrNotFound. A partial unique index guarantees
	// at most one exists.
	FindActiveByAccount(ctx context.Context, accountID uuid.UUID) (*Order, error)

	CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
	Save(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// WithdrawalRepository defines the persistence contract for withdrawals
type WithdrawalRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Withdrawal, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Withdrawal, error)
	Save(ctx context.Context, withdrawal *Withdrawal) error
}

// VerificationResult is what the external settlement-lookup service reports
// for a payment receipt.
type VerificationResult struct {
	Accepted      bool
	Payer         string
	Receiver      string
	SettledAmount int64 // smallest currency unit
	Reference     string
}

// PaymentVerifier is the boundary to the external payment verification
// capability. Implementations must map transient upstream failures to
// shared.ErrVerifierUnavailable so callers can present them as retryable.
type PaymentVerifier interface {
	Verify(ctx context.Context, receiptRef string) (*VerificationResult, error)
}
