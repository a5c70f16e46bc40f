package escrow

import (
	"time"

	"github.com/escrowdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// WithdrawalStatus represents the processing status of a payout obligation
type WithdrawalStatus string

const (
	WithdrawalStatusRequested WithdrawalStatus = "REQUESTED"
	WithdrawalStatusPaid      WithdrawalStatus = "PAID"
	WithdrawalStatusRejected  WithdrawalStatus = "REJECTED"
)

// IsValid checks if the status is a valid WithdrawalStatus
func (s WithdrawalStatus) IsValid() bool {
	switch s {
	case WithdrawalStatusRequested, WithdrawalStatusPaid, WithdrawalStatusRejected:
		return true
	}
	return false
}

// WithdrawalReason explains why the payout is owed
type WithdrawalReason string

const (
	WithdrawalReasonSellerPayout WithdrawalReason = "SELLER_PAYOUT"
	WithdrawalReasonOrderRefund  WithdrawalReason = "ORDER_REFUND"
)

// Withdrawal represents an obligation to pay money out of the escrow to a
// user's bank account. It is settled by a back-office process, not by the
// order state machine.
type Withdrawal struct {
	shared.BaseAggregateRoot
	UserID      uuid.UUID
	Amount      int64 // smallest currency unit
	Status      WithdrawalStatus
	Reason      WithdrawalReason
	OrderID     *uuid.UUID // set for ORDER_REFUND
	BankName    string     // snapshot at request time
	BankAccount string
	Note        string
	SettledAt   *time.Time
}

// NewWithdrawal creates a new payout request
func NewWithdrawal(userID uuid.UUID, amount int64, reason WithdrawalReason) (*Withdrawal, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if amount <= 0 {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Withdrawal amount must be positive")
	}

	return &Withdrawal{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Amount:            amount,
		Status:            WithdrawalStatusRequested,
		Reason:            reason,
	}, nil
}

// WithBankSnapshot records the payout destination at request time
func (w *Withdrawal) WithBankSnapshot(bankName, bankAccount string) *Withdrawal {
	w.BankName = bankName
	w.BankAccount = bankAccount
	return w
}

// WithOrder links the withdrawal to the order it compensates
func (w *Withdrawal) WithOrder(orderID uuid.UUID) *Withdrawal {
	w.OrderID = &orderID
	return w
}

// MarkPaid records that the payout was settled externally
func (w *Withdrawal) MarkPaid() error {
	if w.Status != WithdrawalStatusRequested {
		return shared.ErrInvalidState
	}
	now := time.Now()
	w.Status = WithdrawalStatusPaid
	w.SettledAt = &now
	w.UpdatedAt = now
	return nil
}

// Reject declines the payout request with a note
func (w *Withdrawal) Reject(note string) error {
	if w.Status != WithdrawalStatusRequested {
		return shared.ErrInvalidState
	}
	now := time.Now()
	w.Status = WithdrawalStatusRejected
	w.Note = note
	w.SettledAt = &now
	w.UpdatedAt = now
	return nil
}
