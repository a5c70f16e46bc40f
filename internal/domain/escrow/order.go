package escrow

import (
	"strings"
	"time"

	"github.com/escrowdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderStatus represents the status of an escrow order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusFailed    OrderStatus = "FAILED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled, OrderStatusFailed:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusCompleted || target == OrderStatusCancelled || target == OrderStatusFailed
	case OrderStatusCompleted, OrderStatusCancelled, OrderStatusFailed:
		return false // terminal states
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions
func (s OrderStatus) IsTerminal() bool {
	return s != OrderStatusPending
}

// Order represents a verified purchase of a reserved account. It is created
// only after the buyer's payment receipt has been verified, and while PENDING
// it keeps the referenced account PENDING.
type Order struct {
	shared.BaseAggregateRoot
	BuyerID     uuid.UUID
	AccountID   uuid.UUID
	Amount      int64 // smallest currency unit
	Status      OrderStatus
	ReceiptRef  string
	CompletedAt *time.Time
	FailReason  string
}

// NewOrder creates a new pending order for a reserved account
func NewOrder(buyerID, accountID uuid.UUID, amount int64, receiptRef string) (*Order, error) {
	if buyerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer ID cannot be empty")
	}
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account ID cannot be empty")
	}
	if amount <= 0 {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Order amount must be positive")
	}
	receiptRef = strings.TrimSpace(receiptRef)
	if receiptRef == "" {
		return nil, shared.NewDomainError("INVALID_RECEIPT", "Receipt reference cannot be empty")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BuyerID:           buyerID,
		AccountID:         accountID,
		Amount:            amount,
		Status:            OrderStatusPending,
		ReceiptRef:        receiptRef,
	}, nil
}

// Complete marks the order as completed
func (o *Order) Complete() error {
	if !o.Status.CanTransitionTo(OrderStatusCompleted) {
		return shared.ErrInvalidState
	}
	now := time.Now()
	o.Status = OrderStatusCompleted
	o.CompletedAt = &now
	o.UpdatedAt = now
	return nil
}

// Cancel marks the order as cancelled
func (o *Order) Cancel() error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.ErrInvalidState
	}
	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
	return nil
}

// Fail marks the order as failed with a reason
func (o *Order) Fail(reason string) error {
	if !o.Status.CanTransitionTo(OrderStatusFailed) {
		return shared.ErrInvalidState
	}
	o.Status = OrderStatusFailed
	o.FailReason = reason
	o.UpdatedAt = time.Now()
	return nil
}
