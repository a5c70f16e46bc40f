package escrow

import (
	"github.com/escrowdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types for the escrow context
const (
	EventTypeOrderCreated        = "escrow.order_created"
	EventTypeOrderCompleted      = "escrow.order_completed"
	EventTypeOrderCancelled      = "escrow.order_cancelled"
	EventTypeOrderFailed         = "escrow.order_failed"
	EventTypeWithdrawalRequested = "escrow.withdrawal_requested"
)

const (
	aggregateTypeOrder      = "Order"
	aggregateTypeWithdrawal = "Withdrawal"
)

// OrderCreatedEvent is emitted when a verified payment produces an order
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	BuyerID   uuid.UUID `json:"buyer_id"`
	AccountID uuid.UUID `json:"account_id"`
	Amount    int64     `json:"amount"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, aggregateTypeOrder, order.ID),
		BuyerID:         order.BuyerID,
		AccountID:       order.AccountID,
		Amount:          order.Amount,
	}
}

// OrderCompletedEvent is emitted when the asset is handed over and the
// seller's balance credited
type OrderCompletedEvent struct {
	shared.BaseDomainEvent
	BuyerID   uuid.UUID `json:"buyer_id"`
	SellerID  uuid.UUID `json:"seller_id"`
	AccountID uuid.UUID `json:"account_id"`
	Amount    int64     `json:"amount"`
}

// NewOrderCompletedEvent creates a new OrderCompletedEvent
func NewOrderCompletedEvent(order *Order, sellerID uuid.UUID) *OrderCompletedEvent {
	return &OrderCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCompleted, aggregateTypeOrder, order.ID),
		BuyerID:         order.BuyerID,
		SellerID:        sellerID,
		AccountID:       order.AccountID,
		Amount:          order.Amount,
	}
}

// OrderCancelledEvent is emitted when a pending order is cancelled and the
// account returned to the pool
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	BuyerID   uuid.UUID `json:"buyer_id"`
	AccountID uuid.UUID `json:"account_id"`
	Amount    int64     `json:"amount"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(order *Order) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, aggregateTypeOrder, order.ID),
		BuyerID:         order.BuyerID,
		AccountID:       order.AccountID,
		Amount:          order.Amount,
	}
}

// WithdrawalRequestedEvent is emitted when a payout obligation is recorded
type WithdrawalRequestedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID        `json:"user_id"`
	Amount int64            `json:"amount"`
	Reason WithdrawalReason `json:"reason"`
}

// NewWithdrawalRequestedEvent creates a new WithdrawalRequestedEvent
func NewWithdrawalRequestedEvent(withdrawal *Withdrawal) *WithdrawalRequestedEvent {
	return &WithdrawalRequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWithdrawalRequested, aggregateTypeWithdrawal, withdrawal.ID),
		UserID:          withdrawal.UserID,
		Amount:          withdrawal.Amount,
		Reason:          withdrawal.Reason,
	}
}
