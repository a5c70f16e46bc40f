package escrow

import (
	"time"

	"github.com/escrowdesk/backend/internal/domain/escrow"
	"github.com/google/uuid"
)

// OrderResponse is the API representation of an order
type OrderResponse struct {
	ID          uuid.UUID  `json:"id"`
	BuyerID     uuid.UUID  `json:"buyer_id"`
	AccountID   uuid.UUID  `json:"account_id"`
	Amount      int64      `json:"amount"`
	Status      string     `json:"status"`
	ReceiptRef  string     `json:"receipt_ref"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToOrderResponse converts a domain order to its API representation
func ToOrderResponse(order *escrow.Order) OrderResponse {
	return OrderResponse{
		ID:          order.ID,
		BuyerID:     order.BuyerID,
		AccountID:   order.AccountID,
		Amount:      order.Amount,
		Status:      order.Status.String(),
		ReceiptRef:  order.ReceiptRef,
		CompletedAt: order.CompletedAt,
		CreatedAt:   order.CreatedAt,
	}
}

// WithdrawalResponse is the API representation of a withdrawal
type WithdrawalResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Amount    int64      `json:"amount"`
	Status    string     `json:"status"`
	Reason    string     `json:"reason"`
	SettledAt *time.Time `json:"settled_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToWithdrawalResponse converts a domain withdrawal to its API representation
func ToWithdrawalResponse(withdrawal *escrow.Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		ID:        withdrawal.ID,
		UserID:    withdrawal.UserID,
		Amount:    withdrawal.Amount,
		Status:    string(withdrawal.Status),
		Reason:    string(withdrawal.Reason),
		SettledAt: withdrawal.SettledAt,
		CreatedAt: withdrawal.CreatedAt,
	}
}

// VerificationResponse is the API representation of a verification outcome
type VerificationResponse struct {
	Accepted      bool   `json:"accepted"`
	Payer         string `json:"payer"`
	Receiver      string `json:"receiver"`
	SettledAmount int64  `json:"settled_amount"`
	Reference     string `json:"reference"`
}
