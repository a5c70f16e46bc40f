package models

import (
	"time"

	"github.com/escrowdesk/backend/internal/domain/escrow"
	"github.com/google/uuid"
)

// OrderModel is the persistence model for escrow orders. The account foreign
// key cascades on delete so teardown removes order rows with the account.
// A partial unique index (enforced in migrations) guarantees at most one
// PENDING row per account.
type OrderModel struct {
	AggregateModel
	BuyerID     uuid.UUID     `gorm:"type:uuid;not null;index"`
	AccountID   uuid.UUID     `gorm:"type:uuid;not null;index"`
	Account     *AccountModel `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	Amount      int64         `gorm:"not null"`
	Status      string        `gorm:"size:16;not null;index"`
	ReceiptRef  string        `gorm:"size:128;not null;index"`
	CompletedAt *time.Time    `gorm:""`
	FailReason  string        `gorm:"size:512"`
}

// TableName specifies the table name for OrderModel
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain order
func (m *OrderModel) ToDomain() *escrow.Order {
	order := &escrow.Order{
		BuyerID:     m.BuyerID,
		AccountID:   m.AccountID,
		Amount:      m.Amount,
		Status:      escrow.OrderStatus(m.Status),
		ReceiptRef:  m.ReceiptRef,
		CompletedAt: m.CompletedAt,
		FailReason:  m.FailReason,
	}
	m.PopulateAggregateRoot(&order.BaseAggregateRoot)
	return order
}

// OrderModelFromDomain converts a domain order to its persistence model
func OrderModelFromDomain(order *escrow.Order) *OrderModel {
	m := &OrderModel{
		BuyerID:     order.BuyerID,
		AccountID:   order.AccountID,
		Amount:      order.Amount,
		Status:      string(order.Status),
		ReceiptRef:  order.ReceiptRef,
		CompletedAt: order.CompletedAt,
		FailReason:  order.FailReason,
	}
	m.FromDomainAggregateRoot(order.BaseAggregateRoot)
	return m
}

// WithdrawalModel is the persistence model for payout obligations
type WithdrawalModel struct {
	AggregateModel
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Amount      int64      `gorm:"not null"`
	Status      string     `gorm:"size:16;not null;index"`
	Reason      string     `gorm:"size:32;not null"`
	OrderID     *uuid.UUID `gorm:"type:uuid;index"`
	BankName    string     `gorm:"size:255"`
	BankAccount string     `gorm:"size:64"`
	Note        string     `gorm:"size:512"`
	SettledAt   *time.Time `gorm:""`
}

// TableName specifies the table name for WithdrawalModel
func (WithdrawalModel) TableName() string {
	return "withdrawals"
}

// ToDomain converts the persistence model to a domain withdrawal
func (m *WithdrawalModel) ToDomain() *escrow.Withdrawal {
	withdrawal := &escrow.Withdrawal{
		UserID:      m.UserID,
		Amount:      m.Amount,
		Status:      escrow.WithdrawalStatus(m.Status),
		Reason:      escrow.WithdrawalReason(m.Reason),
		OrderID:     m.OrderID,
		BankName:    m.BankName,
		BankAccount: m.BankAccount,
		Note:        m.Note,
		SettledAt:   m.SettledAt,
	}
	m.PopulateAggregateRoot(&withdrawal.BaseAggregateRoot)
	return withdrawal
}

// WithdrawalModelFromDomain converts a domain withdrawal to its persistence model
func WithdrawalModelFromDomain(withdrawal *escrow.Withdrawal) *WithdrawalModel {
	m := &WithdrawalModel{
		UserID:      withdrawal.UserID,
		Amount:      withdrawal.Amount,
		Status:      string(withdrawal.Status),
		Reason:      string(withdrawal.Reason),
		OrderID:     withdrawal.OrderID,
		BankName:    withdrawal.BankName,
		BankAccount: withdrawal.BankAccount,
		Note:        withdrawal.Note,
		SettledAt:   withdrawal.SettledAt,
	}
	m.FromDomainAggregateRoot(withdrawal.BaseAggregateRoot)
	return m
}
