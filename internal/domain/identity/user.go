package identity

import (
	"strings"
	"time"

	"github.com/escrowdesk/backend/internal/domain/shared"
)

// User represents a marketplace participant (buyer or seller).
// Users are created on first contact with the bot and are never deleted.
// Balance is held in the smallest currency unit.
type User struct {
	shared.BaseAggregateRoot
	ExternalID  int64 // chat platform user ID, unique
	Handle      string
	Balance     int64
	BankName    string
	BankAccount string
}

// NewUser creates a new user from the external chat identity
func NewUser(externalID int64, handle string) (*User, error) {
	if externalID == 0 {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ID", "External ID cannot be zero")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ExternalID:        externalID,
		Handle:            strings.TrimSpace(handle),
		Balance:           0,
	}, nil
}

// UpdateHandle refreshes the display handle reported by the chat platform
func (u *User) UpdateHandle(handle string) {
	handle = strings.TrimSpace(handle)
	if handle == "" || handle == u.Handle {
		return
	}
	u.Handle = handle
	u.UpdatedAt = time.Now()
}

// SetBankDetails sets the payout destination for withdrawals
func (u *User) SetBankDetails(bankName, bankAccount string) error {
	bankName = strings.TrimSpace(bankName)
	bankAccount = strings.TrimSpace(bankAccount)
	if bankName == "" || bankAccount == "" {
		return shared.NewDomainError("INVALID_BANK_DETAILS", "Bank name and account cannot be empty")
	}
	u.BankName = bankName
	u.BankAccount = bankAccount
	u.UpdatedAt = time.Now()
	return nil
}

// HasBankDetails reports whether the user can receive payouts
func (u *User) HasBankDetails() bool {
	return u.BankName != "" && u.BankAccount != ""
}

// Credit adds amount to the balance
func (u *User) Credit(amount int64) error {
	if amount <= 0 {
		return shared.NewDomainError("INVALID_AMOUNT", "Credit amount must be positive")
	}
	u.Balance += amount
	u.UpdatedAt = time.Now()
	return nil
}

// Debit removes amount from the balance
func (u *User) Debit(amount int64) error {
	if amount <= 0 {
		return shared.NewDomainError("INVALID_AMOUNT", "Debit amount must be positive")
	}
	if amount > u.Balance {
		return shared.ErrInsufficientBalance
	}
	u.Balance -= amount
	u.UpdatedAt = time.Now()
	return nil
}
