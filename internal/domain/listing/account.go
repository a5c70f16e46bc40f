package listing

import (
	"strings"
	"time"

	"github.com/escrowdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountStatus represents the lifecycle status of a listed account
type AccountStatus string

const (
	AccountStatusAvailable AccountStatus = "AVAILABLE"
	AccountStatusPending   AccountStatus = "PENDING"
	AccountStatusSold      AccountStatus = "SOLD"
)

// IsValid checks if the status is a valid AccountStatus
func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountStatusAvailable, AccountStatusPending, AccountStatusSold:
		return true
	}
	return false
}

// String returns the string representation of AccountStatus
func (s AccountStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// The reachable graph is exactly AVAILABLE -> PENDING -> {AVAILABLE, SOLD}.
func (s AccountStatus) CanTransitionTo(target AccountStatus) bool {
	switch s {
	case AccountStatusAvailable:
		return target == AccountStatusPending
	case AccountStatusPending:
		return target == AccountStatusAvailable || target == AccountStatusSold
	case AccountStatusSold:
		return false // terminal, removed by teardown
	}
	return false
}

// Platform is the category of the listed asset
type Platform string

const (
	PlatformChannel Platform = "CHANNEL"
	PlatformGroup   Platform = "GROUP"
)

// IsValid checks if the platform is known
func (p Platform) IsValid() bool {
	return p == PlatformChannel || p == PlatformGroup
}

// Account represents a tradeable online-account asset listed by a seller.
// It is the aggregate the reservation and order flows revolve around: at any
// moment it carries at most one active reservation and one non-terminal order.
type Account struct {
	shared.BaseAggregateRoot
	SellerID uuid.UUID
	Platform Platform
	Title    string
	Price    int64 // smallest currency unit
	Status   AccountStatus
	SoldAt   *time.Time
}

// NewAccount creates a new available listing
func NewAccount(sellerID uuid.UUID, platform Platform, title string, price int64) (*Account, error) {
	if sellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELLER", "Seller ID cannot be empty")
	}
	if !platform.IsValid() {
		return nil, shared.NewDomainError("INVALID_PLATFORM", "Unknown platform category")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if price <= 0 {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price must be positive")
	}

	account := &Account{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SellerID:          sellerID,
		Platform:          platform,
		Title:             title,
		Price:             price,
		Status:            AccountStatusAvailable,
	}

	account.AddDomainEvent(NewAccountListedEvent(account))

	return account, nil
}

// Reserve transitions the account to PENDING. The authoritative race arbiter
// is the repository's conditional update; this method guards in-memory state.
func (a *Account) Reserve() error {
	if !a.Status.CanTransitionTo(AccountStatusPending) {
		return shared.ErrAccountNotAvailable
	}
	a.Status = AccountStatusPending
	a.UpdatedAt = time.Now()
	return nil
}

// Release returns a pending account to the listing pool
func (a *Account) Release() error {
	if !a.Status.CanTransitionTo(AccountStatusAvailable) {
		return shared.ErrInvalidState
	}
	a.Status = AccountStatusAvailable
	a.UpdatedAt = time.Now()
	return nil
}

// MarkSold finalizes the sale of a pending account
func (a *Account) MarkSold() error {
	if !a.Status.CanTransitionTo(AccountStatusSold) {
		return shared.ErrInvalidState
	}
	now := time.Now()
	a.Status = AccountStatusSold
	a.SoldAt = &now
	a.UpdatedAt = now
	return nil
}

// IsOwnedBy reports whether the given user is the seller
func (a *Account) IsOwnedBy(userID uuid.UUID) bool {
	return a.SellerID == userID
}

// IsDeletable reports whether the seller may delete the listing directly.
// Pending reservations must expire or resolve first; sold accounts are
// removed by teardown.
func (a *Account) IsDeletable() bool {
	return a.Status == AccountStatusAvailable
}
