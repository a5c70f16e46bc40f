package listing

import (
	"github.com/escrowdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types for the listing context
const (
	EventTypeAccountListed      = "listing.account_listed"
	EventTypeAccountReserved    = "listing.account_reserved"
	EventTypeAccountReleased    = "listing.account_released"
	EventTypeAccountDeleted     = "listing.account_deleted"
	EventTypeReservationExpired = "listing.reservation_expired"
)

const aggregateTypeAccount = "Account"

// AccountListedEvent is emitted when a seller lists a new account
type AccountListedEvent struct {
	shared.BaseDomainEvent
	SellerID uuid.UUID `json:"seller_id"`
	Platform Platform  `json:"platform"`
	Title    string    `json:"title"`
	Price    int64     `json:"price"`
}

// NewAccountListedEvent creates a new AccountListedEvent
func NewAccountListedEvent(account *Account) *AccountListedEvent {
	return &AccountListedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountListed, aggregateTypeAccount, account.ID),
		SellerID:        account.SellerID,
		Platform:        account.Platform,
		Title:           account.Title,
		Price:           account.Price,
	}
}

// AccountReservedEvent is emitted when a buyer wins a reservation
type AccountReservedEvent struct {
	shared.BaseDomainEvent
	BuyerID       uuid.UUID `json:"buyer_id"`
	SellerID      uuid.UUID `json:"seller_id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	Price         int64     `json:"price"`
}

// NewAccountReservedEvent creates a new AccountReservedEvent
func NewAccountReservedEvent(account *Account, reservation *Reservation) *AccountReservedEvent {
	return &AccountReservedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountReserved, aggregateTypeAccount, account.ID),
		BuyerID:         reservation.BuyerID,
		SellerID:        account.SellerID,
		ReservationID:   reservation.ID,
		Price:           account.Price,
	}
}

// ReservationExpiredEvent is emitted when the sweeper releases an expired
// reservation and returns the account to the pool
type ReservationExpiredEvent struct {
	shared.BaseDomainEvent
	BuyerID       uuid.UUID `json:"buyer_id"`
	ReservationID uuid.UUID `json:"reservation_id"`
}

// NewReservationExpiredEvent creates a new ReservationExpiredEvent
func NewReservationExpiredEvent(accountID uuid.UUID, reservation *Reservation) *ReservationExpiredEvent {
	return &ReservationExpiredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReservationExpired, aggregateTypeAccount, accountID),
		BuyerID:         reservation.BuyerID,
		ReservationID:   reservation.ID,
	}
}

// AccountDeletedEvent is emitted when a listing is hard-deleted
type AccountDeletedEvent struct {
	shared.BaseDomainEvent
	SellerID uuid.UUID `json:"seller_id"`
	Title    string    `json:"title"`
}

// NewAccountDeletedEvent creates a new AccountDeletedEvent
func NewAccountDeletedEvent(account *Account) *AccountDeletedEvent {
	return &AccountDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountDeleted, aggregateTypeAccount, account.ID),
		SellerID:        account.SellerID,
		Title:           account.Title,
	}
}
