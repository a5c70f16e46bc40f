package models

import (
	"time"

	"github.com/escrowdesk/backend/internal/domain/listing"
	"github.com/google/uuid"
)

// AccountModel is the persistence model for listed accounts
type AccountModel struct {
	AggregateModel
	SellerID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Platform string     `gorm:"size:16;not null;index"`
	Title    string     `gorm:"size:255;not null"`
	Price    int64      `gorm:"not null"`
	Status   string     `gorm:"size:16;not null;index"`
	SoldAt   *time.Time `gorm:""`
}

// TableName specifies the table name for AccountModel
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain account
func (m *AccountModel) ToDomain() *listing.Account {
	account := &listing.Account{
		SellerID: m.SellerID,
		Platform: listing.Platform(m.Platform),
		Title:    m.Title,
		Price:    m.Price,
		Status:   listing.AccountStatus(m.Status),
		SoldAt:   m.SoldAt,
	}
	m.PopulateAggregateRoot(&account.BaseAggregateRoot)
	return account
}

// AccountModelFromDomain converts a domain account to its persistence model
func AccountModelFromDomain(account *listing.Account) *AccountModel {
	m := &AccountModel{
		SellerID: account.SellerID,
		Platform: string(account.Platform),
		Title:    account.Title,
		Price:    account.Price,
		Status:   string(account.Status),
		SoldAt:   account.SoldAt,
	}
	m.FromDomainAggregateRoot(account.BaseAggregateRoot)
	return m
}

// ReservationModel is the persistence model for reservations.
// A partial unique index (enforced in migrations) guarantees at most one
// active row per account.
type ReservationModel struct {
	BaseModel
	AccountID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	BuyerID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ExpireAt   time.Time  `gorm:"not null;index"`
	Released   bool       `gorm:"not null;default:false"`
	Consumed   bool       `gorm:"not null;default:false"`
	ReleasedAt *time.Time `gorm:""`
}

// TableName specifies the table name for ReservationModel
func (ReservationModel) TableName() string {
	return "reservations"
}

// ToDomain converts the persistence model to a domain reservation
func (m *ReservationModel) ToDomain() *listing.Reservation {
	return &listing.Reservation{
		BaseEntity: m.BaseModel.ToDomain(),
		AccountID:  m.AccountID,
		BuyerID:    m.BuyerID,
		ExpireAt:   m.ExpireAt,
		Released:   m.Released,
		Consumed:   m.Consumed,
		ReleasedAt: m.ReleasedAt,
	}
}

// ReservationModelFromDomain converts a domain reservation to its persistence model
func ReservationModelFromDomain(reservation *listing.Reservation) *ReservationModel {
	m := &ReservationModel{
		AccountID:  reservation.AccountID,
		BuyerID:    reservation.BuyerID,
		ExpireAt:   reservation.ExpireAt,
		Released:   reservation.Released,
		Consumed:   reservation.Consumed,
		ReleasedAt: reservation.ReleasedAt,
	}
	m.FromDomainBaseEntity(reservation.BaseEntity)
	return m
}
