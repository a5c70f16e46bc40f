package persistence

import (
	"context"

	applisting "github.com/escrowdesk/backend/internal/application/listing"
	"github.com/escrowdesk/backend/internal/domain/escrow"
	"github.com/escrowdesk/backend/internal/domain/listing"
	"gorm.io/gorm"
)

// GormListingTransactionScope implements the listing-side TransactionScope
// using GORM transactions.
type GormListingTransactionScope struct {
	db *gorm.DB
}

// NewGormListingTransactionScope creates a new GormListingTransactionScope
func NewGormListingTransactionScope(db *gorm.DB) *GormListingTransactionScope {
	return &GormListingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormListingTransactionScope) Execute(ctx context.Context, fn func(repos applisting.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormListingRepositories{tx: tx})
	})
}

type gormListingRepositories struct {
	tx *gorm.DB
}

// AccountRepo returns the account repository scoped to the current transaction
func (r *gormListingRepositories) AccountRepo() listing.AccountRepository {
	return NewGormAccountRepository(r.tx)
}

// ReservationRepo returns the reservation repository scoped to the current transaction
func (r *gormListingRepositories) ReservationRepo() listing.ReservationRepository {
	return NewGormReservationRepository(r.tx)
}

// OrderRepo returns the order repository scoped to the current transaction
func (r *gormListingRepositories) OrderRepo() escrow.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

var _ applisting.TransactionScope = (*GormListingTransactionScope)(nil)
var _ applisting.TransactionalRepositories = (*gormListingRepositories)(nil)
