package persistence

import (
	"context"

	appescrow "github.com/escrowdesk/backend/internal/application/escrow"
	"github.com/escrowdesk/backend/internal/domain/escrow"
	"github.com/escrowdesk/backend/internal/domain/identity"
	"github.com/escrowdesk/backend/internal/domain/listing"
	"gorm.io/gorm"
)

// GormEscrowTransactionScope implements the escrow-side TransactionScope
// using GORM transactions. Order completion mutates the order, the account
// and the seller balance inside one Execute call; this scope makes those
// commit or roll back together.
type GormEscrowTransactionScope struct {
	db *gorm.DB
}

// NewGormEscrowTransactionScope creates a new GormEscrowTransactionScope
func NewGormEscrowTransactionScope(db *gorm.DB) *GormEscrowTransactionScope {
	return &GormEscrowTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormEscrowTransactionScope) Execute(ctx context.Context, fn func(repos appescrow.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormEscrowRepositories{tx: tx})
	})
}

type gormEscrowRepositories struct {
	tx *gorm.DB
}

// AccountRepo returns the account repository scoped to the current transaction
func (r *gormEscrowRepositories) AccountRepo() listing.AccountRepository {
	return NewGormAccountRepository(r.tx)
}

// ReservationRepo returns the reservation repository scoped to the current transaction
func (r *gormEscrowRepositories) ReservationRepo() listing.ReservationRepository {
	return NewGormReservationRepository(r.tx)
}

// OrderRepo returns the order repository scoped to the current transaction
func (r *gormEscrowRepositories) OrderRepo() escrow.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// UserRepo returns the user repository scoped to the current transaction
func (r *gormEscrowRepositories) UserRepo() identity.UserRepository {
	return NewGormUserRepository(r.tx)
}

// WithdrawalRepo returns the withdrawal repository scoped to the current transaction
func (r *gormEscrowRepositories) WithdrawalRepo() escrow.WithdrawalRepository {
	return NewGormWithdrawalRepository(r.tx)
}

var _ appescrow.TransactionScope = (*GormEscrowTransactionScope)(nil)
var _ appescrow.TransactionalRepositories = (*gormEscrowRepositories)(nil)
