package listing

import (
	"context"

	"github.com/escrowdesk/backend/internal/domain/escrow"
	"github.com/escrowdesk/backend/internal/domain/listing"
)

// TransactionScope provides transactional access to the repositories the
// reservation flow touches. All repository operations inside Execute share
// one database transaction and commit or roll back atomically.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the listing-side repositories
// within a transaction. OrderRepo is included because reservation expiry must
// check whether an order consumed the reservation before releasing it.
type TransactionalRepositories interface {
	AccountRepo() listing.AccountRepository
	ReservationRepo() listing.ReservationRepository
	OrderRepo() escrow.OrderRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Used in tests where the mocked repositories carry no transactional state.
type NoOpTransactionScope struct {
	accountRepo     listing.AccountRepository
	reservationRepo listing.ReservationRepository
	orderRepo       escrow.OrderRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	accountRepo listing.AccountRepository,
	reservationRepo listing.ReservationRepository,
	orderRepo escrow.OrderRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		accountRepo:     accountRepo,
		reservationRepo: reservationRepo,
		orderRepo:       orderRepo,
	}
}

// Execute runs the function directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// AccountRepo returns the account repository
func (s *NoOpTransactionScope) AccountRepo() listing.AccountRepository {
	return s.accountRepo
}

// ReservationRepo returns the reservation repository
func (s *NoOpTransactionScope) ReservationRepo() listing.ReservationRepository {
	return s.reservationRepo
}

// OrderRepo returns the order repository
func (s *NoOpTransactionScope) OrderRepo() escrow.OrderRepository {
	return s.orderRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
