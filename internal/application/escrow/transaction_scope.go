package escrow

import (
	"context"

	"github.com/escrowdesk/backend/internal/domain/escrow"
	"github.com/escrowdesk/backend/internal/domain/identity"
	"github.com/escrowdesk/backend/internal/domain/listing"
)

// TransactionScope provides transactional access to every repository the
// order state machine mutates. Completing an order touches the order, the
// account and the seller's balance; partial application of any of those is
// the primary correctness hazard, so they commit as one unit or not at all.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the escrow-side repositories
// within a transaction
type TransactionalRepositories interface {
	AccountRepo() listing.AccountRepository
	ReservationRepo() listing.ReservationRepository
	OrderRepo() escrow.OrderRepository
	UserRepo() identity.UserRepository
	WithdrawalRepo() escrow.WithdrawalRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Used in tests where the mocked repositories carry no transactional state.
type NoOpTransactionScope struct {
	accountRepo     listing.AccountRepository
	reservationRepo listing.ReservationRepository
	orderRepo       escrow.OrderRepository
	userRepo        identity.UserRepository
	withdrawalRepo  escrow.WithdrawalRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	accountRepo listing.AccountRepository,
	reservationRepo listing.ReservationRepository,
	orderRepo escrow.OrderRepository,
	userRepo identity.UserRepository,
	withdrawalRepo escrow.WithdrawalRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		accountRepo:     accountRepo,
		reservationRepo: reservationRepo,
		orderRepo:       orderRepo,
		userRepo:        userRepo,
		withdrawalRepo:  withdrawalRepo,
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

// UserRepo returns the user repository
func (s *NoOpTransactionScope) UserRepo() identity.UserRepository {
	return s.userRepo
}

// WithdrawalRepo returns the withdrawal repository
func (s *NoOpTransactionScope) WithdrawalRepo() escrow.WithdrawalRepository {
	return s.withdrawalRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
