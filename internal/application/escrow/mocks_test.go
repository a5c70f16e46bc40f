package escrow

import (
	"context"
	"time"

	"github.com/escrowdesk/backend/internal/domain/escrow"
	"github.com/escrowdesk/backend/internal/domain/identity"
	"github.com/escrowdesk/backend/internal/domain/listing"
	"github.com/escrowdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of listing.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAvailable(ctx context.Context, platform listing.Platform, filter shared.Filter) ([]listing.Account, int64, error) {
	args := m.Called(ctx, platform, filter)
	return args.Get(0).([]listing.Account), args.Get(1).(int64), args.Error(2)
}

func (m *MockAccountRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]listing.Account, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).([]listing.Account), args.Error(1)
}

func (m *MockAccountRepository) Save(ctx context.Context, account *listing.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to listing.AccountStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReservationRepository is a mock implementation of listing.ReservationRepository
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindActiveByAccount(ctx context.Context, accountID uuid.UUID) (*listing.Reservation, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindExpired(ctx context.Context) ([]listing.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]listing.Reservation), args.Error(1)
}

func (m *MockReservationRepository) Save(ctx context.Context, reservation *listing.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of escrow.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*escrow.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*escrow.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]escrow.Order, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).([]escrow.Order), args.Error(1)
}

func (m *MockOrderRepository) FindActiveByAccount(ctx context.Context, accountID uuid.UUID) (*escrow.Order, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*escrow.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *escrow.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByExternalID(ctx context.Context, externalID int64) (*identity.User, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) CreditBalance(ctx context.Context, id uuid.UUID, delta int64) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockUserRepository) DebitBalance(ctx context.Context, id uuid.UUID, delta int64) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

// MockWithdrawalRepository is a mock implementation of escrow.WithdrawalRepository
type MockWithdrawalRepository struct {
	mock.Mock
}

func (m *MockWithdrawalRepository) FindByID(ctx context.Context, id uuid.UUID) (*escrow.Withdrawal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*escrow.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]escrow.Withdrawal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]escrow.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) Save(ctx context.Context, withdrawal *escrow.Withdrawal) error {
	args := m.Called(ctx, withdrawal)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// MockPaymentVerifier is a mock implementation of escrow.PaymentVerifier
type MockPaymentVerifier struct {
	mock.Mock
}

func (m *MockPaymentVerifier) Verify(ctx context.Context, receiptRef string) (*escrow.VerificationResult, error) {
	args := m.Called(ctx, receiptRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*escrow.VerificationResult), args.Error(1)
}

// MockIdempotencyStore is a mock implementation of shared.IdempotencyStore
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockReceiptStorage is a mock implementation of ReceiptStorage
type MockReceiptStorage struct {
	mock.Mock
}

func (m *MockReceiptStorage) Delete(ctx context.Context, objectKey string) error {
	args := m.Called(ctx, objectKey)
	return args.Error(0)
}

// MockTeardownScheduler is a mock implementation of TeardownScheduler
type MockTeardownScheduler struct {
	mock.Mock
}

func (m *MockTeardownScheduler) ScheduleTeardown(accountID uuid.UUID, after time.Duration) {
	m.Called(accountID, after)
}
