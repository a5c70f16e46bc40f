package listing

import (
	"context"

	"github.com/escrowdesk/backend/internal/domain/escrow"
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

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
