package listing

import (
	"context"
	"errors"

	"github.com/escrowdesk/backend/internal/domain/listing"
	"github.com/escrowdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccountService manages the listing lifecycle outside the escrow flow:
// creating listings, browsing them, and seller-initiated deletion.
type AccountService struct {
	txScope  TransactionScope
	eventBus shared.EventPublisher
	logger   *zap.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(txScope TransactionScope, eventBus shared.EventPublisher, logger *zap.Logger) *AccountService {
	return &AccountService{
		txScope:  txScope,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Create lists a new account for sale
func (s *AccountService) Create(ctx context.Context, sellerID uuid.UUID, platform listing.Platform, title string, price int64) (*AccountResponse, error) {
	account, err := listing.NewAccount(sellerID, platform, title, price)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		return repos.AccountRepo().Save(ctx, account)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Account listed",
		zap.String("account_id", account.ID.String()),
		zap.String("seller_id", sellerID.String()),
		zap.Int64("price", price),
	)

	s.publishAll(ctx, account.GetDomainEvents())
	account.ClearDomainEvents()

	resp := ToAccountResponse(account)
	return &resp, nil
}

// Get returns a single account
func (s *AccountService) Get(ctx context.Context, accountID uuid.UUID) (*AccountResponse, error) {
	var account *listing.Account
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		account, err = repos.AccountRepo().FindByID(ctx, accountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := ToAccountResponse(account)
	return &resp, nil
}

// ListAvailable returns available listings, optionally filtered by platform
func (s *AccountService) ListAvailable(ctx context.Context, platform listing.Platform, filter shared.Filter) (*shared.Paginated[AccountResponse], error) {
	var accounts []listing.Account
	var total int64

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		accounts, total, err = repos.AccountRepo().FindAvailable(ctx, platform, filter)
		return err
	})
	if err != nil {
		return nil, err
	}

	items := make([]AccountResponse, len(accounts))
	for i := range accounts {
		items[i] = ToAccountResponse(&accounts[i])
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Delete hard-deletes a listing on the seller's request. Only AVAILABLE
// accounts with no order rows referencing them may be deleted: a pending
// reservation must expire or resolve first, and sold accounts are removed
// by teardown.
func (s *AccountService) Delete(ctx context.Context, accountID, requesterID uuid.UUID) error {
	var deleted *listing.Account

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		account, err := repos.AccountRepo().FindByID(ctx, accountID)
		if err != nil {
			return err
		}
		if !account.IsOwnedBy(requesterID) {
			return shared.ErrForbidden
		}
		if !account.IsDeletable() {
			return shared.ErrAccountNotDeletable
		}

		count, err := repos.OrderRepo().CountByAccount(ctx, accountID)
		if err != nil {
			return err
		}
		if count > 0 {
			return shared.ErrAccountHasOrders
		}

		deleted = account
		return repos.AccountRepo().Delete(ctx, accountID)
	})
	if err != nil {
		if !errors.Is(err, shared.ErrForbidden) && !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Account deletion refused",
				zap.String("account_id", accountID.String()),
				zap.String("requester_id", requesterID.String()),
				zap.Error(err),
			)
		}
		return err
	}

	s.logger.Info("Account deleted",
		zap.String("account_id", accountID.String()),
		zap.String("seller_id", requesterID.String()),
	)

	s.publishAll(ctx, []shared.DomainEvent{listing.NewAccountDeletedEvent(deleted)})
	return nil
}

func (s *AccountService) publishAll(ctx context.Context, events []shared.DomainEvent) {
	if s.eventBus == nil || len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish events", zap.Error(err))
	}
}
