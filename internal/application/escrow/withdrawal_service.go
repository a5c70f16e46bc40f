package escrow

import (
	"context"
	"errors"

	"github.com/escrowdesk/backend/internal/domain/escrow"
	"github.com/escrowdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WithdrawalService records payout obligations against the escrow. The
// actual bank transfer happens in a back-office process; this service only
// moves balance out of circulation and keeps the ledger consistent.
type WithdrawalService struct {
	txScope   TransactionScope
	minAmount int64
	eventBus  shared.EventPublisher
	logger    *zap.Logger
}

// NewWithdrawalService creates a new WithdrawalService. minAmount is the
// smallest payout worth processing; requests below it are refused.
func NewWithdrawalService(txScope TransactionScope, minAmount int64, eventBus shared.EventPublisher, logger *zap.Logger) *WithdrawalService {
	return &WithdrawalService{
		txScope:   txScope,
		minAmount: minAmount,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Request debits the user's balance and records a SELLER_PAYOUT withdrawal.
// The debit and the withdrawal insert commit as one transaction; the
// conditional balance update refuses overdrafts atomically.
func (s *WithdrawalService) Request(ctx context.Context, userID uuid.UUID, amount int64) (*WithdrawalResponse, error) {
	if amount < s.minAmount {
		return nil, shared.ErrInsufficientBalance
	}

	withdrawal, err := escrow.NewWithdrawal(userID, amount, escrow.WithdrawalReasonSellerPayout)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		user, err := repos.UserRepo().FindByID(ctx, userID)
		if err != nil {
			return err
		}
		withdrawal.WithBankSnapshot(user.BankName, user.BankAccount)

		if err := repos.UserRepo().DebitBalance(ctx, userID, amount); err != nil {
			return err
		}
		return repos.WithdrawalRepo().Save(ctx, withdrawal)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Withdrawal requested",
		zap.String("withdrawal_id", withdrawal.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int64("amount", amount),
	)

	s.publish(ctx, escrow.NewWithdrawalRequestedEvent(withdrawal))

	resp := ToWithdrawalResponse(withdrawal)
	return &resp, nil
}

// MarkPaid records that the back office settled the payout
func (s *WithdrawalService) MarkPaid(ctx context.Context, withdrawalID uuid.UUID) (*WithdrawalResponse, error) {
	return s.settle(ctx, withdrawalID, func(w *escrow.Withdrawal, _ TransactionalRepositories) error {
		return w.MarkPaid()
	})
}

// Reject declines the payout and returns the debited amount to the balance.
// Refund withdrawals never debited the balance, so nothing is returned.
func (s *WithdrawalService) Reject(ctx context.Context, withdrawalID uuid.UUID, note string) (*WithdrawalResponse, error) {
	return s.settle(ctx, withdrawalID, func(w *escrow.Withdrawal, repos TransactionalRepositories) error {
		if err := w.Reject(note); err != nil {
			return err
		}
		if w.Reason == escrow.WithdrawalReasonSellerPayout {
			return repos.UserRepo().CreditBalance(ctx, w.UserID, w.Amount)
		}
		return nil
	})
}

// Get returns a single withdrawal
func (s *WithdrawalService) Get(ctx context.Context, withdrawalID uuid.UUID) (*WithdrawalResponse, error) {
	var withdrawal *escrow.Withdrawal
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		withdrawal, err = repos.WithdrawalRepo().FindByID(ctx, withdrawalID)
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := ToWithdrawalResponse(withdrawal)
	return &resp, nil
}

func (s *WithdrawalService) settle(ctx context.Context, withdrawalID uuid.UUID, apply func(*escrow.Withdrawal, TransactionalRepositories) error) (*WithdrawalResponse, error) {
	var withdrawal *escrow.Withdrawal

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		withdrawal, err = repos.WithdrawalRepo().FindByID(ctx, withdrawalID)
		if err != nil {
			return err
		}
		if err := apply(withdrawal, repos); err != nil {
			return err
		}
		return repos.WithdrawalRepo().Save(ctx, withdrawal)
	})
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) && !errors.Is(err, shared.ErrInvalidState) {
			s.logger.Error("Failed to settle withdrawal",
				zap.String("withdrawal_id", withdrawalID.String()),
				zap.Error(err),
			)
		}
		return nil, err
	}

	resp := ToWithdrawalResponse(withdrawal)
	return &resp, nil
}

func (s *WithdrawalService) publish(ctx context.Context, event shared.DomainEvent) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish event",
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
	}
}
