package escrow

import (
	"context"
	"errors"

	"github.com/escrowdesk/backend/internal/domain/listing"
	"github.com/escrowdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TeardownService performs the deferred post-completion cleanup: hard-deleting
// a sold account together with its orders (cascade via foreign key). The job
// body re-reads authoritative state, so a stale or repeated invocation is a
// logged no-op rather than a destructive one.
type TeardownService struct {
	txScope TransactionScope
	logger  *zap.Logger
}

// NewTeardownService creates a new TeardownService
func NewTeardownService(txScope TransactionScope, logger *zap.Logger) *TeardownService {
	return &TeardownService{
		txScope: txScope,
		logger:  logger,
	}
}

// Teardown removes the account only if it is currently SOLD.
// Returns true when the account was deleted.
func (s *TeardownService) Teardown(ctx context.Context, accountID uuid.UUID) (bool, error) {
	var deleted bool

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		account, err := repos.AccountRepo().FindByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				// Already torn down.
				return nil
			}
			return err
		}
		if account.Status != listing.AccountStatusSold {
			s.logger.Warn("Teardown skipped, account not sold",
				zap.String("account_id", accountID.String()),
				zap.String("status", account.Status.String()),
			)
			return nil
		}

		if err := repos.AccountRepo().Delete(ctx, accountID); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		s.logger.Error("Teardown failed",
			zap.String("account_id", accountID.String()),
			zap.Error(err),
		)
		return false, err
	}

	if deleted {
		s.logger.Info("Account torn down after sale",
			zap.String("account_id", accountID.String()),
		)
	}

	return deleted, nil
}
