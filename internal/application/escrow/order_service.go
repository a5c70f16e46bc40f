package escrow

import (
	"context"
	"errors"
	"time"

	"github.com/escrowdesk/backend/internal/domain/escrow"
	"github.com/escrowdesk/backend/internal/domain/listing"
	"github.com/escrowdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTeardownDelay is the grace window between order completion and
// account teardown, long enough for notifications to go out first.
const DefaultTeardownDelay = 5 * time.Second

// TeardownScheduler schedules the deferred post-completion cleanup. The task
// carries only the account ID; the job body re-reads authoritative state.
type TeardownScheduler interface {
	ScheduleTeardown(accountID uuid.UUID, after time.Duration)
}

// OrderService drives an order through its lifecycle: creation after a
// verified payment, completion with the seller credit, and cancellation that
// reverses the reservation.
type OrderService struct {
	txScope       TransactionScope
	teardown      TeardownScheduler
	teardownDelay time.Duration
	eventBus      shared.EventPublisher
	logger        *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	txScope TransactionScope,
	teardown TeardownScheduler,
	teardownDelay time.Duration,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	if teardownDelay <= 0 {
		teardownDelay = DefaultTeardownDelay
	}
	return &OrderService{
		txScope:       txScope,
		teardown:      teardown,
		teardownDelay: teardownDelay,
		eventBus:      eventBus,
		logger:        logger,
	}
}

// Create inserts a pending order for a reserved account. The duplicate-order
// guard makes receipt double-submission idempotent: the second submission
// fails instead of producing a second order.
func (s *OrderService) Create(ctx context.Context, buyerID, accountID uuid.UUID, amount int64, receiptRef string) (*OrderResponse, error) {
	order, err := escrow.NewOrder(buyerID, accountID, amount, receiptRef)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		account, err := repos.AccountRepo().FindByID(ctx, accountID)
		if err != nil {
			return err
		}
		if account.Status != listing.AccountStatusPending {
			return shared.ErrAccountNotAvailable
		}

		_, err = repos.OrderRepo().FindActiveByAccount(ctx, accountID)
		switch {
		case err == nil:
			return shared.ErrDuplicateActiveOrder
		case errors.Is(err, shared.ErrNotFound):
			// no active order, proceed
		default:
			return err
		}

		// The reservation is the buyer's exclusive claim; only its holder
		// may turn it into an order. Consuming it makes the expiry sweep
		// a no-op for this account.
		reservation, err := repos.ReservationRepo().FindActiveByAccount(ctx, accountID)
		if err == nil {
			if reservation.BuyerID != buyerID {
				return shared.ErrAccountNotAvailable
			}
			reservation.Consume()
			if err := repos.ReservationRepo().Save(ctx, reservation); err != nil {
				return err
			}
		} else if !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("account_id", accountID.String()),
		zap.String("buyer_id", buyerID.String()),
		zap.Int64("amount", amount),
	)

	s.publish(ctx, escrow.NewOrderCreatedEvent(order))

	resp := ToOrderResponse(order)
	return &resp, nil
}

// Complete finalizes the sale: order COMPLETED, account SOLD and the seller
// credited, all in one transaction. Teardown of the account and its orders is
// scheduled after a grace delay so notifications reach both parties first.
func (s *OrderService) Complete(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	var order *escrow.Order
	var sellerID uuid.UUID

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.ErrOrderNotFound
			}
			return err
		}
		if err := order.Complete(); err != nil {
			return err
		}

		account, err := repos.AccountRepo().FindByID(ctx, order.AccountID)
		if err != nil {
			return err
		}
		sellerID = account.SellerID

		if err := repos.AccountRepo().UpdateStatusIf(ctx, account.ID, listing.AccountStatusPending, listing.AccountStatusSold); err != nil {
			if errors.Is(err, shared.ErrConcurrencyConflict) {
				return shared.ErrInvalidState
			}
			return err
		}

		// Atomic in-place increment; concurrent completions crediting the
		// same seller are serialized by the row update, not by this process.
		if err := repos.UserRepo().CreditBalance(ctx, sellerID, account.Price); err != nil {
			return err
		}

		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order completed",
		zap.String("order_id", orderID.String()),
		zap.String("account_id", order.AccountID.String()),
		zap.String("seller_id", sellerID.String()),
		zap.Int64("credited", order.Amount),
	)

	s.publish(ctx, escrow.NewOrderCompletedEvent(order, sellerID))

	if s.teardown != nil {
		s.teardown.ScheduleTeardown(order.AccountID, s.teardownDelay)
	}

	resp := ToOrderResponse(order)
	return &resp, nil
}

// Cancel reverses a pending order: the account returns to the pool and the
// order row is removed. The order only existed because a payment was already
// verified, so the escrow is holding the buyer's money; cancellation records
// an ORDER_REFUND withdrawal in the same transaction that removes the order.
func (s *OrderService) Cancel(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	var order *escrow.Order
	var refund *escrow.Withdrawal

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.ErrOrderNotFound
			}
			return err
		}
		if err := order.Cancel(); err != nil {
			return err
		}

		refund, err = escrow.NewWithdrawal(order.BuyerID, order.Amount, escrow.WithdrawalReasonOrderRefund)
		if err != nil {
			return err
		}
		refund.WithOrder(order.ID)

		buyer, err := repos.UserRepo().FindByID(ctx, order.BuyerID)
		if err != nil {
			return err
		}
		refund.WithBankSnapshot(buyer.BankName, buyer.BankAccount)
		if err := repos.WithdrawalRepo().Save(ctx, refund); err != nil {
			return err
		}

		err = repos.AccountRepo().UpdateStatusIf(ctx, order.AccountID, listing.AccountStatusPending, listing.AccountStatusAvailable)
		if err != nil && !errors.Is(err, shared.ErrConcurrencyConflict) && !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		reservation, err := repos.ReservationRepo().FindActiveByAccount(ctx, order.AccountID)
		if err == nil {
			reservation.Release()
			if err := repos.ReservationRepo().Save(ctx, reservation); err != nil {
				return err
			}
		} else if !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		return repos.OrderRepo().Delete(ctx, order.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order cancelled",
		zap.String("order_id", orderID.String()),
		zap.String("account_id", order.AccountID.String()),
		zap.String("refund_id", refund.ID.String()),
		zap.Int64("refund_amount", refund.Amount),
	)

	s.publish(ctx, escrow.NewOrderCancelledEvent(order))
	s.publish(ctx, escrow.NewWithdrawalRequestedEvent(refund))

	resp := ToOrderResponse(order)
	return &resp, nil
}

// Fail marks a pending order as failed without touching the account. Used
// when a verified payment later proves fraudulent and the dispute is handled
// out of band.
func (s *OrderService) Fail(ctx context.Context, orderID uuid.UUID, reason string) (*OrderResponse, error) {
	var order *escrow.Order

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.ErrOrderNotFound
			}
			return err
		}
		if err := order.Fail(reason); err != nil {
			return err
		}
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Warn("Order failed",
		zap.String("order_id", orderID.String()),
		zap.String("reason", reason),
	)

	resp := ToOrderResponse(order)
	return &resp, nil
}

// Get returns a single order
func (s *OrderService) Get(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	var order *escrow.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, orderID)
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrOrderNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

func (s *OrderService) publish(ctx context.Context, event shared.DomainEvent) {
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
