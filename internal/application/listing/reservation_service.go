package listing

import (
	"context"
	"errors"
	"time"

	"github.com/escrowdesk/backend/internal/domain/listing"
	"github.com/escrowdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReservationService acquires time-bounded exclusive claims on accounts for
// prospective buyers. The race between concurrent buyers is settled by the
// store's conditional status update, never by in-process locking: multiple
// backend instances may run this code concurrently.
type ReservationService struct {
	txScope  TransactionScope
	ttl      time.Duration
	eventBus shared.EventPublisher
	logger   *zap.Logger
}

// NewReservationService creates a new ReservationService
func NewReservationService(
	txScope TransactionScope,
	ttl time.Duration,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *ReservationService {
	if ttl <= 0 {
		ttl = listing.DefaultReservationTTL
	}
	return &ReservationService{
		txScope:  txScope,
		ttl:      ttl,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Reserve claims the account for the buyer. Exactly one of any number of
// concurrent attempts succeeds; the rest receive ErrAccountNotAvailable.
func (s *ReservationService) Reserve(ctx context.Context, accountID, buyerID uuid.UUID) (*ReservationResponse, error) {
	var account *listing.Account
	var reservation *listing.Reservation

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		// The conditional update is the arbiter: whoever flips
		// AVAILABLE -> PENDING first owns the account for the TTL window.
		err := repos.AccountRepo().UpdateStatusIf(ctx, accountID, listing.AccountStatusAvailable, listing.AccountStatusPending)
		if err != nil {
			if errors.Is(err, shared.ErrConcurrencyConflict) || errors.Is(err, shared.ErrNotFound) {
				return shared.ErrAccountNotAvailable
			}
			return err
		}

		account, err = repos.AccountRepo().FindByID(ctx, accountID)
		if err != nil {
			return err
		}

		reservation = listing.NewReservation(accountID, buyerID, time.Now().Add(s.ttl))
		return repos.ReservationRepo().Save(ctx, reservation)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Account reserved",
		zap.String("account_id", accountID.String()),
		zap.String("buyer_id", buyerID.String()),
		zap.Time("expire_at", reservation.ExpireAt),
	)

	s.publish(ctx, listing.NewAccountReservedEvent(account, reservation))

	return &ReservationResponse{
		ID:        reservation.ID,
		Account:   ToAccountResponse(account),
		BuyerID:   buyerID,
		ExpireAt:  reservation.ExpireAt,
		CreatedAt: reservation.CreatedAt,
	}, nil
}

func (s *ReservationService) publish(ctx context.Context, event shared.DomainEvent) {
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
