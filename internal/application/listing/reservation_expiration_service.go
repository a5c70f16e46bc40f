package listing

import (
	"context"
	"errors"
	"time"

	"github.com/escrowdesk/backend/internal/domain/listing"
	"github.com/escrowdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReservationExpirationService releases reservations whose window has passed.
// The sweep body is idempotent and re-reads authoritative state before acting,
// so it tolerates running after the flow has already progressed: a reservation
// whose account carries an order is consumed, not released.
type ReservationExpirationService struct {
	txScope  TransactionScope
	eventBus shared.EventPublisher
	logger   *zap.Logger
}

// NewReservationExpirationService creates a new ReservationExpirationService
func NewReservationExpirationService(
	txScope TransactionScope,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *ReservationExpirationService {
	return &ReservationExpirationService{
		txScope:  txScope,
		eventBus: eventBus,
		logger:   logger,
	}
}

// ExpiredReservationStats contains statistics about a sweep run
type ExpiredReservationStats struct {
	TotalExpired int       `json:"total_expired"`
	Released     int       `json:"released"`
	Consumed     int       `json:"consumed"`
	Failed       int       `json:"failed"`
	ProcessedAt  time.Time `json:"processed_at"`
}

// ReleaseExpired finds and resolves all expired active reservations
func (s *ReservationExpirationService) ReleaseExpired(ctx context.Context) (*ExpiredReservationStats, error) {
	stats := &ExpiredReservationStats{ProcessedAt: time.Now()}

	var expired []listing.Reservation
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		expired, err = repos.ReservationRepo().FindExpired(ctx)
		return err
	})
	if err != nil {
		s.logger.Error("Failed to find expired reservations", zap.Error(err))
		return nil, err
	}

	stats.TotalExpired = len(expired)
	if stats.TotalExpired == 0 {
		return stats, nil
	}

	s.logger.Info("Found expired reservations", zap.Int("count", stats.TotalExpired))

	for i := range expired {
		released, err := s.resolveExpired(ctx, &expired[i])
		if err != nil {
			s.logger.Error("Failed to resolve expired reservation",
				zap.String("reservation_id", expired[i].ID.String()),
				zap.String("account_id", expired[i].AccountID.String()),
				zap.Error(err),
			)
			stats.Failed++
			continue
		}
		if released {
			stats.Released++
		} else {
			stats.Consumed++
		}
	}

	s.logger.Info("Completed reservation expiry sweep",
		zap.Int("total", stats.TotalExpired),
		zap.Int("released", stats.Released),
		zap.Int("consumed", stats.Consumed),
		zap.Int("failed", stats.Failed),
	)

	return stats, nil
}

// resolveExpired handles one expired reservation. Returns true when the
// account was returned to the pool, false when the reservation had already
// been consumed by an order.
func (s *ReservationExpirationService) resolveExpired(ctx context.Context, reservation *listing.Reservation) (bool, error) {
	var released bool

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		// Re-read inside the transaction; a concurrent cancel or order
		// creation may have resolved the reservation already.
		current, err := repos.ReservationRepo().FindByID(ctx, reservation.ID)
		if err != nil {
			return err
		}
		if !current.IsActive() {
			released = false
			return nil
		}

		// An order on the account means the claim was consumed and the
		// timer is a no-op.
		_, err = repos.OrderRepo().FindActiveByAccount(ctx, current.AccountID)
		switch {
		case err == nil:
			current.Consume()
			released = false
			return repos.ReservationRepo().Save(ctx, current)
		case errors.Is(err, shared.ErrNotFound):
			// fall through to release
		default:
			return err
		}

		current.Release()
		if err := repos.ReservationRepo().Save(ctx, current); err != nil {
			return err
		}

		// The account may have advanced past PENDING (e.g. completed and
		// sold); the conditional update makes the release a no-op then.
		err = repos.AccountRepo().UpdateStatusIf(ctx, current.AccountID, listing.AccountStatusPending, listing.AccountStatusAvailable)
		if err != nil && !errors.Is(err, shared.ErrConcurrencyConflict) && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		released = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if released {
		s.publish(ctx, listing.NewReservationExpiredEvent(reservation.AccountID, reservation))
		s.logger.Debug("Released expired reservation",
			zap.String("reservation_id", reservation.ID.String()),
			zap.String("account_id", reservation.AccountID.String()),
		)
	}

	return released, nil
}

func (s *ReservationExpirationService) publish(ctx context.Context, event shared.DomainEvent) {
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
