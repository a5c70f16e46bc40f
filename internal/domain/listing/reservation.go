package listing

import (
	"time"

	"github.com/escrowdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DefaultReservationTTL is how long a buyer holds an exclusive claim on an
// account before the sweeper returns it to the listing pool.
const DefaultReservationTTL = 10 * time.Minute

// Reservation is a time-bounded exclusive claim on an account by a
// prospective buyer. It is a soft lock: expiry is enforced by a background
// sweep that re-reads authoritative state, not by cancelling timers.
type Reservation struct {
	shared.BaseEntity
	AccountID  uuid.UUID
	BuyerID    uuid.UUID
	ExpireAt   time.Time
	Released   bool // returned to the pool (expiry or cancellation)
	Consumed   bool // an order materialized before expiry
	ReleasedAt *time.Time
}

// NewReservation creates a new reservation expiring at the given time
func NewReservation(accountID, buyerID uuid.UUID, expireAt time.Time) *Reservation {
	return &Reservation{
		BaseEntity: shared.NewBaseEntity(),
		AccountID:  accountID,
		BuyerID:    buyerID,
		ExpireAt:   expireAt,
	}
}

// IsActive returns true if the reservation is still holding the account
func (r *Reservation) IsActive() bool {
	return !r.Released && !r.Consumed
}

// IsExpired returns true if the reservation window has passed
func (r *Reservation) IsExpired() bool {
	return time.Now().After(r.ExpireAt)
}

// Release marks the reservation as released (expiry or cancellation)
func (r *Reservation) Release() {
	now := time.Now()
	r.Released = true
	r.ReleasedAt = &now
	r.UpdatedAt = now
}

// Consume marks the reservation as consumed by a created order
func (r *Reservation) Consume() {
	now := time.Now()
	r.Consumed = true
	r.ReleasedAt = &now
	r.UpdatedAt = now
}

// TimeUntilExpiry returns the duration until expiry, negative if expired
func (r *Reservation) TimeUntilExpiry() time.Duration {
	return time.Until(r.ExpireAt)
}
