package listing

import (
	"context"

	"github.com/escrowdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountRepository defines the persistence contract for listed accounts
type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindAvailable(ctx context.Context, platform Platform, filter shared.Filter) ([]Account, int64, error)
	FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]Account, error)
	Save(ctx context.Context, account *Account) error

	// UpdateStatusIf performs the atomic compare-and-set on the status column
	// (UPDATE ... WHERE id = ? AND status = ?). It returns
	// shared.ErrConcurrencyConflict when the row was not in the expected
	// status, which is how concurrent reservation attempts lose the race.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to AccountStatus) error

	// Delete hard-deletes the account; orders cascade via foreign key
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReservationRepository defines the persistence contract for reservations
type ReservationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	FindActiveByAccount(ctx context.Context, accountID uuid.UUID) (*Reservation, error)
	FindExpired(ctx context.Context) ([]Reservation, error)
	Save(ctx context.Context, reservation *Reservation) error
}
