package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the persistence contract for users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByExternalID(ctx context.Context, externalID int64) (*User, error)
	Save(ctx context.Context, user *User) error

	// CreditBalance atomically adds delta to the user's balance with a single
	// conditional UPDATE so that concurrent credits are serialized by the store.
	CreditBalance(ctx context.Context, id uuid.UUID, delta int64) error

	// DebitBalance atomically subtracts delta from the user's balance; the
	// update only applies when the balance covers the delta, returning
	// shared.ErrInsufficientBalance otherwise.
	DebitBalance(ctx context.Context, id uuid.UUID, delta int64) error
}
