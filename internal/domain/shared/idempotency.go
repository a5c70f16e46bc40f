package shared

import (
	"context"
	"time"
)

// IdempotencyStore stores consumed keys (payment receipts, processed event IDs)
// to prevent duplicate processing across process instances.
type IdempotencyStore interface {
	// MarkProcessed marks a key as consumed with a TTL.
	// Returns true if the key was newly marked, false if it was already consumed.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a key has already been consumed
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Close closes the store and releases resources
	Close() error
}
