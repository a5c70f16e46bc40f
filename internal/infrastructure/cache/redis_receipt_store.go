package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/escrowdesk/backend/internal/domain/shared"
	"github.com/escrowdesk/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// RedisReceiptStore implements IdempotencyStore for consumed payment receipt
// references using Redis. Receipt consumption must be visible across backend
// instances: SETNX makes the mark atomic, so of two concurrent submissions of
// the same receipt exactly one wins.
type RedisReceiptStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisReceiptStore creates a new Redis-backed receipt store
func NewRedisReceiptStore(cfg *config.RedisConfig) (*RedisReceiptStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisReceiptStore{
		client:    client,
		keyPrefix: "receipt:consumed:",
	}, nil
}

// NewRedisReceiptStoreWithClient creates a store with an existing Redis client
func NewRedisReceiptStoreWithClient(client *redis.Client, keyPrefix string) *RedisReceiptStore {
	if keyPrefix == "" {
		keyPrefix = "receipt:consumed:"
	}
	return &RedisReceiptStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// MarkProcessed marks a receipt reference as consumed with a TTL.
// Returns true if the reference was newly marked, false if already consumed.
func (s *RedisReceiptStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	result, err := s.client.SetNX(ctx, s.keyPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark receipt as consumed: %w", err)
	}
	return result, nil
}

// IsProcessed checks if a receipt reference has already been consumed
func (s *RedisReceiptStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	exists, err := s.client.Exists(ctx, s.keyPrefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check receipt: %w", err)
	}
	return exists > 0, nil
}

// Close closes the Redis client
func (s *RedisReceiptStore) Close() error {
	return s.client.Close()
}

// Ensure RedisReceiptStore implements IdempotencyStore
var _ shared.IdempotencyStore = (*RedisReceiptStore)(nil)
