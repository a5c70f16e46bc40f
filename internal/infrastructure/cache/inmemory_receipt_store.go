package cache

import (
	"context"
	"sync"
	"time"

	"github.com/escrowdesk/backend/internal/domain/shared"
)

// InMemoryReceiptStore implements IdempotencyStore with an in-process map.
// Suitable for single-instance deployments and tests; marks are lost on
// restart, so multi-instance setups must use the Redis store.
type InMemoryReceiptStore struct {
	mu        sync.Mutex
	entries   map[string]entry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

type entry struct {
	expiresAt time.Time
}

// NewInMemoryReceiptStore creates a new in-memory receipt store.
// A background goroutine evicts expired marks periodically.
func NewInMemoryReceiptStore() *InMemoryReceiptStore {
	s := &InMemoryReceiptStore{
		entries:  make(map[string]entry),
		stopChan: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

// MarkProcessed marks a receipt reference as consumed with a TTL.
// Returns true if the reference was newly marked, false if already consumed.
func (s *InMemoryReceiptStore) MarkProcessed(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok && time.Now().Before(e.expiresAt) {
		return false, nil
	}

	s.entries[key] = entry{expiresAt: time.Now().Add(ttl)}
	return true, nil
}

// IsProcessed checks if a receipt reference has already been consumed
func (s *InMemoryReceiptStore) IsProcessed(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return false, nil
	}
	if time.Now().After(e.expiresAt) {
		delete(s.entries, key)
		return false, nil
	}
	return true, nil
}

// Close stops the cleanup goroutine
func (s *InMemoryReceiptStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
	})
	s.wg.Wait()
	return nil
}

// Size returns the number of tracked receipt marks, expired ones included
func (s *InMemoryReceiptStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *InMemoryReceiptStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.evictExpired()
		case <-s.stopChan:
			return
		}
	}
}

func (s *InMemoryReceiptStore) evictExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, key)
		}
	}
}

var _ shared.IdempotencyStore = (*InMemoryReceiptStore)(nil)
