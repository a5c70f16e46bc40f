package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appescrow "github.com/escrowdesk/backend/internal/application/escrow"
)

// TeardownRunner is the slice of the escrow application layer the scheduler
// invokes once the grace period elapses.
type TeardownRunner interface {
	Teardown(ctx context.Context, accountID uuid.UUID) (bool, error)
}

// teardownMaxAttempts bounds retries of a failing teardown before the SOLD
// row is left for manual cleanup.
const teardownMaxAttempts = 3

// DeferredTeardownScheduler runs account teardown after a grace period using
// in-process timers. The scheduled task carries only the account ID; the
// teardown service re-reads state when the timer fires, so a restart losing
// pending timers leaves a SOLD row behind rather than deleting the wrong one.
type DeferredTeardownScheduler struct {
	runner     TeardownRunner
	timeout    time.Duration
	retryDelay time.Duration
	logger     *zap.Logger

	mu      sync.Mutex
	timers  map[uuid.UUID]*time.Timer
	stopped bool
	wg      sync.WaitGroup
}

// NewDeferredTeardownScheduler creates a new deferred teardown scheduler
func NewDeferredTeardownScheduler(runner TeardownRunner, logger *zap.Logger) *DeferredTeardownScheduler {
	return &DeferredTeardownScheduler{
		runner:     runner,
		timeout:    30 * time.Second,
		retryDelay: 30 * time.Second,
		logger:     logger,
		timers:     make(map[uuid.UUID]*time.Timer),
	}
}

// ScheduleTeardown arms a timer that tears the account down after the grace
// period. Scheduling the same account again resets its timer.
func (s *DeferredTeardownScheduler) ScheduleTeardown(accountID uuid.UUID, after time.Duration) {
	s.schedule(accountID, after, 1)
}

func (s *DeferredTeardownScheduler) schedule(accountID uuid.UUID, after time.Duration, attempt int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		s.logger.Warn("teardown scheduler stopped, dropping task",
			zap.String("account_id", accountID.String()),
		)
		return
	}

	if existing, ok := s.timers[accountID]; ok {
		existing.Stop()
	}

	s.wg.Add(1)
	s.timers[accountID] = time.AfterFunc(after, func() {
		defer s.wg.Done()
		s.fire(accountID, attempt)
	})

	s.logger.Debug("teardown scheduled",
		zap.String("account_id", accountID.String()),
		zap.Duration("after", after),
		zap.Int("attempt", attempt),
	)
}

func (s *DeferredTeardownScheduler) fire(accountID uuid.UUID, attempt int) {
	s.mu.Lock()
	delete(s.timers, accountID)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	deleted, err := s.runner.Teardown(ctx, accountID)
	if err != nil {
		s.logger.Error("deferred teardown failed",
			zap.String("account_id", accountID.String()),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if attempt < teardownMaxAttempts {
			s.schedule(accountID, s.retryDelay, attempt+1)
		}
		return
	}

	if deleted {
		s.logger.Info("sold account torn down",
			zap.String("account_id", accountID.String()),
		)
	}
}

// Stop cancels pending timers and waits for in-flight teardowns
func (s *DeferredTeardownScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	s.stopped = true
	for accountID, timer := range s.timers {
		if timer.Stop() {
			// The callback will never run; release its wait slot.
			s.wg.Done()
		}
		delete(s.timers, accountID)
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ensure DeferredTeardownScheduler implements TeardownScheduler
var _ appescrow.TeardownScheduler = (*DeferredTeardownScheduler)(nil)
