package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTeardownRunner struct {
	mu    sync.Mutex
	calls []uuid.UUID
}

func (f *fakeTeardownRunner) Teardown(_ context.Context, accountID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, accountID)
	return true, nil
}

func (f *fakeTeardownRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestDeferredTeardownScheduler_FiresAfterGracePeriod(t *testing.T) {
	runner := &fakeTeardownRunner{}
	scheduler := NewDeferredTeardownScheduler(runner, zap.NewNop())

	accountID := uuid.New()
	scheduler.ScheduleTeardown(accountID, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		return runner.callCount() == 1
	}, time.Second, 5*time.Millisecond)

	runner.mu.Lock()
	assert.Equal(t, accountID, runner.calls[0])
	runner.mu.Unlock()
}

func TestDeferredTeardownScheduler_ReschedulingResetsTimer(t *testing.T) {
	runner := &fakeTeardownRunner{}
	scheduler := NewDeferredTeardownScheduler(runner, zap.NewNop())

	accountID := uuid.New()
	scheduler.ScheduleTeardown(accountID, 50*time.Millisecond)
	scheduler.ScheduleTeardown(accountID, 50*time.Millisecond)

	assert.Eventually(t, func() bool {
		return runner.callCount() >= 1
	}, time.Second, 5*time.Millisecond)

	// The second schedule replaced the first timer; only one run happens.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, runner.callCount())
}

type flakyTeardownRunner struct {
	mu       sync.Mutex
	failures int
	calls    int
}

func (f *flakyTeardownRunner) Teardown(_ context.Context, _ uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return false, errors.New("orders still referenced")
	}
	return true, nil
}

func (f *flakyTeardownRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestDeferredTeardownScheduler_RetriesBoundedOnFailure(t *testing.T) {
	runner := &flakyTeardownRunner{failures: 2}
	scheduler := NewDeferredTeardownScheduler(runner, zap.NewNop())
	scheduler.retryDelay = 5 * time.Millisecond

	scheduler.ScheduleTeardown(uuid.New(), time.Millisecond)

	assert.Eventually(t, func() bool {
		return runner.callCount() == 3
	}, time.Second, 5*time.Millisecond)
}

func TestDeferredTeardownScheduler_GivesUpAfterMaxAttempts(t *testing.T) {
	runner := &flakyTeardownRunner{failures: 10}
	scheduler := NewDeferredTeardownScheduler(runner, zap.NewNop())
	scheduler.retryDelay = 5 * time.Millisecond

	scheduler.ScheduleTeardown(uuid.New(), time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, teardownMaxAttempts, runner.callCount())
}

func TestDeferredTeardownScheduler_StopCancelsPendingTimers(t *testing.T) {
	runner := &fakeTeardownRunner{}
	scheduler := NewDeferredTeardownScheduler(runner, zap.NewNop())

	scheduler.ScheduleTeardown(uuid.New(), time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, scheduler.Stop(ctx))

	assert.Zero(t, runner.callCount())
}

func TestDeferredTeardownScheduler_ScheduleAfterStopIsDropped(t *testing.T) {
	runner := &fakeTeardownRunner{}
	scheduler := NewDeferredTeardownScheduler(runner, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, scheduler.Stop(ctx))

	scheduler.ScheduleTeardown(uuid.New(), time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	assert.Zero(t, runner.callCount())
}
