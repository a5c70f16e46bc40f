package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	applisting "github.com/escrowdesk/backend/internal/application/listing"
)

type fakeExpirationService struct {
	calls atomic.Int32
	stats *applisting.ExpiredReservationStats
	err   error
}

func (f *fakeExpirationService) ReleaseExpired(_ context.Context) (*applisting.ExpiredReservationStats, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.stats, nil
}

func TestReservationSweeper_SweepsPeriodically(t *testing.T) {
	service := &fakeExpirationService{stats: &applisting.ExpiredReservationStats{}}
	sweeper := NewReservationSweeper(ReservationSweeperConfig{
		CheckInterval: 10 * time.Millisecond,
		SweepTimeout:  time.Second,
	}, service, zap.NewNop())

	require.NoError(t, sweeper.Start(context.Background()))

	assert.Eventually(t, func() bool {
		return service.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, sweeper.Stop(ctx))
}

func TestReservationSweeper_SweepFailureDoesNotStopLoop(t *testing.T) {
	service := &fakeExpirationService{err: errors.New("database down")}
	sweeper := NewReservationSweeper(ReservationSweeperConfig{
		CheckInterval: 10 * time.Millisecond,
		SweepTimeout:  time.Second,
	}, service, zap.NewNop())

	require.NoError(t, sweeper.Start(context.Background()))

	assert.Eventually(t, func() bool {
		return service.calls.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, sweeper.Stop(ctx))
}

func TestReservationSweeper_StartIsIdempotent(t *testing.T) {
	service := &fakeExpirationService{stats: &applisting.ExpiredReservationStats{}}
	sweeper := NewReservationSweeper(DefaultReservationSweeperConfig(), service, zap.NewNop())

	require.NoError(t, sweeper.Start(context.Background()))
	require.NoError(t, sweeper.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, sweeper.Stop(ctx))
	require.NoError(t, sweeper.Stop(ctx))
}
