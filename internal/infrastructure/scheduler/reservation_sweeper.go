// Package scheduler runs the periodic and deferred background jobs of the
// escrow backend.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	applisting "github.com/escrowdesk/backend/internal/application/listing"
)

// ExpirationService is the slice of the listing application layer the
// sweeper drives.
type ExpirationService interface {
	ReleaseExpired(ctx context.Context) (*applisting.ExpiredReservationStats, error)
}

// ReservationSweeperConfig holds configuration for the sweeper
type ReservationSweeperConfig struct {
	CheckInterval time.Duration
	SweepTimeout  time.Duration
}

// DefaultReservationSweeperConfig returns default sweeper configuration
func DefaultReservationSweeperConfig() ReservationSweeperConfig {
	return ReservationSweeperConfig{
		CheckInterval: 30 * time.Second,
		SweepTimeout:  time.Minute,
	}
}

// ReservationSweeper periodically releases expired reservations so soft-locked
// accounts return to the pool even when nobody touches them again.
type ReservationSweeper struct {
	config  ReservationSweeperConfig
	service ExpirationService
	logger  *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewReservationSweeper creates a new reservation sweeper
func NewReservationSweeper(config ReservationSweeperConfig, service ExpirationService, logger *zap.Logger) *ReservationSweeper {
	if config.CheckInterval <= 0 {
		config.CheckInterval = 30 * time.Second
	}
	if config.SweepTimeout <= 0 {
		config.SweepTimeout = time.Minute
	}
	return &ReservationSweeper{
		config:  config,
		service: service,
		logger:  logger,
	}
}

// Start starts the sweeper
func (s *ReservationSweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("reservation sweeper started",
		zap.Duration("check_interval", s.config.CheckInterval),
	)

	return nil
}

// Stop gracefully stops the sweeper
func (s *ReservationSweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("reservation sweeper stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *ReservationSweeper) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one expiry pass
func (s *ReservationSweeper) Sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, s.config.SweepTimeout)
	defer cancel()

	stats, err := s.service.ReleaseExpired(sweepCtx)
	if err != nil {
		s.logger.Error("reservation sweep failed", zap.Error(err))
		return
	}

	if stats.TotalExpired > 0 {
		s.logger.Info("reservation sweep completed",
			zap.Int("total_expired", stats.TotalExpired),
			zap.Int("released", stats.Released),
			zap.Int("consumed", stats.Consumed),
			zap.Int("failed", stats.Failed),
		)
	}
}
