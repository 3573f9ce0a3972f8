package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	coreport "github.com/auctionhub/currency-service/internal/domain/port/core"
	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule runs the sweep once a minute
const DefaultSweepSchedule = "@every 1m"

// SuspensionLifter clears suspensions whose end time has passed
type SuspensionLifter interface {
	LiftExpiredSuspensions(ctx context.Context) (int, error)
}

// SweepRecorder counts lifted suspensions; may be nil
type SweepRecorder interface {
	RecordSuspensionsLifted(n int)
}

// SuspensionSweeper periodically lifts expired suspensions
type SuspensionSweeper struct {
	cron     *cron.Cron
	lifter   SuspensionLifter
	recorder SweepRecorder
	logger   coreport.Logger
	timeout  time.Duration

	mu      sync.Mutex
	started bool
}

// NewSuspensionSweeper schedules the sweep on schedule, a cron expression or descriptor such as "@every 30s"
func NewSuspensionSweeper(schedule string, lifter SuspensionLifter, recorder SweepRecorder, logger coreport.Logger) (*SuspensionSweeper, error) {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}

	s := &SuspensionSweeper{
		cron: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cron.DiscardLogger),
			cron.Recover(cron.DiscardLogger),
		)),
		lifter:   lifter,
		recorder: recorder,
		logger:   logger.Named("sweeper"),
		timeout:  30 * time.Second,
	}

	if _, err := s.cron.AddFunc(schedule, func() { s.Sweep(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start runs the schedule in the background
func (s *SuspensionSweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.cron.Start()
	s.logger.Info("Suspension sweeper started", nil)
}

// Stop waits for a running sweep to finish or ctx to expire
func (s *SuspensionSweeper) Stop(ctx context.Context) {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	s.mu.Unlock()

	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Suspension sweeper stopped", nil)
	case <-ctx.Done():
		s.logger.Warn("Suspension sweeper stop timed out", map[string]any{"error": ctx.Err().Error()})
	}
}

// Sweep lifts expired suspensions once and returns how many were lifted
func (s *SuspensionSweeper) Sweep(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	lifted, err := s.lifter.LiftExpiredSuspensions(ctx)
	if err != nil {
		s.logger.Error("Suspension sweep failed", map[string]any{
			"lifted": lifted,
			"error":  err.Error(),
		})
	}
	if lifted > 0 {
		if s.recorder != nil {
			s.recorder.RecordSuspensionsLifted(lifted)
		}
		s.logger.Info("Lifted expired suspensions", map[string]any{"count": lifted})
	}
	return lifted
}
