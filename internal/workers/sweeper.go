package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// ExpirationSweeper is the subset of the report service the sweeper drives.
type ExpirationSweeper interface {
	SweepExpired(ctx context.Context, now time.Time) ([]uuid.UUID, error)
}

// Sweeper fires the expiration sweep on a fixed cadence. Ticks run
// serially on one goroutine; if a sweep outlasts the interval the next
// tick just fires late, which is harmless because the sweep is idempotent.
// A failed tick is logged and dropped; the next tick is the retry.
type Sweeper struct {
	svc      ExpirationSweeper
	interval time.Duration
	clock    func() time.Time
	logger   *slog.Logger
}

func NewSweeper(svc ExpirationSweeper, interval time.Duration, logger *slog.Logger) *Sweeper {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &Sweeper{
		svc:      svc,
		interval: interval,
		clock:    time.Now,
		logger:   logger,
	}
}

// NewSweeperWithClock injects the time source for tests.
func NewSweeperWithClock(svc ExpirationSweeper, interval time.Duration, logger *slog.Logger, clock func() time.Time) *Sweeper {
	s := NewSweeper(svc, interval, logger)
	s.clock = clock
	return s
}

// Run blocks until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("expiration sweeper started", slog.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("expiration sweeper stopped")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs one sweep. Exposed so tests can drive sweeps without a timer.
func (s *Sweeper) Tick(ctx context.Context) {
	ids, err := s.svc.SweepExpired(ctx, s.clock().UTC())
	if err != nil {
		s.logger.Error("sweep tick failed", slog.Any("error", err))
		return
	}
	if len(ids) > 0 {
		s.logger.Info("sweep tick done", slog.Int("expired", len(ids)))
	}
}
