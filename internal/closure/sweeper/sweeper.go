// Package sweeper drives the retention expiry sweep: an in-process scheduler
// that purges expired closure archives on an interval.
package sweeper

import (
	"context"
	"log/slog"
	"time"
)

// Purger is the expiry-sweep entry point of the closure service.
type Purger interface {
	PurgeExpired(ctx context.Context) (int, error)
}

type Sweeper struct {
	purger   Purger
	interval time.Duration
	logger   *slog.Logger
}

func New(purger Purger, interval time.Duration, logger *slog.Logger) *Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{purger: purger, interval: interval, logger: logger}
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
// Sweep failures are logged and retried on the next tick.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	purged, err := s.purger.PurgeExpired(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "expiry sweep failed", "error", err)
		return
	}
	if purged > 0 {
		s.logger.InfoContext(ctx, "expired archives purged", "count", purged)
	}
}
