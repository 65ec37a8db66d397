// Package sweeper reaps expired reservation holds in the background. Conflict
// checks and slot queries already ignore expired holds, so the sweeper only
// settles the records: it flips them to cancelled and emits the events.
package sweeper

import (
	"context"
	"log/slog"
	"time"

	"github.com/glowlabs-io/scheduling/internal/metrics"
)

// Store is the slice of the appointment repository the sweeper needs.
type Store interface {
	ExpireHolds(ctx context.Context, cutoff time.Time, limit int) (int, error)
}

type Sweeper struct {
	store      Store
	logger     *slog.Logger
	sweepEvery time.Duration
	batchSize  int
}

type Config struct {
	SweepEvery time.Duration
	BatchSize  int
}

func New(store Store, logger *slog.Logger, cfg Config) *Sweeper {
	if cfg.SweepEvery <= 0 {
		cfg.SweepEvery = time.Minute
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	return &Sweeper{
		store:      store,
		logger:     logger,
		sweepEvery: cfg.SweepEvery,
		batchSize:  cfg.BatchSize,
	}
}

func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep drains all currently expired holds, batch by batch, so a backlog
// after downtime clears in one tick.
func (s *Sweeper) sweep(ctx context.Context) {
	for {
		n, err := s.store.ExpireHolds(ctx, time.Now(), s.batchSize)
		if err != nil {
			s.logger.Error("hold sweep failed", "err", err)
			return
		}
		if n == 0 {
			return
		}
		metrics.HoldsExpired.Add(float64(n))
		s.logger.Info("expired holds reaped", "count", n)
		if n < s.batchSize {
			return
		}
	}
}
