package secrets

import (
	"context"
	"time"

	"github.com/dmitrijs2005/securepass/internal/logging"
)

// Sweeper periodically purges expired, never-revealed shares from the store.
// It is a hygiene mechanism, not a correctness one: Consume re-checks expiry
// at read time, so an expired share is unrevealable even before the sweep
// reaches it.
type Sweeper struct {
	store    Store
	interval time.Duration
	logger   logging.Logger
}

func NewSweeper(store Store, interval time.Duration, logger logging.Logger) *Sweeper {
	return &Sweeper{store: store, interval: interval, logger: logger.With("module", "secrets_sweeper")}
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
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

func (s *Sweeper) sweep(ctx context.Context) {
	n, err := s.store.PurgeExpired(ctx, time.Now())
	if err != nil {
		s.logger.Error(ctx, "sweep failed", "error", err.Error())
		return
	}
	if n > 0 {
		s.logger.Info(ctx, "purged expired shares", "count", n)
	}
}
