// Package secrets implements the one-time secret lifecycle: creation with a
// bounded TTL, a single atomic reveal, and purge on expiry.
//
// The state machine has exactly two terminal transitions:
//
//	Created -> Consumed (first successful reveal)
//	Created -> Expired  (TTL elapses first)
//
// Consumed, expired and never-existing shares are indistinguishable to
// callers: all surface as common.ErrNotFound.
package secrets

import (
	"context"
	"time"

	"github.com/dmitrijs2005/securepass/internal/server/models"
)

// Store persists SecretShare records. Implementations must make Consume an
// atomic check-and-delete: of N concurrent Consume calls for the same uuid,
// exactly one receives the record, the rest receive common.ErrNotFound.
type Store interface {
	// Save stores a share until its ExpiresAt. A share that is already
	// expired at save time is rejected with common.ErrInvalidTTL.
	Save(ctx context.Context, share *models.SecretShare) error

	// Consume atomically removes and returns the share. Expiry is checked
	// at read time: an expired record is purged and reported as
	// common.ErrNotFound even if no sweep has run yet.
	Consume(ctx context.Context, uuid string) (*models.SecretShare, error)

	// PurgeExpired removes records past their expiry and returns how many
	// were dropped. Backends with native TTL support may have nothing to do.
	PurgeExpired(ctx context.Context, now time.Time) (int, error)

	Close() error
}
