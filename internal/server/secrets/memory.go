package secrets

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/securepass/internal/common"
	"github.com/dmitrijs2005/securepass/internal/server/models"
)

// Compile-time interface check.
var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps shares in a mutex-guarded map. Consume deletes under the
// lock, which is what makes the at-most-one-reveal guarantee hold under
// concurrent readers.
type MemoryStore struct {
	mu     sync.Mutex
	shares map[string]*models.SecretShare
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{shares: make(map[string]*models.SecretShare)}
}

func (s *MemoryStore) Save(ctx context.Context, share *models.SecretShare) error {
	if !time.Now().Before(share.ExpiresAt) {
		return common.ErrInvalidTTL
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *share
	s.shares[share.UUID] = &cp
	return nil
}

func (s *MemoryStore) Consume(ctx context.Context, uuid string) (*models.SecretShare, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	share, ok := s.shares[uuid]
	if !ok {
		return nil, common.ErrNotFound
	}

	// Read-time expiry check: the sweeper may not have run yet.
	if share.Expired(time.Now()) {
		delete(s.shares, uuid)
		return nil, common.ErrNotFound
	}

	delete(s.shares, uuid)
	share.Consumed = true
	return share, nil
}

func (s *MemoryStore) PurgeExpired(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for uuid, share := range s.shares {
		if share.Expired(now) {
			delete(s.shares, uuid)
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shares = make(map[string]*models.SecretShare)
	return nil
}
