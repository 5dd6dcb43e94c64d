package secrets

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/securepass/internal/common"
	"github.com/dmitrijs2005/securepass/internal/cryptox"
	"github.com/dmitrijs2005/securepass/internal/logging"
	"github.com/dmitrijs2005/securepass/internal/server/models"
	"github.com/google/uuid"
)

const (
	// MinTTL and MaxTTL bound the allowed share lifetime.
	MinTTL = time.Minute
	MaxTTL = 7 * 24 * time.Hour
)

// Share is what the creator gets back: the capability uuid, the one-shot
// decryption key (base64url, intended for the URL fragment so it never
// reaches the server again) and the expiry timestamp.
type Share struct {
	UUID      string
	Key       string
	ExpiresAt time.Time
}

type Service struct {
	store  Store
	logger logging.Logger
}

func NewService(store Store, logger logging.Logger) *Service {
	return &Service{store: store, logger: logger.With("module", "secrets")}
}

// Create allocates a new share in Created state with expires_at = now + ttl.
//
// The content is sealed with a fresh ephemeral 256-bit key before it touches
// the store; the key is returned to the caller once and wiped here. The
// server can therefore never read a share back, even before it is consumed.
func (s *Service) Create(ctx context.Context, content string, ttl time.Duration) (*Share, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: empty content", common.ErrInvalidInput)
	}
	if ttl < MinTTL || ttl > MaxTTL {
		return nil, fmt.Errorf("%w: ttl must be between %s and %s", common.ErrInvalidTTL, MinTTL, MaxTTL)
	}

	key := common.GenerateRandByteArray(cryptox.KeySize)
	defer common.WipeByteArray(key)

	sealed, err := cryptox.EncryptWithKey(key, []byte(content))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	share := &models.SecretShare{
		UUID:             uuid.NewString(),
		EncryptedContent: sealed,
		CreatedAt:        now,
		ExpiresAt:        now.Add(ttl),
	}

	if err := s.store.Save(ctx, share); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "share created", "uuid", share.UUID, "expires_at", share.ExpiresAt)

	return &Share{
		UUID:      share.UUID,
		Key:       base64.URLEncoding.EncodeToString(key),
		ExpiresAt: share.ExpiresAt,
	}, nil
}

// Reveal consumes the share and returns its encrypted content (base64url).
// Valid only from Created state and only before expiry; the transition to
// Consumed is atomic within the store, so of N racing reveals exactly one
// succeeds and the rest observe ErrNotFound.
//
// Expired, consumed and unknown uuids are deliberately indistinguishable.
func (s *Service) Reveal(ctx context.Context, shareUUID string) (string, error) {
	share, err := s.store.Consume(ctx, shareUUID)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			// Storage trouble: nothing was consumed, report as not found
			// to avoid leaking state, but keep the cause in the log.
			s.logger.Error(ctx, "share consume failed", "error", err.Error())
		}
		return "", common.ErrNotFound
	}

	s.logger.Info(ctx, "share consumed", "uuid", shareUUID)
	return base64.URLEncoding.EncodeToString(share.EncryptedContent), nil
}
