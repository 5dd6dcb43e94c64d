package secrets

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"time"

	"github.com/dmitrijs2005/securepass/internal/common"
	"github.com/dmitrijs2005/securepass/internal/server/models"
	"github.com/redis/go-redis/v9"
)

var _ Store = (*RedisStore)(nil)

// RedisStore keeps shares as gob blobs under a per-share key with a native
// TTL. Consume relies on GETDEL, which is atomic server-side: concurrent
// consumers of the same uuid race on a single Redis command, so at most one
// of them ever observes the value.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(options *redis.Options) (*RedisStore, error) {
	client := redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Save(ctx context.Context, share *models.SecretShare) error {
	ttl := time.Until(share.ExpiresAt)
	if ttl <= 0 {
		return common.ErrInvalidTTL
	}

	data, err := encode(share)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, shareKey(share.UUID), data, ttl).Err()
}

func (r *RedisStore) Consume(ctx context.Context, uuid string) (*models.SecretShare, error) {
	data, err := r.client.GetDel(ctx, shareKey(uuid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrNotFound
		}
		// Non-committal failures (timeouts, connection errors) surface as
		// NotFound-equivalent without having consumed anything.
		return nil, err
	}

	share, err := decode(data)
	if err != nil {
		return nil, err
	}

	// The Redis TTL is the backstop; the record's own expiry is checked at
	// read time in case the server clock and the TTL disagree.
	if share.Expired(time.Now()) {
		return nil, common.ErrNotFound
	}

	share.Consumed = true
	return share, nil
}

// PurgeExpired is a no-op: Redis expires share keys natively.
func (r *RedisStore) PurgeExpired(ctx context.Context, now time.Time) (int, error) {
	return 0, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func shareKey(uuid string) string {
	return "share:" + uuid
}

func encode(share *models.SecretShare) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(share); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(data []byte) (*models.SecretShare, error) {
	var share models.SecretShare
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&share); err != nil {
		return nil, err
	}
	return &share, nil
}
