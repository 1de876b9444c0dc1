// Package cache memoizes derived dashboard payloads in Redis. The service
// layer keys entries by library revision, so a stale entry is simply never
// asked for again; the TTL only bounds how long dead revisions linger.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 24 * time.Hour

// Store is a thin JSON-blob cache on go-redis. Misses come back as
// (nil, nil) so callers don't special-case redis.Nil themselves.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// New wraps an existing client. A zero ttl gets the default.
func New(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{rdb: rdb, ttl: ttl}
}

func (s *Store) key(k string) string { return "derived:" + k }

// Get returns the cached payload or (nil, nil) on miss.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// Set stores the payload under the store's TTL.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.rdb.Set(ctx, s.key(key), value, s.ttl).Err()
}
