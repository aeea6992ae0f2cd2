// Package cache holds the Redis client and the stats snapshot store.
// A nil client disables both; callers keep working without Redis.
package cache

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/amai-mens-care/internal/config"
)

// NewRedisClient returns nil when no address is configured or the server
// does not answer a ping.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis unavailable, cache and rate limit disabled")
		_ = client.Close()
		return nil
	}
	return client
}

const snapshotPrefix = "snapshot:"

// SnapshotStore keeps the last good value of an expensive computation.
type SnapshotStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSnapshotStore(rdb *redis.Client, ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{rdb: rdb, ttl: ttl}
}

func (s *SnapshotStore) Save(ctx context.Context, key string, v any) error {
	if s == nil || s.rdb == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshal snapshot")
	}
	return errors.Wrap(s.rdb.Set(ctx, snapshotPrefix+key, b, s.ttl).Err(), "save snapshot")
}

// Load decodes the snapshot into dst and reports whether one existed.
func (s *SnapshotStore) Load(ctx context.Context, key string, dst any) (bool, error) {
	if s == nil || s.rdb == nil {
		return false, nil
	}
	b, err := s.rdb.Get(ctx, snapshotPrefix+key).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "load snapshot")
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, errors.Wrap(err, "decode snapshot")
	}
	return true, nil
}
