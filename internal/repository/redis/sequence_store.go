// Package redis holds the Redis-backed invoice sequence counter used when the
// sequence backend is configured as "redis".
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"khata/internal/config"
	"khata/internal/domain"
	"khata/internal/port"
)

const keyPrefix = "seq"

type sequenceStore struct {
	client goredis.UniversalClient
}

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// NewSequenceStore creates a SequenceStore on top of INCR.
func NewSequenceStore(client goredis.UniversalClient) port.SequenceStore {
	return &sequenceStore{client: client}
}

// Key returns the Redis key holding the counter for key.
func Key(key domain.SequenceKey) string {
	return fmt.Sprintf("%s:%s:%s:%s", keyPrefix, key.TenantID, key.Series, key.FiscalYear)
}

func (s *sequenceStore) Increment(ctx context.Context, key domain.SequenceKey) (int64, error) {
	seq, err := s.client.Incr(ctx, Key(key)).Result()
	if err != nil {
		return 0, fmt.Errorf("sequenceStore.Increment: %w", err)
	}
	return seq, nil
}

func (s *sequenceStore) Current(ctx context.Context, key domain.SequenceKey) (int64, error) {
	seq, err := s.client.Get(ctx, Key(key)).Int64()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("sequenceStore.Current: %w", err)
	}
	return seq, nil
}

// HealthCheck adapts a client to the readiness probe.
type HealthCheck struct {
	Client goredis.UniversalClient
}

// PingContext round-trips a PING to the server.
func (h HealthCheck) PingContext(ctx context.Context) error {
	return h.Client.Ping(ctx).Err()
}
