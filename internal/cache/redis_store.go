package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-calendar/internal/domain"
)

// RedisStore keeps the document in a single Redis string key with no TTL.
type RedisStore struct {
	rdb   *redis.Client
	key   string
	codec codec
}

// NewRedisStore returns a store bound to key.
func NewRedisStore(rdb *redis.Client, key string, policy CorruptPolicy, logger *zap.Logger) *RedisStore {
	return &RedisStore{rdb: rdb, key: key, codec: newCodec("redis:"+key, policy, logger)}
}

func (s *RedisStore) Load(ctx context.Context) ([]domain.Ticket, error) {
	b, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []domain.Ticket{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return s.codec.decode(b)
}

func (s *RedisStore) Save(ctx context.Context, tickets []domain.Ticket) error {
	b, err := s.codec.encode(tickets)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.key, b, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

// Ping verifies Redis connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
