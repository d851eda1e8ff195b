package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/garage-coop/internal/domain/account"
)

type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects and pings; callers fall back to the memory store
// when it fails.
func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	logrus.WithField("addr", addr).Info("redis token store ready")
	return &RedisStore{client: rdb}, nil
}

func (s *RedisStore) Put(ctx context.Context, purpose, token, payload string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key(purpose, token), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Take(ctx context.Context, purpose, token string) (string, error) {
	val, err := s.client.GetDel(ctx, key(purpose, token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", account.ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis getdel: %w", err)
	}
	return val, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ account.TokenStore = (*RedisStore)(nil)
