package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/icpcsp/compreg/internal/config"
	"github.com/icpcsp/compreg/internal/metrics"
)

const keyPrefix = "compreg:"

// Store is a JSON value cache backed by redis.
type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{redis: client, ttl: ttl}
}

// Open connects to redis and pings it. It returns nil when no address is configured.
func Open(ctx context.Context, conf *config.RedisConfig) (*Store, error) {
	if conf == nil || conf.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("client.Ping -> %w", err)
	}

	return NewStore(client, conf.TTL), nil
}

func (s *Store) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := s.redis.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return false, nil
	}
	if err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return false, fmt.Errorf("s.redis.Get -> %w", err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return false, fmt.Errorf("json.Unmarshal -> %w", err)
	}

	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return true, nil
}

func (s *Store) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	return s.redis.Set(ctx, keyPrefix+key, raw, s.ttl).Err()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.redis.Del(ctx, keyPrefix+key).Err()
}

func (s *Store) Close() error {
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}
