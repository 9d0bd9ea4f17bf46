package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the Redis connection used by RedisStore.
type RedisConfig struct {
	ConnectionURL  string        `env:"REDIS_URL"`                              // redis://:password@localhost:6379/0; empty disables Redis
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`    // number of connection attempts
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`   // delay between attempts
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"10s"` // overall connect deadline
	KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:"payflow:"` // prepended to every cache key
}

// Connect establishes a connection to Redis, retrying up to cfg.RetryAttempts times.
func Connect(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}

	attempts := max(cfg.RetryAttempts, 1)
	for range attempts {
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrRedisNotReady
}

// Healthcheck returns a readiness probe that pings Redis.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// RedisStore is a Store backed by Redis.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore creates a store that prefixes every key with prefix.
// Panics if client is nil.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if client == nil {
		panic("cache: redis client is required")
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, value, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
