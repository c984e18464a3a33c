package authclient

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage persists token-store values in redis. Suited to service-side
// consumers of the SDK that share one session across instances.
type RedisStorage struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger Logger
}

var _ Storage = (*RedisStorage)(nil)

// RedisStorageOption configures the RedisStorage
type RedisStorageOption func(*RedisStorage)

// WithRedisKeyPrefix namespaces every key, for multi-tenant redis instances
func WithRedisKeyPrefix(prefix string) RedisStorageOption {
	return func(s *RedisStorage) {
		s.prefix = prefix
	}
}

// WithRedisTTL bounds how long values live without being rewritten. Zero
// means no expiry; session expiry is enforced by the SessionManager either
// way, the TTL only garbage-collects abandoned entries.
func WithRedisTTL(ttl time.Duration) RedisStorageOption {
	return func(s *RedisStorage) {
		s.ttl = ttl
	}
}

// WithRedisLogger overrides the storage logger
func WithRedisLogger(logger Logger) RedisStorageOption {
	return func(s *RedisStorage) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewRedisStorage returns a Storage over an existing redis client
func NewRedisStorage(client *redis.Client, opts ...RedisStorageOption) *RedisStorage {
	s := &RedisStorage{
		client: client,
		logger: defLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *RedisStorage) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}

// Get returns the stored value for key
func (s *RedisStorage) Get(ctx context.Context, key string) (string, bool) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Error("failed to read stored value %s: %s", key, err)
		}
		return "", false
	}
	return val, true
}

// Set stores value under key
func (s *RedisStorage) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.key(key), value, s.ttl).Err()
}

// Delete removes key
func (s *RedisStorage) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}
