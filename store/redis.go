package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	novacore "github.com/yuchemey-cpu/NovaCore"
)

// RedisStateStore implements novacore.StateStore on Redis. Keys are
// namespaced as "{prefix}:{key}".
type RedisStateStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	ctx    context.Context
}

// RedisStoreConfig configures the Redis store.
type RedisStoreConfig struct {
	Prefix string        // key prefix, default "nova"
	TTL    time.Duration // TTL for entries, 0 = no expiry
}

// NewRedisStateStore creates a StateStore backed by Redis.
func NewRedisStateStore(client redis.UniversalClient, config ...RedisStoreConfig) *RedisStateStore {
	cfg := RedisStoreConfig{Prefix: "nova"}
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "nova"
	}
	return &RedisStateStore{
		client: client,
		prefix: cfg.Prefix,
		ttl:    cfg.TTL,
		ctx:    context.Background(),
	}
}

func (r *RedisStateStore) key(key string) string {
	return fmt.Sprintf("%s:%s", r.prefix, key)
}

func (r *RedisStateStore) Load(key string) ([]byte, bool, error) {
	val, err := r.client.Get(r.ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return val, true, nil
}

func (r *RedisStateStore) Save(key string, data []byte) error {
	return r.client.Set(r.ctx, r.key(key), data, r.ttl).Err()
}

func (r *RedisStateStore) Delete(key string) error {
	return r.client.Del(r.ctx, r.key(key)).Err()
}

func (r *RedisStateStore) Keys() ([]string, error) {
	keys, err := r.client.Keys(r.ctx, r.prefix+":*").Result()
	if err != nil {
		return nil, err
	}
	prefixLen := len(r.prefix) + 1
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		if len(k) > prefixLen {
			result = append(result, k[prefixLen:])
		}
	}
	return result, nil
}

func (r *RedisStateStore) Close() error {
	return r.client.Close()
}

// Compile-time interface check.
var _ novacore.StateStore = (*RedisStateStore)(nil)
