package store

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
)

// Redis keeps each record under "{namespace}:{key}" and tracks the keys of a
// namespace in a companion set so listing does not need SCAN.
type Redis struct {
	rdb *redis.Client
}

// NewRedis connects using the REDIS_ADDRESS environment variable, defaulting
// to localhost:6379.
func NewRedis(ctx context.Context) (*Redis, error) {
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		addr = "localhost:6379"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "",
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("unable to ping redis at %s: %w", addr, err)
	}
	return &Redis{rdb: rdb}, nil
}

func recordKey(ns Namespace, key string) string {
	return string(ns) + ":" + key
}

func setKey(ns Namespace) string {
	return string(ns) + ":keys"
}

func (r *Redis) Get(ctx context.Context, ns Namespace, key string) (string, bool, error) {
	val, err := r.rdb.Get(ctx, recordKey(ns, key)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s/%s: %w", ns, key, err)
	}
	return val, true, nil
}

func (r *Redis) Put(ctx context.Context, ns Namespace, key, value string) error {
	if err := r.rdb.Set(ctx, recordKey(ns, key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", ns, key, err)
	}
	// Key set membership is idempotent, so re-saving a record is harmless.
	if err := r.rdb.SAdd(ctx, setKey(ns), key).Err(); err != nil {
		return fmt.Errorf("failed to index %s/%s: %w", ns, key, err)
	}
	return nil
}

func (r *Redis) Keys(ctx context.Context, ns Namespace) ([]string, error) {
	keys, err := r.rdb.SMembers(ctx, setKey(ns)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys in %s: %w", ns, err)
	}
	return keys, nil
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
