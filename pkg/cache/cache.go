package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrCacheMiss = errors.New("cache: key not found")

// Service defines the cache operations the alert history and rate
// limiting layers need. Redis backs it in production; the in-memory
// implementation serves tests and redis-disabled deployments.
type Service interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, keys ...string) (bool, error)
	Increment(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) (bool, error)
	Close() error
}

// Key joins parts into a colon-separated cache key.
func Key(parts ...interface{}) string {
	key := ""
	for i, p := range parts {
		if i == 0 {
			key = fmt.Sprintf("%v", p)
			continue
		}
		key = fmt.Sprintf("%s:%v", key, p)
	}
	return key
}
