package cache

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("key not found in cache")
	ErrInvalidValue = errors.New("invalid value for cache")
	ErrClosed       = errors.New("cache is closed")
)

// Cache is the read-through store used for listing query envelopes. All
// implementations are safe for concurrent use.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Get(ctx context.Context, key string, value interface{}) error

	Delete(ctx context.Context, key string) error

	// Increment atomically bumps an integer key, creating it at 1. Used for
	// the list-cache namespace version.
	Increment(ctx context.Context, key string) (int64, error)

	Close() error
}

type Options struct {
	DefaultTTL time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func DefaultOptions() Options {
	return Options{
		DefaultTTL: time.Hour,
	}
}
