// Package memory provides an in-process Cache used when no redis address is
// configured, and in tests.
package memory

import (
	"context"
	"encoding"
	"strconv"
	"sync"
	"time"

	"jobboard-api/internal/cache"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	closed  bool
}

func New() *Cache {
	return &Cache{entries: make(map[string]entry)}
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl == 0 {
		ttl = cache.DefaultOptions().DefaultTTL
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = append([]byte(nil), v...)
	case encoding.BinaryMarshaler:
		b, err := v.MarshalBinary()
		if err != nil {
			return err
		}
		raw = b
	default:
		return cache.ErrInvalidValue
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return cache.ErrClosed
	}
	c.entries[key] = entry{value: raw, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (c *Cache) Get(ctx context.Context, key string, value interface{}) error {
	c.mu.RLock()
	e, ok := c.entries[key]
	closed := c.closed
	c.mu.RUnlock()

	if closed {
		return cache.ErrClosed
	}
	if !ok || time.Now().After(e.expiresAt) {
		return cache.ErrNotFound
	}

	switch v := value.(type) {
	case *string:
		*v = string(e.value)
	case *[]byte:
		*v = append([]byte(nil), e.value...)
	case encoding.BinaryUnmarshaler:
		return v.UnmarshalBinary(e.value)
	default:
		return cache.ErrInvalidValue
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return cache.ErrClosed
	}
	delete(c.entries, key)
	return nil
}

func (c *Cache) Increment(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, cache.ErrClosed
	}

	var n int64
	if e, ok := c.entries[key]; ok && !time.Now().After(e.expiresAt) {
		parsed, err := strconv.ParseInt(string(e.value), 10, 64)
		if err != nil {
			return 0, cache.ErrInvalidValue
		}
		n = parsed
	}
	n++
	c.entries[key] = entry{
		value:     []byte(strconv.FormatInt(n, 10)),
		expiresAt: time.Now().Add(cache.DefaultOptions().DefaultTTL),
	}
	return n, nil
}

func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.entries = nil
	return nil
}
