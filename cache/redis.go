package cache

import (
	"context"
	"fmt"
	"time"

	"Quill/utils/logger"

	"github.com/redis/go-redis/v9"
)

// HomeKey is the single cache key for the home feed rendering. It is
// deliberately not parameterized by viewer or page number: every visitor
// shares one cached payload until the TTL runs out or the cache is cleared,
// so the home view must never contain viewer-specific content.
const HomeKey = "index_page"

// HomeTTL bounds how stale the cached home feed may get.
const HomeTTL = 20 * time.Second

// RenderFunc produces the bytes to cache on a miss.
type RenderFunc func() ([]byte, error)

// Store is a process-scoped, time-bounded key-value cache. It is injected
// into the server rather than reached as a global so tests can substitute
// their own backing store.
type Store interface {
	// GetOrRender returns the cached bytes for key, rendering and storing
	// them on a miss. Any store failure degrades to a direct render; only
	// render errors surface to the caller.
	GetOrRender(ctx context.Context, key string, ttl time.Duration, render RenderFunc) ([]byte, error)
	// Clear drops every cached rendering immediately.
	Clear(ctx context.Context) error
}

// RedisStore backs the page cache with Redis. A nil client degrades every
// call to a direct render, so a missing or dead Redis never fails a request.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the given Redis URL ("" or a bad address yields
// a render-through store rather than an error).
func NewRedisStore(url string) *RedisStore {
	if url == "" {
		return &RedisStore{}
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: url}
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Sugar.Warnf("page cache unavailable, rendering directly: %v", err)
		return &RedisStore{}
	}
	return &RedisStore{client: client}
}

// NewRedisStoreFromClient wraps an existing client (tests use miniredis).
func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) GetOrRender(ctx context.Context, key string, ttl time.Duration, render RenderFunc) ([]byte, error) {
	if s.client != nil {
		cached, err := s.client.Get(ctx, key).Bytes()
		if err == nil {
			return cached, nil
		}
		if err != redis.Nil {
			logger.Sugar.Warnf("cache get failed key=%s err=%v", key, err)
		}
	}

	rendered, err := render()
	if err != nil {
		return nil, err
	}

	if s.client != nil {
		if err := s.client.Set(ctx, key, rendered, ttl).Err(); err != nil {
			logger.Sugar.Warnf("cache set failed key=%s err=%v", key, err)
		}
	}
	return rendered, nil
}

// Clear deletes every key under the page-cache prefix via SCAN.
func (s *RedisStore) Clear(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, HomeKey+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("cache clear: %w", err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache clear: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
