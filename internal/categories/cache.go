package categories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheVersionKey = "gigflow:categories:version"             // INCR on every write
	cachePagePrefix = "gigflow:categories:v%d:page:%d:size:%d" // one entry per page, per version
)

// Cache keeps category list pages in Redis. Writes bump a version counter
// so stale pages are never read again and simply expire. A nil *Cache is a
// permanent miss.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) version(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// Get returns a cached page. ok is false on a miss. version is the
// counter the lookup used; pass it to Set so a page read before a write is
// never stored under the version that write created. version is -1 when it
// could not be read.
func (c *Cache) Get(ctx context.Context, page, size int) (res *ListResult, version int64, ok bool, err error) {
	if c == nil {
		return nil, -1, false, nil
	}
	v, err := c.version(ctx)
	if err != nil {
		return nil, -1, false, fmt.Errorf("read cache version: %w", err)
	}

	data, err := c.client.Get(ctx, fmt.Sprintf(cachePagePrefix, v, page, size)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, v, false, nil
	}
	if err != nil {
		return nil, v, false, fmt.Errorf("read cached page: %w", err)
	}

	var out ListResult
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, v, false, fmt.Errorf("decode cached page: %w", err)
	}
	return &out, v, true, nil
}

// Set stores a page under version, as returned by the Get that missed.
// A negative version is skipped.
func (c *Cache) Set(ctx context.Context, version int64, page, size int, res *ListResult) error {
	if c == nil || version < 0 {
		return nil
	}

	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode page: %w", err)
	}
	if err := c.client.Set(ctx, fmt.Sprintf(cachePagePrefix, version, page, size), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("write cached page: %w", err)
	}
	return nil
}

// Invalidate retires every cached page.
func (c *Cache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if err := c.client.Incr(ctx, cacheVersionKey).Err(); err != nil {
		return fmt.Errorf("bump cache version: %w", err)
	}
	return nil
}
