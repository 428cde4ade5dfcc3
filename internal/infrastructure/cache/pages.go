package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// PageCache stores rendered read-model pages under a generation counter.
// Invalidate bumps the counter, so every page written before it becomes
// unreachable at once and simply expires.
type PageCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewPageCache(rdb *redis.Client, prefix string, ttl time.Duration) *PageCache {
	return &PageCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (p *PageCache) versionKey() string { return p.prefix + ":version" }

func (p *PageCache) version(ctx context.Context) (int64, error) {
	v, err := p.rdb.Get(ctx, p.versionKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (p *PageCache) pageKey(ver int64, key string) string {
	return p.prefix + ":v" + strconv.FormatInt(ver, 10) + ":" + key
}

// Get returns the cached page for key and the generation it was looked up
// under; ok is false on a miss. A page filled after a miss must be written
// back with Set under that same generation.
func (p *PageCache) Get(ctx context.Context, key string) (b []byte, ver int64, ok bool, err error) {
	ver, err = p.version(ctx)
	if err != nil {
		return nil, 0, false, err
	}
	b, err = p.rdb.Get(ctx, p.pageKey(ver, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ver, false, nil
	}
	if err != nil {
		return nil, ver, false, err
	}
	return b, ver, true, nil
}

// Set stores a page under generation ver. A page built before an Invalidate
// lands under the old generation and is never served.
func (p *PageCache) Set(ctx context.Context, ver int64, key string, b []byte) error {
	return p.rdb.Set(ctx, p.pageKey(ver, key), b, p.ttl).Err()
}

func (p *PageCache) Invalidate(ctx context.Context) error {
	return p.rdb.Incr(ctx, p.versionKey()).Err()
}
