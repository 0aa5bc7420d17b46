// Package cache absorbs repeated coin lookups for the same address.
// Entries are last-write-wins upserts keyed by lowercased address and
// expire after a TTL so stale market data is re-fetched.
package cache

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/zoracast/zoracast/internal/coin"
)

// Entry bundles the snapshot and comment set cached for one address.
type Entry struct {
	Snapshot coin.Snapshot  `json:"snapshot"`
	Comments []coin.Comment `json:"comments"`
}

type Cache interface {
	Get(ctx context.Context, address string) (Entry, bool)
	Set(ctx context.Context, address string, e Entry)
}

const keyPrefix = "zoracast:coin:"

type memory struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[string]memEntry
}

type memEntry struct {
	e   Entry
	exp time.Time
}

// NewMemory returns an in-process cache. ttl <= 0 means entries never
// expire.
func NewMemory(ttl time.Duration) Cache {
	return &memory{ttl: ttl, m: make(map[string]memEntry)}
}

func (c *memory) Get(_ context.Context, address string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	me, ok := c.m[coin.NormalizeAddress(address)]
	if !ok || (!me.exp.IsZero() && time.Now().After(me.exp)) {
		return Entry{}, false
	}
	return me.e, true
}

func (c *memory) Set(_ context.Context, address string, e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	me := memEntry{e: e}
	if c.ttl > 0 {
		me.exp = time.Now().Add(c.ttl)
	}
	c.m[coin.NormalizeAddress(address)] = me
}

// Redis adapter, selected when an address is configured (or via
// REDIS_ADDR). Failures degrade to cache misses; the provider remains
// the source of truth.
type redisCache struct {
	r   *redis.Client
	ttl time.Duration
}

// NewAuto returns a Redis-backed cache when addr (or the REDIS_ADDR
// env var) is set, otherwise an in-process one.
func NewAuto(addr string, ttl time.Duration) Cache {
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}
	if addr != "" {
		return &redisCache{r: redis.NewClient(&redis.Options{Addr: addr}), ttl: ttl}
	}
	return NewMemory(ttl)
}

func (c *redisCache) Get(ctx context.Context, address string) (Entry, bool) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	raw, err := c.r.Get(ctx, keyPrefix+coin.NormalizeAddress(address)).Bytes()
	if err != nil {
		return Entry{}, false
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return Entry{}, false
	}
	return e, true
}

func (c *redisCache) Set(ctx context.Context, address string, e Entry) {
	raw, err := json.Marshal(e)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	_ = c.r.Set(ctx, keyPrefix+coin.NormalizeAddress(address), raw, c.ttl).Err()
}
