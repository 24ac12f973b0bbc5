// Package cache provides the Redis-backed history query cache.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"candle_backend/internal/feature/candles/domain/entity"
	"candle_backend/internal/feature/candles/usecase"
)

// HistoryCache caches history query results under a Redis namespace, one
// entry per (symbol, timeframe, from, to) tuple with a fixed TTL. Clear drops
// the whole namespace; the aggregation calls it after every successful write,
// trading hit rate for the guarantee that no response reflects data older
// than the latest write. The capacity bound is delegated to the Redis
// eviction policy.
//
// All operations are best effort: with a nil client, or on any Redis error,
// callers simply fall through to the store.
type HistoryCache struct {
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.HistoryCache = (*HistoryCache)(nil)

// NewHistoryCache creates a cache over rdb. If ttl is 0 it defaults to 30
// seconds; an empty namespace defaults to "history".
func NewHistoryCache(rdb *redis.Client, ttl time.Duration, namespace string) *HistoryCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if namespace == "" {
		namespace = "history"
	}
	return &HistoryCache{rdb: rdb, ttl: ttl, namespace: namespace}
}

// Get returns the cached result for the query tuple, or ok == false on miss.
// A corrupted entry is deleted and treated as a miss.
func (c *HistoryCache) Get(ctx context.Context, symbol, tfCode string, from, to int64) ([]entity.Candle, bool) {
	if c.rdb == nil {
		return nil, false
	}

	key := c.key(symbol, tfCode, from, to)
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return nil, false
	}

	var out []entity.Candle
	if err := json.Unmarshal(b, &out); err != nil {
		_ = c.rdb.Del(ctx, key).Err()
		return nil, false
	}
	return out, true
}

// Put stores the result for the query tuple with the cache TTL. Empty results
// are cached too: "no data" answers are as cacheable as any other.
func (c *HistoryCache) Put(ctx context.Context, symbol, tfCode string, from, to int64, candles []entity.Candle) {
	if c.rdb == nil {
		return
	}
	if candles == nil {
		candles = []entity.Candle{}
	}
	b, err := json.Marshal(candles)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, c.key(symbol, tfCode, from, to), b, c.ttl).Err()
}

// Clear drops every entry in the namespace.
func (c *HistoryCache) Clear(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.deleteByPattern(ctx, c.namespace+":*")
}

// key generates the cache key for a specific query tuple.
func (c *HistoryCache) key(symbol, tfCode string, from, to int64) string {
	return fmt.Sprintf("%s:%s:%s:%d:%d", c.namespace, safe(symbol), safe(tfCode), from, to)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *HistoryCache) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			return nil
		}
	}
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
