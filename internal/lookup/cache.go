package lookup

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// Default cache tuning, mirroring the shape of a lock-free metrics cache:
// a bounded TTL, with atomic hit/miss/eviction counters for observability.
const (
	DefaultCacheTTL      = 5 * time.Minute
	DefaultMaxCacheEntries = 512
)

type cachedResult struct {
	results  []Result
	cachedAt int64 // UnixNano
}

// CachingEngine wraps an Engine with a TTL-bounded query result cache and
// request coalescing, so that repeated or concurrently-duplicated
// lookups of the same (query, maxResults) pair hit the store once.
type CachingEngine struct {
	engine *Engine
	ttl    time.Duration
	max    int

	entries sync.Map // map[string]*cachedResult
	count   int64    // approximate entry count, atomic
	group   singleflight.Group

	hits      int64
	misses    int64
	evictions int64
}

// NewCachingEngine wraps engine with a cache of the given TTL and
// approximate maximum entry count. A ttl or maxEntries of zero or less
// selects DefaultCacheTTL or DefaultMaxCacheEntries.
func NewCachingEngine(engine *Engine, ttl time.Duration, maxEntries int) *CachingEngine {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxCacheEntries
	}
	return &CachingEngine{engine: engine, ttl: ttl, max: maxEntries}
}

func cacheKey(query string, maxResults int) string {
	return fmt.Sprintf("%d:%s", maxResults, query)
}

// Lookup returns a cached result when fresh, otherwise runs the
// underlying engine's lookup exactly once even under concurrent callers
// for the same key (via singleflight), and caches the outcome.
func (c *CachingEngine) Lookup(query string, maxResults int) ([]Result, error) {
	key := cacheKey(query, maxResults)

	if v, ok := c.entries.Load(key); ok {
		cached := v.(*cachedResult)
		if time.Since(time.Unix(0, cached.cachedAt)) < c.ttl {
			atomic.AddInt64(&c.hits, 1)
			return cached.results, nil
		}
		if _, loaded := c.entries.LoadAndDelete(key); loaded {
			atomic.AddInt64(&c.count, -1)
		}
		atomic.AddInt64(&c.evictions, 1)
	}
	atomic.AddInt64(&c.misses, 1)

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		results, err := c.engine.Lookup(query, maxResults)
		if err != nil {
			return nil, err
		}
		if atomic.LoadInt64(&c.count) < int64(c.max) {
			c.entries.Store(key, &cachedResult{results: results, cachedAt: time.Now().UnixNano()})
			atomic.AddInt64(&c.count, 1)
		}
		return results, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Result), nil
}

// Invalidate drops every cached entry and resets the entry count. Nothing
// in this repository calls it: a reinstall run by another process does
// not reach the cache of a running server.
func (c *CachingEngine) Invalidate() {
	c.entries.Range(func(key, _ interface{}) bool {
		c.entries.Delete(key)
		return true
	})
	atomic.StoreInt64(&c.count, 0)
}

// Stats reports the cache's lifetime hit/miss/eviction counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
}

func (c *CachingEngine) Stats() Stats {
	return Stats{
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Evictions: atomic.LoadInt64(&c.evictions),
	}
}
