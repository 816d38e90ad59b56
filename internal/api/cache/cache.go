// Package cache memoizes station results per normalized query key.
package cache

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/FACorreiaa/go-gas-station-finder/app/observability/metrics"
	"github.com/FACorreiaa/go-gas-station-finder/internal/types"
)

const DefaultTTL = 30 * time.Minute

// Loader computes a fresh entry on a miss. store=false keeps the result out of
// the cache (e.g. the location did not resolve).
type Loader func(ctx context.Context) (entry types.CacheEntry, store bool, err error)

// ResultCache is a TTL cache of station results. Freshness is judged against the
// injected clock on every read; go-cache's janitor only reclaims memory.
type ResultCache struct {
	store   *gocache.Cache
	clock   clockwork.Clock
	ttl     time.Duration
	group   singleflight.Group
	metrics *metrics.AppMetrics
}

type loadResult struct {
	entry types.CacheEntry
	hit   bool
}

func New(ttl, cleanupInterval time.Duration, clock clockwork.Clock, m *metrics.AppMetrics) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	// Entries linger one extra TTL in the store so reads decide staleness, not the janitor.
	return &ResultCache{
		store:   gocache.New(2*ttl, cleanupInterval),
		clock:   clock,
		ttl:     ttl,
		metrics: m,
	}
}

// Get returns a copy of the entry for key while it is fresh. A stale entry is a miss.
func (c *ResultCache) Get(key string) (types.CacheEntry, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return types.CacheEntry{}, false
	}
	entry, ok := v.(types.CacheEntry)
	if !ok || !entry.Fresh(c.clock.Now(), c.ttl) {
		return types.CacheEntry{}, false
	}
	return cloneEntry(entry), true
}

// Put replaces the entry for key. A zero CreatedAt is stamped with the clock.
func (c *ResultCache) Put(key string, entry types.CacheEntry) {
	entry.Key = key
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = c.clock.Now()
	}
	c.store.SetDefault(key, cloneEntry(entry))
}

// GetOrLoad returns the fresh entry for key or runs load once for all concurrent
// callers of the same key. hit reports whether the entry came from the cache.
//
// The shared load runs on a context detached from the caller's cancellation, so
// one caller going away does not fail the others waiting on the key. Each caller
// still stops waiting when its own ctx is done.
func (c *ResultCache) GetOrLoad(ctx context.Context, key string, load Loader) (types.CacheEntry, bool, error) {
	if entry, ok := c.Get(key); ok {
		c.metrics.RecordCacheLookup(ctx, true)
		return entry, true, nil
	}
	c.metrics.RecordCacheLookup(ctx, false)

	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		// Another caller may have filled the key while we waited for the group.
		if entry, ok := c.Get(key); ok {
			return loadResult{entry: entry, hit: true}, nil
		}
		entry, store, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		if store {
			if entry.CreatedAt.IsZero() {
				entry.CreatedAt = c.clock.Now()
			}
			c.Put(key, entry)
		}
		entry.Key = key
		return loadResult{entry: entry}, nil
	})

	select {
	case <-ctx.Done():
		return types.CacheEntry{}, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return types.CacheEntry{}, false, res.Err
		}
		lr := res.Val.(loadResult)
		return cloneEntry(lr.entry), lr.hit, nil
	}
}

func cloneEntry(entry types.CacheEntry) types.CacheEntry {
	if entry.Stations != nil {
		stations := make([]types.StationRecord, len(entry.Stations))
		for i, st := range entry.Stations {
			st.Rating = clonePtr(st.Rating)
			st.RatingCount = clonePtr(st.RatingCount)
			st.PriceLevel = clonePtr(st.PriceLevel)
			stations[i] = st
		}
		entry.Stations = stations
	}
	return entry
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Len is the number of stored entries, stale ones included.
func (c *ResultCache) Len() int {
	return c.store.ItemCount()
}
