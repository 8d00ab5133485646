package services

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/singleflight"

	"github.com/iota-uz/restaurant-admin/pkg/composables"
	"github.com/iota-uz/restaurant-admin/pkg/constants"
)

var cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "restaurant_admin",
	Name:      "collection_cache_lookups_total",
	Help:      "Collection cache lookups by collection and result.",
}, []string{"collection", "result"})

type cacheEntry[T any] struct {
	items     []T
	fetchedAt time.Time
}

// CollectionCache keeps one fetched collection per session. Concurrent
// misses for the same session share a single backend call.
type CollectionCache[T any] struct {
	name  string
	ttl   time.Duration
	fetch func(ctx context.Context) ([]T, error)
	now   func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry[T]
	group   singleflight.Group
	// bumped on every invalidation so fetches that started earlier are not stored
	generation uint64
}

func NewCollectionCache[T any](name string, ttl time.Duration, fetch func(ctx context.Context) ([]T, error)) *CollectionCache[T] {
	return &CollectionCache[T]{
		name:    name,
		ttl:     ttl,
		fetch:   fetch,
		now:     time.Now,
		entries: make(map[string]cacheEntry[T]),
	}
}

// CacheKey identifies the caller: the session id, else the bare token, else "anonymous".
func CacheKey(ctx context.Context) string {
	if s, err := composables.UseSession(ctx); err == nil && s.ID != "" {
		return "sid:" + s.ID
	}
	if token, ok := ctx.Value(constants.AuthTokenKey).(string); ok && token != "" {
		return "token:" + token
	}
	return "anonymous"
}

// Get returns a copy of the cached collection, fetching it on a miss.
func (c *CollectionCache[T]) Get(ctx context.Context) ([]T, error) {
	key := CacheKey(ctx)

	c.mu.RLock()
	entry, ok := c.entries[key]
	gen := c.generation
	c.mu.RUnlock()
	if ok && (c.ttl <= 0 || c.now().Sub(entry.fetchedAt) < c.ttl) {
		cacheLookups.WithLabelValues(c.name, "hit").Inc()
		return clone(entry.items), nil
	}
	cacheLookups.WithLabelValues(c.name, "miss").Inc()

	v, err, _ := c.group.Do(key+"#"+strconv.FormatUint(gen, 10), func() (interface{}, error) {
		items, err := c.fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.generation == gen {
			c.entries[key] = cacheEntry[T]{items: items, fetchedAt: c.now()}
		}
		c.mu.Unlock()
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return clone(v.([]T)), nil
}

// Peek returns the caller's cached collection without fetching, whatever its age.
func (c *CollectionCache[T]) Peek(ctx context.Context) ([]T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[CacheKey(ctx)]
	if !ok {
		return nil, false
	}
	return clone(entry.items), true
}

// Invalidate drops every cached collection.
func (c *CollectionCache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry[T])
	c.generation++
}

func (c *CollectionCache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func clone[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
