// Package cache provides the in-memory store used to memoize info lookups
// and player JS bodies.
package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/samber/mo"
)

// Store is a goroutine-safe key/value store. Implementations choose their
// own eviction policy; a value that was evicted simply reads as absent.
type Store[V any] interface {
	Get(key string) mo.Option[V]
	Set(key string, value V)
}

// Key builds the composite memoization key for an info operation.
func Key(operation, videoID, lang string) string {
	return strings.Join([]string{operation, videoID, lang}, "-")
}

// Options bounds a Memory store. Zero values disable the bound.
type Options struct {
	TTL        time.Duration
	MaxEntries int
}

// Stats holds store counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Sets      int64
	Evictions int64
	Size      int
}

type entry[V any] struct {
	value      V
	cachedAt   time.Time
	lastAccess time.Time
}

// Memory is an in-memory Store with optional TTL and LRU bounds.
type Memory[V any] struct {
	mu      sync.Mutex
	opts    Options
	entries map[string]*entry[V]
	stats   Stats
	now     func() time.Time
}

// NewMemory creates an empty Memory store.
func NewMemory[V any](opts Options) *Memory[V] {
	return &Memory[V]{
		opts:    opts,
		entries: make(map[string]*entry[V]),
		now:     time.Now,
	}
}

func (m *Memory[V]) Get(key string) mo.Option[V] {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		m.stats.Misses++
		return mo.None[V]()
	}
	now := m.now()
	if m.expired(e, now) {
		delete(m.entries, key)
		m.stats.Evictions++
		m.stats.Misses++
		return mo.None[V]()
	}
	e.lastAccess = now
	m.stats.Hits++
	return mo.Some(e.value)
}

func (m *Memory[V]) Set(key string, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.entries[key] = &entry[V]{value: value, cachedAt: now, lastAccess: now}
	m.stats.Sets++
	m.evictExpiredLocked(now)
	m.evictLRULocked()
}

// Delete removes key from the store.
func (m *Memory[V]) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// Stats returns a snapshot of the store counters.
func (m *Memory[V]) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.stats
	s.Size = len(m.entries)
	return s
}

func (m *Memory[V]) expired(e *entry[V], now time.Time) bool {
	return m.opts.TTL > 0 && now.Sub(e.cachedAt) > m.opts.TTL
}

func (m *Memory[V]) evictExpiredLocked(now time.Time) {
	if m.opts.TTL <= 0 {
		return
	}
	for key, e := range m.entries {
		if m.expired(e, now) {
			delete(m.entries, key)
			m.stats.Evictions++
		}
	}
}

func (m *Memory[V]) evictLRULocked() {
	if m.opts.MaxEntries <= 0 {
		return
	}
	for len(m.entries) > m.opts.MaxEntries {
		var oldestKey string
		var oldest time.Time
		first := true
		for key, e := range m.entries {
			if first || e.lastAccess.Before(oldest) {
				first = false
				oldestKey = key
				oldest = e.lastAccess
			}
		}
		delete(m.entries, oldestKey)
		m.stats.Evictions++
	}
}

// Noop is a Store that never retains anything.
type Noop[V any] struct{}

func (Noop[V]) Get(string) mo.Option[V] { return mo.None[V]() }
func (Noop[V]) Set(string, V)           {}
