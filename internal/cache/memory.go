// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// memory.go provides the in-process (L1) cache used by the SEO engine.
// Entries carry their own TTL and are evicted lazily: a lookup that finds
// an expired entry deletes it and reports a miss. There is no background
// sweeper.
package cache

import (
	"log/slog"
	"sync"
	"time"
)

// entry is a single cached value with its write time and lifetime.
type entry[V any] struct {
	value     V
	writtenAt time.Time
	ttl       time.Duration
}

// expired reports whether the entry is no longer servable at now.
func (e entry[V]) expired(now time.Time) bool {
	return !now.Before(e.writtenAt.Add(e.ttl))
}

// Memory is a concurrency-safe TTL cache keyed by string. Writes replace
// whole entries, so readers never observe a partially updated value.
type Memory[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	now     func() time.Time
}

// NewMemory creates an empty cache using the wall clock.
func NewMemory[V any]() *Memory[V] {
	return &Memory[V]{
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// SetClock replaces the time source. Used by tests to step past TTLs.
func (m *Memory[V]) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Get returns the cached value for key. An entry whose writtenAt+ttl has
// elapsed is removed and reported as a miss.
func (m *Memory[V]) Get(key string) (V, bool) {
	var zero V

	m.mu.RLock()
	e, ok := m.entries[key]
	now := m.now()
	m.mu.RUnlock()

	if !ok {
		return zero, false
	}
	if e.expired(now) {
		m.mu.Lock()
		// Re-check: a concurrent Set may have replaced the stale entry.
		if cur, still := m.entries[key]; still && cur.expired(m.now()) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		slog.Debug("seo cache entry expired", "key", key)
		return zero, false
	}
	return e.value, true
}

// Set stores value under key for ttl, overwriting any existing entry.
// A non-positive ttl is ignored.
func (m *Memory[V]) Set(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry[V]{value: value, writtenAt: m.now(), ttl: ttl}
}

// Clear removes every entry and returns how many were dropped.
func (m *Memory[V]) Clear() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.entries)
	m.entries = make(map[string]entry[V])
	return n
}

// Len returns the number of stored entries, including expired entries
// that have not been looked up since they went stale.
func (m *Memory[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
