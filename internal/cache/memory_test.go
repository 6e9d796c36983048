// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"catalogseo/internal/models"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestMemory[V any]() (*Memory[V], *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	m := NewMemory[V]()
	m.SetClock(clock.Now)
	return m, clock
}

func TestMemorySetAndGet(t *testing.T) {
	m, _ := newTestMemory[string]()

	if _, ok := m.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}

	m.Set("k", "v", time.Minute)
	got, ok := m.Get("k")
	if !ok {
		t.Fatal("expected hit")
	}
	if got != "v" {
		t.Errorf("value: got %q, want %q", got, "v")
	}
}

func TestMemoryLazyExpiry(t *testing.T) {
	m, clock := newTestMemory[string]()
	m.Set("k", "v", time.Hour)

	clock.Advance(59 * time.Minute)
	if _, ok := m.Get("k"); !ok {
		t.Fatal("expected hit before expiry")
	}

	// Exactly writtenAt+ttl is already expired.
	clock.Advance(time.Minute)
	if _, ok := m.Get("k"); ok {
		t.Error("expected miss at writtenAt+ttl")
	}
	if m.Len() != 0 {
		t.Errorf("expired entry should be evicted on lookup, len=%d", m.Len())
	}
}

func TestMemoryStaleEntryCountedUntilLookup(t *testing.T) {
	m, clock := newTestMemory[int]()
	m.Set("a", 1, time.Minute)
	m.Set("b", 2, time.Hour)

	clock.Advance(2 * time.Minute)
	if m.Len() != 2 {
		t.Errorf("no sweeper: len before lookup = %d, want 2", m.Len())
	}
	m.Get("a")
	if m.Len() != 1 {
		t.Errorf("len after lookup = %d, want 1", m.Len())
	}
}

func TestMemoryOverwrite(t *testing.T) {
	m, clock := newTestMemory[string]()
	m.Set("k", "old", time.Minute)
	clock.Advance(50 * time.Second)
	m.Set("k", "new", time.Minute)
	clock.Advance(50 * time.Second)

	got, ok := m.Get("k")
	if !ok || got != "new" {
		t.Errorf("got %q ok=%v, want new entry with refreshed ttl", got, ok)
	}
}

func TestMemoryIgnoresNonPositiveTTL(t *testing.T) {
	m, _ := newTestMemory[string]()
	m.Set("k", "v", 0)
	if _, ok := m.Get("k"); ok {
		t.Error("zero ttl should not be stored")
	}
}

func TestMemoryClear(t *testing.T) {
	m, _ := newTestMemory[string]()
	m.Set("a", "1", time.Minute)
	m.Set("b", "2", time.Minute)

	if n := m.Clear(); n != 2 {
		t.Errorf("Clear returned %d, want 2", n)
	}
	if _, ok := m.Get("a"); ok {
		t.Error("cleared key still present")
	}
	if m.Len() != 0 {
		t.Errorf("len after Clear = %d", m.Len())
	}
}

func TestMemoryConcurrentAccess(t *testing.T) {
	m := NewMemory[models.GeneratedContent]()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%4)
			m.Set(key, models.GeneratedContent{Title: key}, time.Minute)
			if got, ok := m.Get(key); ok && got.Title != key {
				t.Errorf("key %s: got title %q", key, got.Title)
			}
		}(i)
	}
	wg.Wait()
	if m.Len() != 4 {
		t.Errorf("len = %d, want 4", m.Len())
	}
}

func TestSelectTier(t *testing.T) {
	n := func(v int) *int { return &v }
	tests := []struct {
		name string
		vars models.SeoVariables
		want Tier
	}{
		{name: "plain range", vars: models.SeoVariables{}, want: TierMedium},
		{name: "top range", vars: models.SeoVariables{IsTopRange: true}, want: TierLong},
		{name: "101 articles", vars: models.SeoVariables{ArticlesCount: n(101)}, want: TierLong},
		{name: "exactly 100 articles", vars: models.SeoVariables{ArticlesCount: n(100)}, want: TierMedium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectTier(tt.vars); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTiers(t *testing.T) {
	tiers := DefaultTiers()
	if err := tiers.Validate(); err != nil {
		t.Fatalf("default tiers invalid: %v", err)
	}
	if tiers.Duration(TierShort) != 30*time.Minute {
		t.Errorf("short: got %s", tiers.Duration(TierShort))
	}
	if tiers.Duration(TierMedium) != time.Hour {
		t.Errorf("medium: got %s", tiers.Duration(TierMedium))
	}
	if tiers.Duration(TierLong) != 4*time.Hour {
		t.Errorf("long: got %s", tiers.Duration(TierLong))
	}

	bad := Tiers{Short: 2 * time.Hour, Medium: time.Hour, Long: 4 * time.Hour}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unordered tiers")
	}
	if err := (Tiers{}).Validate(); err == nil {
		t.Error("expected error for zero tiers")
	}
}

func TestContentKey(t *testing.T) {
	if got := ContentKey(45, 1234, 13, 140); got != "seo:45:1234:13:140" {
		t.Errorf("ContentKey: got %q", got)
	}
	if ContentKey(1, 2, 3, 4) == ActiveRangesKey {
		t.Error("content key collides with directory sentinel")
	}
}
