// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// cache.go wires the engine's two cache levels. L1 is the in-process TTL
// cache owned by the Engine; L2 is an optional SharedCache (Valkey) so that
// every process serves content generated by its peers. An L2 hit is copied
// into L1 with the short tier.
package engine

import (
	"context"
	"log/slog"
	"time"

	"catalogseo/internal/cache"
	"catalogseo/internal/models"
)

// resultCache is the two-level cache for generated content plus the
// active range directory.
type resultCache struct {
	local     *cache.Memory[models.GeneratedContent]
	directory *cache.Memory[[]models.ActiveRange]
	shared    SharedCache
	tiers     cache.Tiers
}

func newResultCache(tiers cache.Tiers, shared SharedCache) *resultCache {
	return &resultCache{
		local:     cache.NewMemory[models.GeneratedContent](),
		directory: cache.NewMemory[[]models.ActiveRange](),
		shared:    shared,
		tiers:     tiers,
	}
}

// get looks key up in L1, then L2.
func (c *resultCache) get(ctx context.Context, key string) (models.GeneratedContent, bool) {
	if v, ok := c.local.Get(key); ok {
		slog.Debug("seo cache hit", "key", key, "level", "l1")
		return v, true
	}
	if c.shared == nil {
		return models.GeneratedContent{}, false
	}
	v, ok := c.shared.Get(ctx, key)
	if !ok {
		return models.GeneratedContent{}, false
	}
	c.local.Set(key, v, c.tiers.Short)
	slog.Debug("seo cache hit", "key", key, "level", "l2")
	return v, true
}

// put writes content to both levels.
func (c *resultCache) put(ctx context.Context, key string, v models.GeneratedContent, ttl time.Duration) {
	c.local.Set(key, v, ttl)
	if c.shared != nil {
		c.shared.Set(ctx, key, v, ttl)
	}
}

// ranges returns the cached active range directory.
func (c *resultCache) ranges() ([]models.ActiveRange, bool) {
	return c.directory.Get(cache.ActiveRangesKey)
}

// putRanges stores the directory with the long tier.
func (c *resultCache) putRanges(r []models.ActiveRange) {
	c.directory.Set(cache.ActiveRangesKey, r, c.tiers.Long)
}

// clear drops every entry from both levels and returns the number of L1
// entries removed plus the number of L2 keys deleted.
func (c *resultCache) clear(ctx context.Context) int {
	n := c.local.Clear() + c.directory.Clear()
	if c.shared != nil {
		n += c.shared.InvalidateAll(ctx)
	}
	slog.Debug("seo cache fully cleared", "entries", n)
	return n
}

// len returns the number of L1 entries, directory included.
func (c *resultCache) len() int {
	return c.local.Len() + c.directory.Len()
}
