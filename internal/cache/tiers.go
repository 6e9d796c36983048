// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"fmt"
	"time"

	"catalogseo/internal/models"
)

// Default TTL tiers.
const (
	DefaultShortTTL  = 30 * time.Minute
	DefaultMediumTTL = 1 * time.Hour
	DefaultLongTTL   = 4 * time.Hour

	// popularArticleThreshold is the article count above which a page is
	// considered popular enough for the long tier.
	popularArticleThreshold = 100
)

// Tier names a TTL tier.
type Tier string

const (
	TierShort  Tier = "short"
	TierMedium Tier = "medium"
	TierLong   Tier = "long"
)

// Tiers holds the three TTL durations. Durations may be configured but the
// three-tier structure is fixed.
type Tiers struct {
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

// DefaultTiers returns the 30m / 1h / 4h tiers.
func DefaultTiers() Tiers {
	return Tiers{Short: DefaultShortTTL, Medium: DefaultMediumTTL, Long: DefaultLongTTL}
}

// Validate checks that every tier is positive and that the tiers are ordered.
func (t Tiers) Validate() error {
	if t.Short <= 0 || t.Medium <= 0 || t.Long <= 0 {
		return fmt.Errorf("cache tiers must be positive (short=%s medium=%s long=%s)", t.Short, t.Medium, t.Long)
	}
	if t.Short > t.Medium || t.Medium > t.Long {
		return fmt.Errorf("cache tiers must satisfy short <= medium <= long (short=%s medium=%s long=%s)", t.Short, t.Medium, t.Long)
	}
	return nil
}

// Duration returns the TTL for a tier.
func (t Tiers) Duration(tier Tier) time.Duration {
	switch tier {
	case TierShort:
		return t.Short
	case TierLong:
		return t.Long
	default:
		return t.Medium
	}
}

// SelectTier picks the tier for generated content: long for top ranges or
// ranges with more than 100 articles, medium otherwise.
func SelectTier(vars models.SeoVariables) Tier {
	if vars.IsTopRange || vars.Articles() > popularArticleThreshold {
		return TierLong
	}
	return TierMedium
}

// ContentKey returns the cache key for one (range, type, make, model) page.
func ContentKey(rangeID, typeID, makeID, modelID int) string {
	return fmt.Sprintf("%s%d:%d:%d:%d", contentKeyPrefix, rangeID, typeID, makeID, modelID)
}

// ActiveRangesKey is the sentinel key of the active range directory.
const ActiveRangesKey = "seo:active_ranges"
