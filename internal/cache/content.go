// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// content.go provides a Valkey-backed cache (L2) for generated SEO content.
// Results written by one process are visible to every other process, so a
// freshly started instance does not regenerate pages its peers already
// built. Values are stored as JSON with the same TTL chosen for L1.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"catalogseo/internal/models"
)

// contentKeyPrefix is the Valkey key prefix for cached SEO content.
const contentKeyPrefix = "seo:"

// ContentCache manages generated SEO content in Valkey.
type ContentCache struct {
	client *redis.Client
}

// NewContentCache creates a content cache backed by the given Valkey client.
func NewContentCache(client *redis.Client) *ContentCache {
	return &ContentCache{client: client}
}

// Get retrieves cached content for key. Errors are logged and reported as
// a miss so that a Valkey outage never fails generation.
func (cc *ContentCache) Get(ctx context.Context, key string) (models.GeneratedContent, bool) {
	var content models.GeneratedContent

	val, err := cc.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return content, false
	}
	if err != nil {
		slog.Warn("seo content cache get error", "key", key, "error", err)
		return content, false
	}
	if err := json.Unmarshal(val, &content); err != nil {
		slog.Warn("seo content cache decode error", "key", key, "error", err)
		return content, false
	}
	slog.Debug("seo content cache hit", "key", key)
	return content, true
}

// Set stores content for key with the given TTL.
func (cc *ContentCache) Set(ctx context.Context, key string, content models.GeneratedContent, ttl time.Duration) {
	data, err := json.Marshal(content)
	if err != nil {
		slog.Warn("seo content cache encode error", "key", key, "error", err)
		return
	}
	if err := cc.client.Set(ctx, key, data, ttl).Err(); err != nil {
		slog.Warn("seo content cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes all cached content by scanning for the prefix.
// Returns the number of deleted keys.
func (cc *ContentCache) InvalidateAll(ctx context.Context) int {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := cc.client.Scan(ctx, cursor, contentKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("seo content cache scan error", "error", err)
			return deleted
		}
		if len(keys) > 0 {
			if err := cc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("seo content cache bulk delete error", "error", err)
			} else {
				deleted += len(keys)
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("seo content cache cleared", "deleted", deleted)
	}
	return deleted
}
