// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// cache_log.go records SEO cache invalidations in the database for audit
// and debugging. Each entry captures the scope, the number of entries
// dropped and the reason.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// CacheLogStore handles cache invalidation log operations.
type CacheLogStore struct {
	db *sql.DB
}

// NewCacheLogStore creates a new CacheLogStore.
func NewCacheLogStore(db *sql.DB) *CacheLogStore {
	return &CacheLogStore{db: db}
}

// Log records a cache invalidation event. Failures are logged, not returned.
func (s *CacheLogStore) Log(ctx context.Context, scope string, entries int, reason string) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO seo_cache_log (scope, entries, reason)
		VALUES ($1, $2, $3)
	`, scope, entries, reason)
	if err != nil {
		slog.Warn("failed to log cache invalidation",
			"scope", scope,
			"entries", entries,
			"reason", reason,
			"error", err,
		)
		return
	}
	slog.Debug("cache invalidation logged", "scope", scope, "entries", entries, "reason", reason)
}

// RecentEntries returns the most recent invalidation events, newest first.
func (s *CacheLogStore) RecentEntries(ctx context.Context, limit int) ([]CacheLogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, scope, entries, reason, invalidated_at
		FROM seo_cache_log
		ORDER BY invalidated_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query cache log: %w", err)
	}
	defer rows.Close()

	var entries []CacheLogEntry
	for rows.Next() {
		var e CacheLogEntry
		if err := rows.Scan(&e.ID, &e.Scope, &e.Entries, &e.Reason, &e.InvalidatedAt); err != nil {
			return nil, fmt.Errorf("scan cache log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CacheLogEntry represents a single cache invalidation event.
type CacheLogEntry struct {
	ID            int64     `json:"id"`
	Scope         string    `json:"scope"`
	Entries       int       `json:"entries"`
	Reason        string    `json:"reason"`
	InvalidatedAt time.Time `json:"invalidated_at"`
}
