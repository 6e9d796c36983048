// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"testing"
)

func TestCacheLogStore(t *testing.T) {
	db := testDB(t)
	s := NewCacheLogStore(db)
	ctx := context.Background()

	const reason = "store-test-invalidation"
	t.Cleanup(func() {
		db.Exec("DELETE FROM seo_cache_log WHERE reason = $1", reason)
	})

	s.Log(ctx, "seo_content", 12, reason)
	s.Log(ctx, "seo_content", 3, reason)

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM seo_cache_log WHERE reason = $1", reason).Scan(&count); err != nil {
		t.Fatalf("query: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 log entries, got %d", count)
	}

	entries, err := s.RecentEntries(ctx, 10)
	if err != nil {
		t.Fatalf("RecentEntries: %v", err)
	}
	if len(entries) < 2 {
		t.Fatalf("expected at least 2 entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].InvalidatedAt.After(entries[i-1].InvalidatedAt) {
			t.Error("entries are not ordered newest first")
		}
	}
}

func TestCacheLogStore_LogIsBestEffort(t *testing.T) {
	db := testDB(t)
	s := NewCacheLogStore(db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// Must not panic or block on a cancelled context.
	s.Log(ctx, "seo_content", 1, "cancelled")
}
