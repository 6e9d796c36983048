// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"testing"
)

func TestSeedIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := Connect(ctx, testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if _, err := Migrate(ctx, db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Seed only writes into an empty catalog, so calling it twice must be
	// safe even when other packages share the database.
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	var rangeCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM catalog_ranges").Scan(&rangeCount); err != nil {
		t.Fatalf("count ranges: %v", err)
	}
	if rangeCount < 1 {
		t.Errorf("expected at least 1 range, got %d", rangeCount)
	}

	var tmplCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM seo_templates").Scan(&tmplCount); err != nil {
		t.Fatalf("count templates: %v", err)
	}
	if tmplCount < 1 {
		t.Errorf("expected at least 1 template, got %d", tmplCount)
	}
}
