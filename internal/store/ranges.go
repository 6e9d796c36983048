// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"catalogseo/internal/models"
	"catalogseo/internal/slug"
)

// maxLinkableLevel is the deepest range level that appears in the
// internal link directory.
const maxLinkableLevel = 2

// RangeStore answers range directory, product existence and range
// enrichment queries.
type RangeStore struct {
	db *sql.DB
}

// NewRangeStore creates a new RangeStore.
func NewRangeStore(db *sql.DB) *RangeStore {
	return &RangeStore{db: db}
}

// GetActiveRanges returns the displayable ranges of level 1 or 2. Ranges
// stored without an alias get one generated from their name.
func (s *RangeStore) GetActiveRanges(ctx context.Context) ([]models.ActiveRange, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT range_id, alias, name
		FROM catalog_ranges
		WHERE displayable AND level <= $1
		ORDER BY sort_order, range_id
	`, maxLinkableLevel)
	if err != nil {
		return nil, fmt.Errorf("list active ranges: %w", err)
	}
	defer rows.Close()

	var items []models.ActiveRange
	for rows.Next() {
		var r models.ActiveRange
		if err := rows.Scan(&r.RangeID, &r.Alias, &r.Name); err != nil {
			return nil, fmt.Errorf("scan active range: %w", err)
		}
		if r.Alias == "" {
			r.Alias = slug.Generate(r.Name)
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

// CheckExistence reports whether at least one product of the range fits
// the vehicle type.
func (s *RangeStore) CheckExistence(ctx context.Context, rangeID, typeID int) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM catalog_range_vehicles
			WHERE range_id = $1 AND type_id = $2 AND articles_count > 0
		)
	`, rangeID, typeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check range %d existence for type %d: %w", rangeID, typeID, err)
	}
	return exists, nil
}

// GetRangeEnrichment returns the stored facts of a range keyed by
// enrichment name. Returns nil, nil for an unknown range.
func (s *RangeStore) GetRangeEnrichment(ctx context.Context, rangeID int) (map[string]string, error) {
	var (
		name, alias, meta string
		level, articles   int
		familyID          sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT name, alias, meta, level, family_id, articles_count
		FROM catalog_ranges WHERE range_id = $1
	`, rangeID).Scan(&name, &alias, &meta, &level, &familyID, &articles)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get range %d enrichment: %w", rangeID, err)
	}

	if alias == "" {
		alias = slug.Generate(name)
	}
	out := map[string]string{
		"range_alias":    alias,
		"articles_count": strconv.Itoa(articles),
		"level":          strconv.Itoa(level),
	}
	if meta != "" {
		out["range_meta"] = meta
	}
	if familyID.Valid {
		out["family_id"] = strconv.FormatInt(familyID.Int64, 10)
	}
	return out, nil
}
