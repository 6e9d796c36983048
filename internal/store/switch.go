// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"catalogseo/internal/models"
)

// SwitchStore loads switch fragments. Rows are returned in a stable
// order (alias, sort_order, id) since fragment selection is positional.
type SwitchStore struct {
	db *sql.DB
}

// NewSwitchStore creates a new SwitchStore.
func NewSwitchStore(db *sql.DB) *SwitchStore {
	return &SwitchStore{db: db}
}

// GetSimpleSwitches returns the simple switches of a range that apply to
// the vehicle type.
func (s *SwitchStore) GetSimpleSwitches(ctx context.Context, rangeID, typeID int) ([]models.SwitchEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT alias_id, range_id, content
		FROM seo_range_switches
		WHERE kind = 'simple' AND range_id = $1 AND (type_id IS NULL OR type_id = $2)
		ORDER BY alias_id, sort_order, id
	`, rangeID, typeID)
	if err != nil {
		return nil, fmt.Errorf("query simple switches: %w", err)
	}
	return scanSwitches(rows, models.SwitchSimple)
}

// GetExternalSwitches returns the external switches of every range that
// apply to the vehicle type.
func (s *SwitchStore) GetExternalSwitches(ctx context.Context, typeID int) ([]models.SwitchEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT alias_id, range_id, content
		FROM seo_range_switches
		WHERE kind = 'external' AND (type_id IS NULL OR type_id = $1)
		ORDER BY range_id, alias_id, sort_order, id
	`, typeID)
	if err != nil {
		return nil, fmt.Errorf("query external switches: %w", err)
	}
	return scanSwitches(rows, models.SwitchExternal)
}

// GetFamilySwitches returns the family switches that apply to the whole
// family (range 0) or to rangeID.
func (s *SwitchStore) GetFamilySwitches(ctx context.Context, familyID, rangeID int) ([]models.SwitchEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT alias_id, range_id, content
		FROM seo_family_switches
		WHERE family_id = $1 AND range_id IN (0, $2)
		ORDER BY alias_id, sort_order, id
	`, familyID, rangeID)
	if err != nil {
		return nil, fmt.Errorf("query family switches: %w", err)
	}
	entries, err := scanSwitches(rows, models.SwitchFamily)
	for i := range entries {
		entries[i].FamilyID = familyID
	}
	return entries, err
}

// scanSwitches reads (alias_id, range_id, content) rows and closes rows.
func scanSwitches(rows *sql.Rows, kind models.SwitchKind) ([]models.SwitchEntry, error) {
	defer rows.Close()

	var entries []models.SwitchEntry
	for rows.Next() {
		e := models.SwitchEntry{Kind: kind}
		if err := rows.Scan(&e.AliasID, &e.ScopeID, &e.Content); err != nil {
			return nil, fmt.Errorf("scan %s switch: %w", kind, err)
		}
		if !models.AliasInDomain(kind, e.AliasID) {
			continue
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
