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

	"catalogseo/internal/slug"
)

// VehicleStore loads vehicle enrichment from the make, model and type
// tables.
type VehicleStore struct {
	db *sql.DB
}

// NewVehicleStore creates a new VehicleStore.
func NewVehicleStore(db *sql.DB) *VehicleStore {
	return &VehicleStore{db: db}
}

// GetVehicleEnrichment returns aliases, meta names and technical facts of
// a vehicle type, keyed by enrichment name. The make and model must match
// the type. Returns nil, nil when the vehicle is unknown.
func (s *VehicleStore) GetVehicleEnrichment(ctx context.Context, makeID, modelID, typeID int) (map[string]string, error) {
	var (
		makeName, makeAlias, makeMeta    string
		modelName, modelAlias, modelMeta string
		typeName, typeAlias, typeMeta    string
		body, fuel, engineCode           string
		year, power                      sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT mk.name, mk.alias, mk.meta,
		       md.name, md.alias, md.meta,
		       t.name, t.alias, t.meta,
		       t.body, t.fuel, t.engine_code, t.year_from, t.power_hp
		FROM vehicle_types t
		JOIN vehicle_models md ON md.model_id = t.model_id
		JOIN vehicle_makes mk ON mk.make_id = md.make_id
		WHERE t.type_id = $1 AND md.model_id = $2 AND mk.make_id = $3
	`, typeID, modelID, makeID).Scan(
		&makeName, &makeAlias, &makeMeta,
		&modelName, &modelAlias, &modelMeta,
		&typeName, &typeAlias, &typeMeta,
		&body, &fuel, &engineCode, &year, &power,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get vehicle enrichment %d/%d/%d: %w", makeID, modelID, typeID, err)
	}

	out := map[string]string{
		"make_alias":  aliasOr(makeAlias, makeName),
		"model_alias": aliasOr(modelAlias, modelName),
		"type_alias":  aliasOr(typeAlias, typeName),
	}
	for key, value := range map[string]string{
		"make_meta":   makeMeta,
		"model_meta":  modelMeta,
		"type_meta":   typeMeta,
		"body":        body,
		"fuel":        fuel,
		"engine_code": engineCode,
	} {
		if value != "" {
			out[key] = value
		}
	}
	if year.Valid {
		out["year"] = strconv.FormatInt(year.Int64, 10)
	}
	if power.Valid {
		out["power"] = strconv.FormatInt(power.Int64, 10)
	}
	return out, nil
}

func aliasOr(alias, name string) string {
	if alias != "" {
		return alias
	}
	return slug.Generate(name)
}
