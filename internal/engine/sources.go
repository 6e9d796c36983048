// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engine

import (
	"context"
	"time"

	"catalogseo/internal/models"
)

// TemplateSource loads the per-range SEO template. A nil template with a
// nil error means the range has no template.
type TemplateSource interface {
	GetTemplate(ctx context.Context, rangeID int) (*models.SeoTemplate, error)
}

// SwitchSource loads the switch catalogs.
type SwitchSource interface {
	GetSimpleSwitches(ctx context.Context, rangeID, typeID int) ([]models.SwitchEntry, error)
	GetExternalSwitches(ctx context.Context, typeID int) ([]models.SwitchEntry, error)
	GetFamilySwitches(ctx context.Context, familyID, rangeID int) ([]models.SwitchEntry, error)
}

// RangeSource answers range directory, existence and enrichment queries.
type RangeSource interface {
	GetActiveRanges(ctx context.Context) ([]models.ActiveRange, error)
	CheckExistence(ctx context.Context, rangeID, typeID int) (bool, error)
	GetRangeEnrichment(ctx context.Context, rangeID int) (map[string]string, error)
}

// VehicleSource loads vehicle enrichment data.
type VehicleSource interface {
	GetVehicleEnrichment(ctx context.Context, makeID, modelID, typeID int) (map[string]string, error)
}

// Sources groups the collaborators the engine reads from.
type Sources struct {
	Templates TemplateSource
	Switches  SwitchSource
	Ranges    RangeSource
	Vehicles  VehicleSource
}

// SharedCache is an optional second cache level shared between processes.
type SharedCache interface {
	Get(ctx context.Context, key string) (models.GeneratedContent, bool)
	Set(ctx context.Context, key string, content models.GeneratedContent, ttl time.Duration)
	InvalidateAll(ctx context.Context) int
}

// InvalidationLogger records cache invalidation events.
type InvalidationLogger interface {
	Log(ctx context.Context, scope string, entries int, reason string)
}
