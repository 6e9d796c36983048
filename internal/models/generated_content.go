// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// FallbackLevel records which tier of the generation ladder produced a
// result.
type FallbackLevel int

const (
	LevelTemplate  FallbackLevel = 0 // full template pipeline
	LevelDefault   FallbackLevel = 1 // template missing
	LevelFallback  FallbackLevel = 2 // unexpected error during generation
	LevelEmergency FallbackLevel = 3 // variables failed validation
)

// Variant names reported in Metadata.Variant.
const (
	VariantTemplate  = "template"
	VariantDefault   = "default"
	VariantFallback  = "fallback"
	VariantEmergency = "emergency"
)

// Variant returns the metadata variant name for the level.
func (l FallbackLevel) Variant() string {
	switch l {
	case LevelDefault:
		return VariantDefault
	case LevelFallback:
		return VariantFallback
	case LevelEmergency:
		return VariantEmergency
	default:
		return VariantTemplate
	}
}

// GeneratedContent is the engine output for one (range, vehicle) page.
// It is built once per generation and never mutated after being returned.
type GeneratedContent struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	H1          string   `json:"h1"`
	Preview     string   `json:"preview"`
	Content     string   `json:"content"`
	Keywords    string   `json:"keywords"`
	Metadata    Metadata `json:"metadata"`
}

// Metadata describes how a GeneratedContent value was produced.
type Metadata struct {
	GenerationID      uuid.UUID     `json:"generation_id"`
	Variant           string        `json:"variant"`
	Level             FallbackLevel `json:"level"`
	ProcessingTime    time.Duration `json:"processing_time"`
	CacheHit          bool          `json:"cache_hit"`
	SwitchesProcessed int           `json:"switches_processed"`
	VariablesReplaced int           `json:"variables_replaced"`
	LinksGenerated    int           `json:"links_generated"`
	TTLTier           string        `json:"ttl_tier,omitempty"`
	Version           string        `json:"version"`
	GeneratedAt       time.Time     `json:"generated_at"`
	Error             string        `json:"error,omitempty"`
}
