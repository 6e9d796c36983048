// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engine

import (
	"strconv"
	"strings"

	"catalogseo/internal/models"
)

// Enrichment keys understood by mergeEnrichment.
const (
	keyMakeAlias     = "make_alias"
	keyModelAlias    = "model_alias"
	keyTypeAlias     = "type_alias"
	keyMakeMeta      = "make_meta"
	keyModelMeta     = "model_meta"
	keyTypeMeta      = "type_meta"
	keyBody          = "body"
	keyFuel          = "fuel"
	keyEngineCode    = "engine_code"
	keyYear          = "year"
	keyPower         = "power"
	keyRangeAlias    = "range_alias"
	keyRangeMeta     = "range_meta"
	keyFamilyID      = "family_id"
	keyArticlesCount = "articles_count"
	keyLevel         = "level"
)

// mergeEnrichment fills empty variable fields from the vehicle and range
// enrichment maps. Values supplied by the caller always win, and malformed
// or invalid numbers in enrichment data are ignored.
func mergeEnrichment(v models.SeoVariables, vehicle, rng map[string]string) models.SeoVariables {
	fillString(&v.MakeAlias, vehicle[keyMakeAlias])
	fillString(&v.ModelAlias, vehicle[keyModelAlias])
	fillString(&v.TypeAlias, vehicle[keyTypeAlias])
	fillString(&v.MakeMeta, vehicle[keyMakeMeta])
	fillString(&v.ModelMeta, vehicle[keyModelMeta])
	fillString(&v.TypeMeta, vehicle[keyTypeMeta])
	fillString(&v.BodyStyle, vehicle[keyBody])
	fillString(&v.FuelType, vehicle[keyFuel])
	fillString(&v.EngineCode, vehicle[keyEngineCode])
	fillInt(&v.Year, vehicle[keyYear], 0)
	fillInt(&v.Power, vehicle[keyPower], 1)

	fillString(&v.RangeAlias, rng[keyRangeAlias])
	fillString(&v.RangeMeta, rng[keyRangeMeta])
	fillInt(&v.FamilyID, rng[keyFamilyID], 0)
	fillInt(&v.ArticlesCount, rng[keyArticlesCount], 0)
	if v.Level == 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(rng[keyLevel])); err == nil && n >= 1 && n <= 3 {
			v.Level = n
		}
	}
	return v
}

func fillString(dst *string, value string) {
	if strings.TrimSpace(*dst) == "" {
		*dst = strings.TrimSpace(value)
	}
}

// fillInt sets dst from value when dst is absent and value parses to an
// integer >= min.
func fillInt(dst **int, value string, min int) {
	if *dst != nil || value == "" {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < min {
		return
	}
	*dst = &n
}
