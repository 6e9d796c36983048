// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engine

import (
	"fmt"
	"strconv"
	"strings"

	"catalogseo/internal/models"
)

// variable binds a fixed marker to the value it is replaced with.
// emphasize marks values wrapped in <strong> by the formatted variant.
type variable struct {
	marker    string
	value     func(req Request) string
	emphasize bool
}

// pricePhrases are the interchangeable wordings behind #PrixPasCher#.
var pricePhrases = []string{
	"at the best price",
	"at a low price",
	"at an unbeatable price",
	"at a discount price",
	"for less",
}

// variables is the ordered list of known variable markers.
var variables = []variable{
	{marker: "#Gamme#", value: func(r Request) string { return r.Variables.RangeName }, emphasize: true},
	{marker: "#GammeMeta#", value: func(r Request) string { return firstNonEmpty(r.Variables.RangeMeta, r.Variables.RangeName) }},
	{marker: "#VMarque#", value: func(r Request) string { return r.Variables.MakeName }, emphasize: true},
	{marker: "#MarqueMeta#", value: func(r Request) string { return firstNonEmpty(r.Variables.MakeMeta, r.Variables.MakeName) }},
	{marker: "#MarqueMetaTitle#", value: func(r Request) string {
		return firstNonEmpty(r.Variables.MakeMetaTitle, r.Variables.MakeMeta, r.Variables.MakeName)
	}},
	{marker: "#VModele#", value: func(r Request) string { return r.Variables.ModelName }, emphasize: true},
	{marker: "#ModeleMeta#", value: func(r Request) string { return firstNonEmpty(r.Variables.ModelMeta, r.Variables.ModelName) }},
	{marker: "#VType#", value: func(r Request) string { return r.Variables.TypeName }, emphasize: true},
	{marker: "#TypeMeta#", value: func(r Request) string { return firstNonEmpty(r.Variables.TypeMeta, r.Variables.TypeName) }},
	{marker: "#VAnnee#", value: func(r Request) string { return optionalInt(r.Variables.Year) }},
	{marker: "#VNbCh#", value: func(r Request) string { return optionalInt(r.Variables.Power) }},
	{marker: "#VCarosserie#", value: func(r Request) string { return r.Variables.BodyStyle }},
	{marker: "#VCarburant#", value: func(r Request) string { return r.Variables.FuelType }},
	{marker: "#VCodeMoteur#", value: func(r Request) string { return r.Variables.EngineCode }},
	{marker: "#MinPrice#", value: func(r Request) string { return formatPrice(r.Variables.MinPrice) }},
	{marker: "#NbArticles#", value: func(r Request) string { return optionalInt(r.Variables.ArticlesCount) }},
	{marker: "#PrixPasCher#", value: func(r Request) string { return pricePhrase(r.VehicleTypeID, r.RangeID) }},
}

// SubstituteVariables replaces every known variable marker in text with
// its value. It returns the new text and the markers that were found.
// Unknown or unmatched markers are left as they are.
func SubstituteVariables(text string, req Request) (string, []string) {
	return substitute(text, req, false)
}

// SubstituteVariablesFormatted is SubstituteVariables with range, make,
// model and type values wrapped in <strong>. Only used for body text.
func SubstituteVariablesFormatted(text string, req Request) (string, []string) {
	return substitute(text, req, true)
}

func substitute(text string, req Request, formatted bool) (string, []string) {
	if !strings.Contains(text, "#") {
		return text, nil
	}
	var found []string
	for _, v := range variables {
		if !strings.Contains(text, v.marker) {
			continue
		}
		value := v.value(req)
		if formatted && v.emphasize && value != "" {
			value = "<strong>" + value + "</strong>"
		}
		text = strings.ReplaceAll(text, v.marker, value)
		found = append(found, v.marker)
	}
	return text, found
}

// pricePhrase picks a price wording with (typeID + rangeID) mod N.
func pricePhrase(typeID, rangeID int) string {
	return pricePhrases[pickIndex(typeID, rangeID, len(pricePhrases))]
}

// pickIndex is the deterministic variant selector shared by switches and
// price phrases. Negative inputs are folded so the index is always valid.
func pickIndex(typeID, otherID, n int) int {
	if n <= 0 {
		return 0
	}
	idx := (typeID + otherID) % n
	if idx < 0 {
		idx += n
	}
	return idx
}

func formatPrice(p *float64) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%.2f €", *p)
}

func optionalInt(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// joinNonEmpty joins the non-blank values with sep.
func joinNonEmpty(sep string, values ...string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}

// vehicleLabel is the "Make Model Type" label used by links and fallbacks.
func vehicleLabel(v models.SeoVariables) string {
	return joinNonEmpty(" ", v.MakeName, v.ModelName, v.TypeName)
}
