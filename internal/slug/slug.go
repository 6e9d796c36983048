// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug builds the URL aliases used in catalog links
// ("Filtres à huile" → "filtres-a-huile", "1.5 dCi" → "1-5-dci").
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// separators are characters that split words in vehicle and range names.
	separators = regexp.MustCompile(`[\s./_+&,;:|()\[\]-]+`)
	// nonAlphanumeric matches anything left that isn't a letter, digit or hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// ligatures are expanded before accent folding since they do not
// decompose.
var ligatures = strings.NewReplacer("œ", "oe", "Œ", "oe", "æ", "ae", "Æ", "ae", "ß", "ss")

// Generate creates a URL alias from the given name. Accents are folded to
// their base letter and every run of separators becomes one hyphen.
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(ligatures.Replace(s)))
	result = fold(result)
	result = separators.ReplaceAllString(result, "-")
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// fold removes combining marks after canonical decomposition.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
