// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engine

import (
	"strings"

	"catalogseo/internal/models"
)

// marketingKeywords are appended to every template-generated keyword list.
var marketingKeywords = []string{"spare parts", "car parts", "auto parts online"}

// BuildKeywords returns the keyword string for a template-generated page:
// range, make, model, type, body style and fuel followed by the fixed
// marketing terms.
func BuildKeywords(v models.SeoVariables) string {
	terms := []string{v.RangeName, v.MakeName, v.ModelName, v.TypeName, v.BodyStyle, v.FuelType}
	return joinKeywords(append(terms, marketingKeywords...)...)
}

// joinKeywords joins terms with ", ", dropping blanks and case-insensitive
// duplicates while keeping first-seen order.
func joinKeywords(terms ...string) string {
	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return strings.Join(out, ", ")
}
