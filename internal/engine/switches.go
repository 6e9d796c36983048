// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"catalogseo/internal/models"
)

// simpleSwitchMarker selects alias 1 of the page's own range.
const simpleSwitchMarker = "#CompSwitch#"

// scopedSwitchRe matches #CompSwitch_<alias>_<rangeId>#.
var scopedSwitchRe = regexp.MustCompile(`#CompSwitch_(\d+)_(\d+)#`)

// switchResolver replaces switch markers for one page. Each SwitchKind
// has its own pass; passes run in the order of the kinds slice given to
// resolve. Markers without a matching candidate are left in place.
type switchResolver struct {
	req      Request
	catalog  models.SwitchCatalog
	makeLink string // rendered replacement for #VMarque# in family fragments
}

func newSwitchResolver(req Request, catalog models.SwitchCatalog, makeSection string) *switchResolver {
	return &switchResolver{
		req:      req,
		catalog:  catalog,
		makeLink: makeReference(req, makeSection),
	}
}

// headerSwitches are the kinds applied to title, description, H1 and preview.
var headerSwitches = []models.SwitchKind{models.SwitchSimple, models.SwitchRange}

// bodySwitches are the kinds applied to the body, in resolution order.
var bodySwitches = []models.SwitchKind{models.SwitchSimple, models.SwitchRange, models.SwitchExternal, models.SwitchFamily}

// resolve runs the passes for kinds and returns the text and the number
// of markers replaced.
func (r *switchResolver) resolve(text string, kinds []models.SwitchKind) (string, int) {
	if !strings.Contains(text, "#CompSwitch") {
		return text, 0
	}
	var total, n int
	for _, kind := range kinds {
		switch kind {
		case models.SwitchSimple:
			text, n = r.resolveSimple(text)
		case models.SwitchRange:
			text, n = r.resolveScoped(text)
		case models.SwitchExternal:
			text, n = r.resolveExternal(text)
		case models.SwitchFamily:
			text, n = r.resolveFamily(text)
		default:
			n = 0
		}
		total += n
	}
	return text, total
}

// resolveSimple replaces #CompSwitch# with an alias-1 fragment of the
// current range.
func (r *switchResolver) resolveSimple(text string) (string, int) {
	if !strings.Contains(text, simpleSwitchMarker) {
		return text, 0
	}
	frag, ok := r.pick(filterSwitches(r.catalog.Simple, 1, r.req.RangeID), r.req.RangeID)
	if !ok {
		return text, 0
	}
	count := strings.Count(text, simpleSwitchMarker)
	return strings.ReplaceAll(text, simpleSwitchMarker, r.fragment(frag)), count
}

// resolveScoped replaces #CompSwitch_<1..3>_<rangeId># markers from the
// simple catalog. Markers for other ranges are left for the external pass
// and family aliases for the family pass.
func (r *switchResolver) resolveScoped(text string) (string, int) {
	count := 0
	out := scopedSwitchRe.ReplaceAllStringFunc(text, func(marker string) string {
		alias, scope, ok := parseScopedMarker(marker)
		if !ok || !models.AliasInDomain(models.SwitchRange, alias) {
			return marker
		}
		frag, ok := r.pick(filterSwitches(r.catalog.Simple, alias, scope), scope)
		if !ok {
			return marker
		}
		count++
		return r.fragment(frag)
	})
	return out, count
}

// resolveExternal walks the active range directory. For each range it
// checks whether its markers occur in the text before looking up a
// fragment, so ranges absent from the text cost nothing.
func (r *switchResolver) resolveExternal(text string) (string, int) {
	count := 0
	for _, ar := range r.catalog.Ranges {
		bare := fmt.Sprintf("#CompSwitch_%d#", ar.RangeID)
		if strings.Contains(text, bare) {
			if frag, ok := r.pick(bestExternal(r.catalog.External, ar.RangeID), ar.RangeID); ok {
				count += strings.Count(text, bare)
				text = strings.ReplaceAll(text, bare, r.fragment(frag))
			}
		}
		for alias := models.RangeAliasMin; alias <= models.RangeAliasMax; alias++ {
			marker := fmt.Sprintf("#CompSwitch_%d_%d#", alias, ar.RangeID)
			if !strings.Contains(text, marker) {
				continue
			}
			frag, ok := r.pick(filterSwitches(r.catalog.External, alias, ar.RangeID), ar.RangeID)
			if !ok {
				continue
			}
			count += strings.Count(text, marker)
			text = strings.ReplaceAll(text, marker, r.fragment(frag))
		}
	}
	return text, count
}

// resolveFamily replaces #CompSwitch_<11..16>_<currentRange># markers with
// family fragments scoped to the whole family (scope 0) or to this range.
func (r *switchResolver) resolveFamily(text string) (string, int) {
	count := 0
	for alias := models.FamilyAliasMin; alias <= models.FamilyAliasMax; alias++ {
		marker := fmt.Sprintf("#CompSwitch_%d_%d#", alias, r.req.RangeID)
		if !strings.Contains(text, marker) {
			continue
		}
		var candidates []models.SwitchEntry
		for _, s := range r.catalog.Family {
			if s.AliasID == alias && (s.ScopeID == 0 || s.ScopeID == r.req.RangeID) {
				candidates = append(candidates, s)
			}
		}
		frag, ok := r.pick(candidates, r.req.RangeID)
		if !ok {
			continue
		}
		frag = strings.ReplaceAll(frag, "#VMarque#", r.makeLink)
		count += strings.Count(text, marker)
		text = strings.ReplaceAll(text, marker, r.fragment(frag))
	}
	return text, count
}

// pick selects one candidate deterministically with
// (vehicleTypeId + otherID) mod len(candidates).
func (r *switchResolver) pick(candidates []models.SwitchEntry, otherID int) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	return candidates[pickIndex(r.req.VehicleTypeID, otherID, len(candidates))].Content, true
}

// fragment substitutes variables inside an inserted switch fragment.
func (r *switchResolver) fragment(content string) string {
	out, _ := SubstituteVariables(content, r.req)
	return out
}

// filterSwitches returns the entries with the given alias and scope,
// preserving catalog order.
func filterSwitches(entries []models.SwitchEntry, alias, scope int) []models.SwitchEntry {
	var out []models.SwitchEntry
	for _, s := range entries {
		if s.AliasID == alias && s.ScopeID == scope {
			out = append(out, s)
		}
	}
	return out
}

// bestExternal returns the candidates sharing the lowest alias present for
// a range, which is what a bare #CompSwitch_<rangeId># resolves to.
func bestExternal(entries []models.SwitchEntry, rangeID int) []models.SwitchEntry {
	best := -1
	for _, s := range entries {
		if s.ScopeID == rangeID && (best == -1 || s.AliasID < best) {
			best = s.AliasID
		}
	}
	if best == -1 {
		return nil
	}
	return filterSwitches(entries, best, rangeID)
}

func parseScopedMarker(marker string) (alias, scope int, ok bool) {
	m := scopedSwitchRe.FindStringSubmatch(marker)
	if m == nil {
		return 0, 0, false
	}
	alias, err1 := strconv.Atoi(m[1])
	scope, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return alias, scope, true
}

// makeReference renders the make name as a link to its make page when the
// alias and id are known, and as emphasized text otherwise.
func makeReference(req Request, makeSection string) string {
	name := req.Variables.MakeName
	if req.Variables.MakeAlias != "" && req.MakeID > 0 {
		return fmt.Sprintf(`<a href="/%s/%s-%d.html">%s</a>`, makeSection, req.Variables.MakeAlias, req.MakeID, name)
	}
	return "<strong>" + name + "</strong>"
}
