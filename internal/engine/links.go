// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"catalogseo/internal/models"
)

// Link markers.
const (
	linkCarAllMarker = "#LinkCarAll#"
	linkCarMarker    = "#LinkCar#"
)

var (
	// linkRangeRe matches #LinkGamme_<rangeId>#.
	linkRangeRe = regexp.MustCompile(`#LinkGamme_(\d+)#`)
	// linkRangeCarRe matches #LinkGammeCar_<rangeId>#.
	linkRangeCarRe = regexp.MustCompile(`#LinkGammeCar_(\d+)#`)
)

// existenceFunc answers whether at least one product exists for a range
// and the page's vehicle type.
type existenceFunc func(ctx context.Context, rangeID int) (bool, error)

// linker resolves link markers in body text. The existence check is its
// only I/O and runs once per distinct range, concurrently.
type linker struct {
	req     Request
	ranges  map[int]models.ActiveRange
	exists  existenceFunc
	section string
}

func newLinker(req Request, directory []models.ActiveRange, exists existenceFunc, section string) *linker {
	ranges := make(map[int]models.ActiveRange, len(directory))
	for _, r := range directory {
		ranges[r.RangeID] = r
	}
	// The page's own range stays linkable without the directory when its
	// alias is known and its level is one the directory lists.
	v := req.Variables
	if _, ok := ranges[req.RangeID]; !ok && v.RangeAlias != "" && v.EffectiveLevel() <= 2 {
		ranges[req.RangeID] = models.ActiveRange{RangeID: req.RangeID, Alias: v.RangeAlias, Name: v.RangeName}
	}
	return &linker{req: req, ranges: ranges, exists: exists, section: section}
}

// apply replaces every link marker in text.
func (l *linker) apply(ctx context.Context, text string) string {
	if !strings.Contains(text, "#Link") {
		return text
	}
	v := l.req.Variables

	text = strings.ReplaceAll(text, linkCarAllMarker, vehicleSummary(v))
	text = strings.ReplaceAll(text, linkCarMarker, vehicleLabel(v))

	text = linkRangeRe.ReplaceAllStringFunc(text, func(marker string) string {
		r, ok := l.lookup(linkRangeRe, marker)
		if !ok {
			return marker
		}
		return fmt.Sprintf(`<a href="/%s/%s-%d.html">%s</a>`, l.section, r.Alias, r.RangeID, r.Name)
	})

	if !linkRangeCarRe.MatchString(text) {
		return text
	}
	verified := l.verify(ctx, text)
	return linkRangeCarRe.ReplaceAllStringFunc(text, func(marker string) string {
		r, ok := l.lookup(linkRangeCarRe, marker)
		if !ok {
			return marker
		}
		label := joinNonEmpty(" ", r.Name, vehicleLabel(v))
		if verified[r.RangeID] {
			return fmt.Sprintf(`<a href="%s">%s</a>`, l.deepLink(r), label)
		}
		return "<strong>" + label + "</strong>"
	})
}

// verify runs the existence check for every distinct directory range
// referenced by a #LinkGammeCar_<id># marker. Checks are skipped entirely
// when the vehicle aliases needed for a deep link are missing. A failed
// check counts as "no products".
func (l *linker) verify(ctx context.Context, text string) map[int]bool {
	result := make(map[int]bool)
	if !l.canDeepLink() || l.exists == nil {
		return result
	}

	seen := make(map[int]bool)
	var candidates []int
	for _, m := range linkRangeCarRe.FindAllStringSubmatch(text, -1) {
		id, err := strconv.Atoi(m[1])
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := l.ranges[id]; ok {
			candidates = append(candidates, id)
		}
	}

	var mu sync.Mutex
	var g errgroup.Group
	for _, id := range candidates {
		g.Go(func() error {
			ok, err := l.check(ctx, id)
			if err != nil {
				slog.Warn("seo existence check failed", "range_id", id, "type_id", l.req.VehicleTypeID, "error", err)
				ok = false
			}
			mu.Lock()
			result[id] = ok
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return result
}

// check runs one existence query, turning a panic into an error.
func (l *linker) check(ctx context.Context, rangeID int) (ok bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			ok, err = false, fmt.Errorf("existence check panicked: %v", rec)
		}
	}()
	return l.exists(ctx, rangeID)
}

// canDeepLink reports whether make, model and type aliases and ids are known.
func (l *linker) canDeepLink() bool {
	v := l.req.Variables
	return v.MakeAlias != "" && v.ModelAlias != "" && v.TypeAlias != "" &&
		l.makeID() > 0 && l.modelID() > 0 && l.req.VehicleTypeID > 0
}

// makeID returns the request's make id, or the one carried in the
// variables when the request has none.
func (l *linker) makeID() int {
	return idOr(l.req.MakeID, l.req.Variables.MakeID)
}

func (l *linker) modelID() int {
	return idOr(l.req.ModelID, l.req.Variables.ModelID)
}

func idOr(id int, fallback *int) int {
	if id > 0 || fallback == nil {
		return id
	}
	return *fallback
}

func (l *linker) deepLink(r models.ActiveRange) string {
	v := l.req.Variables
	return fmt.Sprintf("/%s/%s-%d/%s-%d/%s-%d/%s-%d.html",
		l.section, r.Alias, r.RangeID,
		v.MakeAlias, l.makeID(),
		v.ModelAlias, l.modelID(),
		v.TypeAlias, l.req.VehicleTypeID,
	)
}

func (l *linker) lookup(re *regexp.Regexp, marker string) (models.ActiveRange, bool) {
	m := re.FindStringSubmatch(marker)
	if m == nil {
		return models.ActiveRange{}, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return models.ActiveRange{}, false
	}
	r, ok := l.ranges[id]
	return r, ok
}

// vehicleSummary renders "Make Model Type Body 90 ch 2012 (K9K)", leaving
// out parts that are unknown.
func vehicleSummary(v models.SeoVariables) string {
	power := ""
	if v.Power != nil {
		power = strconv.Itoa(*v.Power) + " ch"
	}
	engine := ""
	if v.EngineCode != "" {
		engine = "(" + v.EngineCode + ")"
	}
	return joinNonEmpty(" ", v.MakeName, v.ModelName, v.TypeName, v.BodyStyle, power, optionalInt(v.Year), engine)
}

// countLinks approximates the number of generated links by counting
// anchor tags.
func countLinks(html string) int {
	return strings.Count(html, "<a ")
}
