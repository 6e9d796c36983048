// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package engine generates SEO text (title, description, H1, preview and
// body) for catalog pages keyed by product range and vehicle. A stored
// per-range template is expanded with vehicle variables, switch fragments
// and verified internal links. Results are cached with an adaptive TTL,
// and the engine degrades to synthesized text whenever the template or
// the pipeline is unavailable, so callers always get renderable content.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"catalogseo/internal/cache"
	"catalogseo/internal/models"
)

// Version is reported in every result's metadata and in engine stats.
const Version = "1.3.0"

var tracer = otel.Tracer("catalogseo/internal/engine")

// Defaults for Options.
const (
	DefaultGenerationTimeout = 3 * time.Second
	DefaultFetchTimeout      = 1500 * time.Millisecond
	DefaultLinkSection       = "pieces"
	DefaultMakeSection       = "constructeurs"
)

// ErrInvalidVariables is matched (errors.Is) by every validation error
// returned from GenerateContent.
var ErrInvalidVariables = errors.New("invalid seo variables")

// ValidationError reports SeoVariables that failed validation. Err holds
// the per-field validation.Errors.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return ErrInvalidVariables.Error() + ": " + e.Err.Error()
}

// Unwrap exposes both the sentinel and the field errors.
func (e *ValidationError) Unwrap() []error {
	return []error{ErrInvalidVariables, e.Err}
}

// Request identifies one page and carries its variables.
type Request struct {
	RangeID       int                 `json:"rangeId"`
	VehicleTypeID int                 `json:"vehicleTypeId"`
	MakeID        int                 `json:"makeId"`
	ModelID       int                 `json:"modelId"`
	Variables     models.SeoVariables `json:"variables"`
}

// Options configures an Engine. Zero values fall back to the defaults.
type Options struct {
	Tiers             cache.Tiers
	GenerationTimeout time.Duration
	FetchTimeout      time.Duration
	LinkSection       string
	MakeSection       string
	SharedCache       SharedCache        // optional L2
	AuditLog          InvalidationLogger // optional
}

func (o Options) withDefaults() Options {
	if o.Tiers.Validate() != nil {
		o.Tiers = cache.DefaultTiers()
	}
	if o.GenerationTimeout <= 0 {
		o.GenerationTimeout = DefaultGenerationTimeout
	}
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = DefaultFetchTimeout
	}
	if o.LinkSection == "" {
		o.LinkSection = DefaultLinkSection
	}
	if o.MakeSection == "" {
		o.MakeSection = DefaultMakeSection
	}
	return o
}

// Stats is a snapshot of engine counters.
type Stats struct {
	CacheEntries         int    `json:"cache_entries"`
	RangeDirectoryCached bool   `json:"range_directory_cached"`
	Version              string `json:"version"`
	Hits                 int64  `json:"hits"`
	Misses               int64  `json:"misses"`
	Generated            int64  `json:"generated"`
	DefaultFallbacks     int64  `json:"default_fallbacks"`
	ErrorFallbacks       int64  `json:"error_fallbacks"`
	ValidationFailures   int64  `json:"validation_failures"`
}

// Engine is the generation facade. It is created once per process and
// shared by all request handlers; it is safe for concurrent use.
type Engine struct {
	src    Sources
	opts   Options
	cache  *resultCache
	audit  InvalidationLogger
	flight singleflight.Group

	hits               atomic.Int64
	misses             atomic.Int64
	generated          atomic.Int64
	defaultFallbacks   atomic.Int64
	errorFallbacks     atomic.Int64
	validationFailures atomic.Int64
}

// New creates an engine reading from src. Every source except Templates
// may be nil, in which case its data is treated as empty.
func New(src Sources, opts Options) *Engine {
	opts = opts.withDefaults()
	return &Engine{
		src:   src,
		opts:  opts,
		cache: newResultCache(opts.Tiers, opts.SharedCache),
		audit: opts.AuditLog,
	}
}

// GenerateContent returns the SEO content for one page. The error is
// non-nil only when the variables fail validation; the returned content
// is then the emergency synthesis, so it is always renderable. Every
// other failure is absorbed into a fallback result whose metadata names
// the level used.
func (e *Engine) GenerateContent(ctx context.Context, req Request) (models.GeneratedContent, error) {
	ctx, span := tracer.Start(ctx, "seo.GenerateContent", trace.WithAttributes(
		attribute.Int("seo.range_id", req.RangeID),
		attribute.Int("seo.vehicle_type_id", req.VehicleTypeID),
	))
	defer span.End()

	out, err := e.generateContent(ctx, req)
	span.SetAttributes(
		attribute.String("seo.variant", out.Metadata.Variant),
		attribute.Bool("seo.cache_hit", out.Metadata.CacheHit),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid variables")
	}
	return out, err
}

func (e *Engine) generateContent(ctx context.Context, req Request) (models.GeneratedContent, error) {
	start := time.Now()

	if err := req.Variables.Validate(); err != nil {
		e.validationFailures.Add(1)
		slog.Warn("seo variables rejected", "range_id", req.RangeID, "type_id", req.VehicleTypeID, "error", err)
		out := EmergencyContent(req.Variables)
		e.stamp(&out)
		out.Metadata.Error = err.Error()
		out.Metadata.ProcessingTime = time.Since(start)
		return out, &ValidationError{Err: err}
	}

	key := cache.ContentKey(req.RangeID, req.VehicleTypeID, req.MakeID, req.ModelID)
	if out, ok := e.cache.get(ctx, key); ok {
		e.hits.Add(1)
		out.Metadata.CacheHit = true
		out.Metadata.ProcessingTime = time.Since(start)
		return out, nil
	}

	out, hit := e.generateOnce(ctx, req, key)
	if hit {
		e.hits.Add(1)
		out.Metadata.CacheHit = true
	} else {
		e.misses.Add(1)
	}
	out.Metadata.ProcessingTime = time.Since(start)
	return out, nil
}

// flightResult is what one shared generation hands to its waiters.
type flightResult struct {
	content models.GeneratedContent
	hit     bool
}

// generateOnce lets concurrent misses for one key share a single
// generation. A result stored by a generation that finished after the
// caller's lookup is reported as a hit.
func (e *Engine) generateOnce(ctx context.Context, req Request, key string) (models.GeneratedContent, bool) {
	v, _, _ := e.flight.Do(key, func() (any, error) {
		if out, ok := e.cache.local.Get(key); ok {
			return flightResult{content: out, hit: true}, nil
		}
		return flightResult{content: e.generate(ctx, req, key)}, nil
	})
	res := v.(flightResult)
	return res.content, res.hit
}

// InvalidateCache clears every cached result and the range directory, in
// both cache levels. Returns the number of entries removed.
func (e *Engine) InvalidateCache(ctx context.Context) int {
	n := e.cache.clear(ctx)
	slog.Info("seo cache invalidated", "entries", n)
	if e.audit != nil {
		e.audit.Log(ctx, "seo_content", n, "invalidate_all")
	}
	return n
}

// GetEngineStats returns a snapshot of cache size and generation counters.
func (e *Engine) GetEngineStats() Stats {
	_, dirCached := e.cache.ranges()
	return Stats{
		CacheEntries:         e.cache.len(),
		RangeDirectoryCached: dirCached,
		Version:              Version,
		Hits:                 e.hits.Load(),
		Misses:               e.misses.Load(),
		Generated:            e.generated.Load(),
		DefaultFallbacks:     e.defaultFallbacks.Load(),
		ErrorFallbacks:       e.errorFallbacks.Load(),
		ValidationFailures:   e.validationFailures.Load(),
	}
}

// outcome is the result of one generation attempt: either template
// content (level 0) or the fallback level to synthesize.
type outcome struct {
	level   models.FallbackLevel
	content models.GeneratedContent
	vars    models.SeoVariables
	err     error
}

// generate runs one attempt under the overall timeout and turns its
// outcome into the final content. It detaches from the caller's
// cancellation because the result is shared with other waiters.
func (e *Engine) generate(parent context.Context, req Request, key string) models.GeneratedContent {
	base := context.WithoutCancel(parent)
	ctx, cancel := context.WithTimeout(base, e.opts.GenerationTimeout)
	defer cancel()

	done := make(chan outcome, 1)
	go func() { done <- e.attempt(ctx, req) }()

	var out outcome
	select {
	case out = <-done:
	case <-ctx.Done():
		out = outcome{level: models.LevelFallback, vars: req.Variables, err: fmt.Errorf("generation timed out: %w", ctx.Err())}
	}
	return e.settle(base, req, key, out)
}

// attempt fetches data and renders the template. Panics are recovered and
// reported as a level-2 outcome.
func (e *Engine) attempt(ctx context.Context, req Request) (out outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("seo generation panicked",
				"range_id", req.RangeID,
				"type_id", req.VehicleTypeID,
				"error", rec,
				"stack", string(debug.Stack()),
			)
			out = outcome{level: models.LevelFallback, vars: req.Variables, err: fmt.Errorf("generation panicked: %v", rec)}
		}
	}()

	data, err := e.fetch(ctx, req)
	if err != nil {
		return outcome{level: models.LevelFallback, vars: req.Variables, err: err}
	}

	req.Variables = mergeEnrichment(req.Variables, data.vehicle, data.rng)
	slog.Debug("seo data fetched", "range_id", req.RangeID, "template", data.template != nil,
		"switches", data.catalog.Size(), "ranges", len(data.catalog.Ranges))
	if data.template == nil {
		return outcome{level: models.LevelDefault, vars: req.Variables}
	}

	content, stats, err := e.renderSections(ctx, req, data.template, data.catalog)
	if err != nil {
		return outcome{level: models.LevelFallback, vars: req.Variables, err: err}
	}
	if err := ctx.Err(); err != nil {
		return outcome{level: models.LevelFallback, vars: req.Variables, err: err}
	}

	fillEmptySections(&content, req.Variables)
	content.Keywords = BuildKeywords(req.Variables)
	content.Metadata = models.Metadata{
		Level:             models.LevelTemplate,
		Variant:           models.VariantTemplate,
		SwitchesProcessed: stats.switches,
		VariablesReplaced: stats.variables,
		LinksGenerated:    stats.links,
	}
	return outcome{level: models.LevelTemplate, content: content, vars: req.Variables}
}

// settle converts an outcome into the returned content, caching template
// results with the adaptive TTL. Fallback results are never cached, so a
// newly added template or a recovered upstream is picked up immediately.
func (e *Engine) settle(ctx context.Context, req Request, key string, out outcome) models.GeneratedContent {
	switch out.level {
	case models.LevelTemplate:
		content := out.content
		e.stamp(&content)
		tier := cache.SelectTier(out.vars)
		content.Metadata.TTLTier = string(tier)

		wctx, cancel := context.WithTimeout(ctx, e.opts.FetchTimeout)
		e.cache.put(wctx, key, content, e.opts.Tiers.Duration(tier))
		cancel()

		e.generated.Add(1)
		slog.Debug("seo content generated", "key", key, "tier", tier,
			"switches", content.Metadata.SwitchesProcessed, "links", content.Metadata.LinksGenerated)
		return content

	case models.LevelDefault:
		e.defaultFallbacks.Add(1)
		content := DefaultContent(out.vars)
		e.stamp(&content)
		slog.Info("seo template missing, using default content", "range_id", req.RangeID, "key", key)
		return content

	default:
		e.errorFallbacks.Add(1)
		content := FallbackContent(req.Variables)
		e.stamp(&content)
		if out.err != nil {
			content.Metadata.Error = out.err.Error()
		}
		slog.Error("seo generation failed, using fallback content", "key", key, "error", out.err)
		return content
	}
}

// stamp fills the identity fields shared by every result.
func (e *Engine) stamp(c *models.GeneratedContent) {
	c.Metadata.GenerationID = uuid.New()
	c.Metadata.Version = Version
	c.Metadata.GeneratedAt = time.Now()
	if c.Metadata.Variant == "" {
		c.Metadata.Variant = c.Metadata.Level.Variant()
	}
}

// fillEmptySections replaces sections whose template field rendered empty
// with the default synthesis for that section.
func fillEmptySections(c *models.GeneratedContent, v models.SeoVariables) {
	if c.Title != "" && c.Description != "" && c.H1 != "" && c.Preview != "" && c.Content != "" {
		return
	}
	def := DefaultContent(v)
	if c.Title == "" {
		c.Title = def.Title
	}
	if c.Description == "" {
		c.Description = def.Description
	}
	if c.H1 == "" {
		c.H1 = def.H1
	}
	if c.Preview == "" {
		c.Preview = def.Preview
	}
	if c.Content == "" {
		c.Content = def.Content
	}
}

// fetched holds everything loaded for one generation.
type fetched struct {
	template *models.SeoTemplate
	catalog  models.SwitchCatalog
	vehicle  map[string]string
	rng      map[string]string
}

// fetch loads the template, switch catalogs, range directory and
// enrichment concurrently. Each fetch has its own timeout; everything but
// the template degrades to empty on failure. A template fetch error (as
// opposed to a missing template) is returned. When the caller gives no
// family, the family catalog is loaded after range enrichment names one.
func (e *Engine) fetch(ctx context.Context, req Request) (fetched, error) {
	ctx, span := tracer.Start(ctx, "seo.fetch")
	defer span.End()

	var f fetched
	var tmplErr error
	var g errgroup.Group

	g.Go(func() error {
		defer func() {
			if rec := recover(); rec != nil {
				tmplErr = fmt.Errorf("template fetch panicked: %v", rec)
			}
		}()
		fctx, cancel := context.WithTimeout(ctx, e.opts.FetchTimeout)
		defer cancel()
		f.template, tmplErr = e.src.Templates.GetTemplate(fctx, req.RangeID)
		return nil
	})

	if sw := e.src.Switches; sw != nil {
		g.Go(func() error {
			f.catalog.Simple = fetchOrEmpty(ctx, e.opts.FetchTimeout, "simple_switches", func(c context.Context) ([]models.SwitchEntry, error) {
				return sw.GetSimpleSwitches(c, req.RangeID, req.VehicleTypeID)
			})
			return nil
		})
		g.Go(func() error {
			f.catalog.External = fetchOrEmpty(ctx, e.opts.FetchTimeout, "external_switches", func(c context.Context) ([]models.SwitchEntry, error) {
				return sw.GetExternalSwitches(c, req.VehicleTypeID)
			})
			return nil
		})
		if fam := req.Variables.FamilyID; fam != nil {
			g.Go(func() error {
				f.catalog.Family = e.familySwitches(ctx, sw, *fam, req.RangeID)
				return nil
			})
		}
	}

	if rs := e.src.Ranges; rs != nil {
		g.Go(func() error {
			f.catalog.Ranges = e.activeRanges(ctx, rs)
			return nil
		})
		g.Go(func() error {
			f.rng = fetchOrEmpty(ctx, e.opts.FetchTimeout, "range_enrichment", func(c context.Context) (map[string]string, error) {
				return rs.GetRangeEnrichment(c, req.RangeID)
			})
			// Without a caller-supplied family the stored one decides
			// which family switches apply.
			sw := e.src.Switches
			if sw == nil || req.Variables.FamilyID != nil {
				return nil
			}
			if fam := mergeEnrichment(models.SeoVariables{}, nil, f.rng).FamilyID; fam != nil {
				f.catalog.Family = e.familySwitches(ctx, sw, *fam, req.RangeID)
			}
			return nil
		})
	}

	if vs := e.src.Vehicles; vs != nil {
		g.Go(func() error {
			f.vehicle = fetchOrEmpty(ctx, e.opts.FetchTimeout, "vehicle_enrichment", func(c context.Context) (map[string]string, error) {
				return vs.GetVehicleEnrichment(c, req.MakeID, req.ModelID, req.VehicleTypeID)
			})
			return nil
		})
	}

	_ = g.Wait()
	if tmplErr != nil {
		span.RecordError(tmplErr)
		span.SetStatus(codes.Error, "template fetch failed")
		return f, fmt.Errorf("fetch template for range %d: %w", req.RangeID, tmplErr)
	}
	return f, nil
}

// familySwitches loads the family catalog for familyID, degrading to empty.
func (e *Engine) familySwitches(ctx context.Context, sw SwitchSource, familyID, rangeID int) []models.SwitchEntry {
	return fetchOrEmpty(ctx, e.opts.FetchTimeout, "family_switches", func(c context.Context) ([]models.SwitchEntry, error) {
		return sw.GetFamilySwitches(c, familyID, rangeID)
	})
}

// activeRanges returns the range directory from cache, loading it with
// the long tier on a miss. A failed load is not cached.
func (e *Engine) activeRanges(ctx context.Context, rs RangeSource) []models.ActiveRange {
	if r, ok := e.cache.ranges(); ok {
		return r
	}
	var failed bool
	r := fetchOrEmpty(ctx, e.opts.FetchTimeout, "active_ranges", func(c context.Context) ([]models.ActiveRange, error) {
		list, err := rs.GetActiveRanges(c)
		failed = err != nil
		return list, err
	})
	if !failed {
		e.cache.putRanges(r)
	}
	return r
}

// fetchOrEmpty runs fn with its own timeout. Errors and panics are logged
// and yield the zero value.
func fetchOrEmpty[T any](ctx context.Context, timeout time.Duration, source string, fn func(context.Context) (T, error)) (out T) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Warn("seo data fetch panicked, using empty data", "source", source, "error", rec)
			var zero T
			out = zero
		}
	}()
	fctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	v, err := fn(fctx)
	if err != nil {
		slog.Warn("seo data fetch failed, using empty data", "source", source, "error", err)
		var zero T
		return zero
	}
	return v
}
