// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"golang.org/x/sync/errgroup"

	"catalogseo/internal/markdown"
	"catalogseo/internal/models"
)

// sectionOutput is the result of one section pipeline.
type sectionOutput struct {
	text     string
	markers  []string
	switches int
}

// renderStats aggregates counters across the five sections.
type renderStats struct {
	switches  int
	variables int
	links     int
}

// renderSections runs the five section pipelines concurrently. Sections
// share read-only inputs and never see each other's output. The first
// failing section cancels the others and its error is returned.
func (e *Engine) renderSections(ctx context.Context, req Request, tmpl *models.SeoTemplate, catalog models.SwitchCatalog) (models.GeneratedContent, renderStats, error) {
	resolver := newSwitchResolver(req, catalog, e.opts.MakeSection)
	var exists existenceFunc
	if e.src.Ranges != nil {
		exists = func(ctx context.Context, rangeID int) (bool, error) {
			return e.src.Ranges.CheckExistence(ctx, rangeID, req.VehicleTypeID)
		}
	}
	links := newLinker(req, catalog.Ranges, exists, e.opts.LinkSection)

	jobs := []struct {
		kind SectionKind
		raw  string
	}{
		{SectionTitle, tmpl.Title},
		{SectionDescription, tmpl.Description},
		{SectionH1, tmpl.H1},
		{SectionPreview, tmpl.Preview},
		{SectionContent, tmpl.Content},
	}
	outputs := make([]sectionOutput, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		g.Go(func() (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					slog.Error("seo section panicked",
						"section", job.kind.String(),
						"range_id", req.RangeID,
						"error", rec,
						"stack", string(debug.Stack()),
					)
					err = fmt.Errorf("section %s panicked: %v", job.kind, rec)
				}
			}()
			out, err := e.renderSection(gctx, job.kind, job.raw, req, resolver, links, tmpl.BodyFormat)
			if err != nil {
				return fmt.Errorf("section %s: %w", job.kind, err)
			}
			outputs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.GeneratedContent{}, renderStats{}, err
	}

	var stats renderStats
	unique := make(map[string]bool)
	for _, out := range outputs {
		stats.switches += out.switches
		for _, m := range out.markers {
			unique[m] = true
		}
	}
	stats.variables = len(unique)
	stats.links = countLinks(outputs[SectionContent].text)

	return models.GeneratedContent{
		Title:       outputs[SectionTitle].text,
		Description: outputs[SectionDescription].text,
		H1:          outputs[SectionH1].text,
		Preview:     outputs[SectionPreview].text,
		Content:     outputs[SectionContent].text,
	}, stats, nil
}

// renderSection runs one pipeline: variables, switches, links (body only),
// Markdown conversion (body only), then cleaning.
func (e *Engine) renderSection(ctx context.Context, kind SectionKind, raw string, req Request, resolver *switchResolver, links *linker, format models.BodyFormat) (sectionOutput, error) {
	var out sectionOutput
	text := raw

	if kind == SectionContent {
		text, out.markers = SubstituteVariablesFormatted(text, req)
		text, out.switches = resolver.resolve(text, bodySwitches)
		text = links.apply(ctx, text)
		if format == models.BodyFormatMarkdown {
			html, err := markdown.ToHTML(text)
			if err != nil {
				return out, fmt.Errorf("render markdown: %w", err)
			}
			text = html
		}
	} else {
		text, out.markers = SubstituteVariables(text, req)
		text, out.switches = resolver.resolve(text, headerSwitches)
	}

	if err := ctx.Err(); err != nil {
		return out, err
	}
	out.text = Clean(text, kind)
	return out, nil
}
