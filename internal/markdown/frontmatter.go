// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package markdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"

	"catalogseo/internal/models"
)

// ErrNoRange is returned for a template file without a positive range_id.
var ErrNoRange = errors.New("template file has no range_id")

// templateHeader is the YAML front matter of a template file. Values
// starting with '#' must be quoted, YAML reads them as comments otherwise.
type templateHeader struct {
	RangeID     int    `yaml:"range_id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	H1          string `yaml:"h1"`
	Preview     string `yaml:"preview"`
	BodyFormat  string `yaml:"body_format"`
}

// ParseTemplate reads a template file: front matter for the four short
// sections, the remaining text as the body. The body format defaults to
// Markdown.
func ParseTemplate(source []byte) (*models.SeoTemplate, error) {
	var h templateHeader
	body, err := frontmatter.Parse(bytes.NewReader(source), &h)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if h.RangeID <= 0 {
		return nil, ErrNoRange
	}

	format := models.BodyFormat(strings.ToLower(strings.TrimSpace(h.BodyFormat)))
	switch format {
	case "":
		format = models.BodyFormatMarkdown
	case models.BodyFormatHTML, models.BodyFormatMarkdown:
	default:
		return nil, fmt.Errorf("unknown body_format %q", h.BodyFormat)
	}

	return &models.SeoTemplate{
		RangeID:     h.RangeID,
		Title:       strings.TrimSpace(h.Title),
		Description: strings.TrimSpace(h.Description),
		H1:          strings.TrimSpace(h.H1),
		Preview:     strings.TrimSpace(h.Preview),
		Content:     strings.TrimSpace(string(body)),
		BodyFormat:  format,
	}, nil
}

// LoadTemplates parses every *.md file under root, sorted by path. Two
// files for the same range are an error.
func LoadTemplates(ctx context.Context, fsys fs.FS, root string) ([]*models.SeoTemplate, error) {
	var paths []string
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && path.Ext(p) == ".md" {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk templates: %w", err)
	}
	sort.Strings(paths)

	seen := make(map[int]string, len(paths))
	out := make([]*models.SeoTemplate, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		tmpl, err := ParseTemplate(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		if prev, dup := seen[tmpl.RangeID]; dup {
			return nil, fmt.Errorf("%s: range %d already defined in %s", p, tmpl.RangeID, prev)
		}
		seen[tmpl.RangeID] = p
		out = append(out, tmpl)
	}
	return out, nil
}
