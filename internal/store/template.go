// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"catalogseo/internal/models"
)

// ErrUnknownRange is returned when a template names a range missing from
// the catalog.
var ErrUnknownRange = errors.New("range not in catalog")

// foreignKeyViolation is the PostgreSQL SQLSTATE for a failed FK check.
const foreignKeyViolation = "23503"

// TemplateStore handles per-range SEO template operations.
type TemplateStore struct {
	db *sql.DB
}

// NewTemplateStore creates a new TemplateStore with the given database connection.
func NewTemplateStore(db *sql.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

const templateColumns = `range_id, title, description, h1, preview, content, body_format, updated_at`

func scanTemplate(scanner interface{ Scan(...any) error }) (*models.SeoTemplate, error) {
	var t models.SeoTemplate
	err := scanner.Scan(
		&t.RangeID, &t.Title, &t.Description, &t.H1,
		&t.Preview, &t.Content, &t.BodyFormat, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTemplate returns the template of a range. Returns nil, nil when the
// range has no template.
func (s *TemplateStore) GetTemplate(ctx context.Context, rangeID int) (*models.SeoTemplate, error) {
	t, err := scanTemplate(s.db.QueryRowContext(ctx,
		`SELECT `+templateColumns+` FROM seo_templates WHERE range_id = $1`, rangeID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get seo template %d: %w", rangeID, err)
	}
	return t, nil
}

// List returns every template ordered by range.
func (s *TemplateStore) List(ctx context.Context) ([]models.SeoTemplate, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+templateColumns+` FROM seo_templates ORDER BY range_id`)
	if err != nil {
		return nil, fmt.Errorf("list seo templates: %w", err)
	}
	defer rows.Close()

	var items []models.SeoTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan seo template: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// Upsert creates or replaces the template of t.RangeID. An empty body
// format defaults to HTML.
func (s *TemplateStore) Upsert(ctx context.Context, t *models.SeoTemplate) (*models.SeoTemplate, error) {
	format := t.BodyFormat
	if format == "" {
		format = models.BodyFormatHTML
	}
	out, err := scanTemplate(s.db.QueryRowContext(ctx, `
		INSERT INTO seo_templates (range_id, title, description, h1, preview, content, body_format)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (range_id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			h1 = EXCLUDED.h1,
			preview = EXCLUDED.preview,
			content = EXCLUDED.content,
			body_format = EXCLUDED.body_format,
			updated_at = NOW()
		RETURNING `+templateColumns,
		t.RangeID, t.Title, t.Description, t.H1, t.Preview, t.Content, format,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			err = ErrUnknownRange
		}
		return nil, fmt.Errorf("upsert seo template %d: %w", t.RangeID, err)
	}
	return out, nil
}

// Delete removes the template of a range.
func (s *TemplateStore) Delete(ctx context.Context, rangeID int) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM seo_templates WHERE range_id = $1`, rangeID); err != nil {
		return fmt.Errorf("delete seo template %d: %w", rangeID, err)
	}
	return nil
}
