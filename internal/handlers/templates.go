// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"catalogseo/internal/models"
	"catalogseo/internal/store"
)

// TemplateRepository persists per-range SEO templates.
type TemplateRepository interface {
	List(ctx context.Context) ([]models.SeoTemplate, error)
	Upsert(ctx context.Context, t *models.SeoTemplate) (*models.SeoTemplate, error)
	Delete(ctx context.Context, rangeID int) error
}

// Templates manages the templates the engine reads. Every write drops the
// generated content cache so the next request picks up the new text.
type Templates struct {
	repo   TemplateRepository
	engine Generator
}

// NewTemplates creates the template handler group.
func NewTemplates(repo TemplateRepository, eng Generator) *Templates {
	return &Templates{repo: repo, engine: eng}
}

// List handles GET /api/seo/templates.
func (t *Templates) List(w http.ResponseWriter, r *http.Request) {
	items, err := t.repo.List(r.Context())
	if err != nil {
		slog.Error("list seo templates failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "templates unavailable"})
		return
	}
	if items == nil {
		items = []models.SeoTemplate{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Put handles PUT /api/seo/templates/{rangeId}. A range missing from the
// catalog answers 404.
func (t *Templates) Put(w http.ResponseWriter, r *http.Request) {
	rangeID, ok := rangeParam(w, r)
	if !ok {
		return
	}

	var tmpl models.SeoTemplate
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&tmpl); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
		return
	}
	tmpl.RangeID = rangeID
	if err := validateTemplate(tmpl); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid template", Fields: fieldErrors(err)})
		return
	}

	saved, err := t.repo.Upsert(r.Context(), &tmpl)
	if errors.Is(err, store.ErrUnknownRange) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "range not found"})
		return
	}
	if err != nil {
		slog.Error("save seo template failed", "range_id", rangeID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "template not saved"})
		return
	}
	n := t.engine.InvalidateCache(r.Context())
	slog.Info("seo template saved", "range_id", rangeID, "invalidated", n)
	writeJSON(w, http.StatusOK, saved)
}

// Delete handles DELETE /api/seo/templates/{rangeId}. The range falls
// back to default content afterwards.
func (t *Templates) Delete(w http.ResponseWriter, r *http.Request) {
	rangeID, ok := rangeParam(w, r)
	if !ok {
		return
	}
	if err := t.repo.Delete(r.Context(), rangeID); err != nil {
		slog.Error("delete seo template failed", "range_id", rangeID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "template not deleted"})
		return
	}
	t.engine.InvalidateCache(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// rangeParam parses the {rangeId} URL parameter and writes a 400 on failure.
func rangeParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "rangeId"))
	if err != nil || id < 1 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid range id"})
		return 0, false
	}
	return id, true
}

// validateTemplate requires a title and a known body format.
func validateTemplate(t models.SeoTemplate) error {
	return validation.Errors{
		"title":       validation.Validate(t.Title, validation.Required, validation.Length(1, 500)),
		"body_format": validation.Validate(string(t.BodyFormat), validation.In(string(models.BodyFormatHTML), string(models.BodyFormatMarkdown))),
	}.Filter()
}
