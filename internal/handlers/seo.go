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

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"catalogseo/internal/engine"
	"catalogseo/internal/models"
	"catalogseo/internal/store"
)

// maxRequestBody caps the JSON body of a generation request.
const maxRequestBody = 1 << 20

// Generator is the engine surface the handlers depend on.
type Generator interface {
	GenerateContent(ctx context.Context, req engine.Request) (models.GeneratedContent, error)
	InvalidateCache(ctx context.Context) int
	GetEngineStats() engine.Stats
}

// InvalidationHistory lists recent cache invalidations.
type InvalidationHistory interface {
	RecentEntries(ctx context.Context, limit int) ([]store.CacheLogEntry, error)
}

// SEO groups the JSON endpoints in front of the generation engine.
type SEO struct {
	engine  Generator
	history InvalidationHistory
}

// NewSEO creates the SEO handler group. history may be nil when no
// database is configured.
func NewSEO(eng Generator, history InvalidationHistory) *SEO {
	return &SEO{engine: eng, history: history}
}

// errorResponse is the JSON body of every 4xx/5xx answer.
type errorResponse struct {
	Error   string                   `json:"error"`
	Fields  map[string]string        `json:"fields,omitempty"`
	Content *models.GeneratedContent `json:"content,omitempty"`
}

// GenerateContent handles POST /api/seo/content. Invalid variables yield
// 400 with the field errors and the emergency content, so a caller can
// still render the page.
func (s *SEO) GenerateContent(w http.ResponseWriter, r *http.Request) {
	var req engine.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
		return
	}
	if err := validateRequest(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request", Fields: fieldErrors(err)})
		return
	}

	content, err := s.engine.GenerateContent(r.Context(), req)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidVariables) {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error:   engine.ErrInvalidVariables.Error(),
				Fields:  fieldErrors(err),
				Content: &content,
			})
			return
		}
		slog.Error("seo generation failed", "range_id", req.RangeID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "generation failed"})
		return
	}
	writeJSON(w, http.StatusOK, content)
}

// InvalidateCache handles POST /api/seo/cache/invalidate.
func (s *SEO) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	n := s.engine.InvalidateCache(r.Context())
	writeJSON(w, http.StatusOK, map[string]int{"invalidated": n})
}

// Stats handles GET /api/seo/stats.
func (s *SEO) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.GetEngineStats())
}

// InvalidationLog handles GET /api/seo/cache/log?limit=N.
func (s *SEO) InvalidationLog(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeJSON(w, http.StatusOK, []store.CacheLogEntry{})
		return
	}
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	entries, err := s.history.RecentEntries(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list cache invalidations", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "cache log unavailable"})
		return
	}
	if entries == nil {
		entries = []store.CacheLogEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// parseLimit reads the optional limit parameter, defaulting to 20.
func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultLogLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("limit must be an integer")
	}
	if err := validation.Validate(n, validation.Required.Error("must be no less than 1"), validation.Min(1), validation.Max(maxLogLimit)); err != nil {
		return 0, errors.New("limit " + err.Error())
	}
	return n, nil
}

// fieldErrors flattens ozzo validation errors into field -> message.
func fieldErrors(err error) map[string]string {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for field, e := range verrs {
		out[field] = e.Error()
	}
	return out
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
