// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router wires the HTTP routes of the SEO service.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"catalogseo/internal/handlers"
	"catalogseo/internal/middleware"
)

// Deps are the handler groups mounted by New. Only SEO is required.
type Deps struct {
	SEO       *handlers.SEO
	Templates *handlers.Templates
	Ready     http.HandlerFunc
	Limiter   *middleware.RateLimiter
}

// New returns the chi router. Health probes are never rate limited.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Trace)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)
	if d.Ready != nil {
		r.Get("/ready", d.Ready)
	}

	r.Route("/api/seo", func(r chi.Router) {
		if d.Limiter != nil {
			r.Use(d.Limiter.Middleware)
		}

		r.Post("/content", d.SEO.GenerateContent)
		r.Get("/stats", d.SEO.Stats)

		r.Route("/cache", func(r chi.Router) {
			r.Post("/invalidate", d.SEO.InvalidateCache)
			r.Get("/log", d.SEO.InvalidationLog)
		})

		if d.Templates != nil {
			r.Route("/templates", func(r chi.Router) {
				r.Get("/", d.Templates.List)
				r.Put("/{rangeId}", d.Templates.Put)
				r.Delete("/{rangeId}", d.Templates.Delete)
			})
		}
	})

	return r
}

// healthHandler returns a static JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
