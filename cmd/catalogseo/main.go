// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the catalog SEO content server.
// It loads configuration, connects to PostgreSQL and optionally Valkey,
// builds the generation engine and serves the JSON API with graceful
// shutdown.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalogseo/internal/cache"
	"catalogseo/internal/config"
	"catalogseo/internal/database"
	"catalogseo/internal/engine"
	"catalogseo/internal/handlers"
	"catalogseo/internal/markdown"
	"catalogseo/internal/middleware"
	"catalogseo/internal/observability"
	"catalogseo/internal/router"
	"catalogseo/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// JSON in production, text in development.
	if cfg.IsDev() {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))
	} else {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"valkey", cfg.ValkeyEnabled,
		"generation_timeout", cfg.GenerationTimeout.String(),
	)

	if cfg.TracingEnabled {
		shutdown, err := observability.InitTracing(context.Background(), observability.TracingConfig{
			ServiceName: "catalogseo",
			Version:     engine.Version,
			Environment: cfg.Env,
			Endpoint:    cfg.OTLPEndpoint,
			SampleRatio: cfg.TraceSampleRatio,
			Insecure:    cfg.IsDev(),
			Stdout:      os.Stdout,
		})
		if err != nil {
			slog.Error("failed to initialize tracing", "error", err)
			os.Exit(1)
		}
		defer shutdown(context.Background())
	}

	db, err := database.Connect(context.Background(), cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if _, err := database.Migrate(context.Background(), db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Demo catalog for development (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(context.Background(), db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// The shared cache is optional: without it every process keeps its own.
	var shared engine.SharedCache
	if cfg.ValkeyEnabled {
		client, err := cache.ConnectValkey(context.Background(), cfg.ValkeyAddr(), cfg.ValkeyPassword)
		if err != nil {
			slog.Warn("valkey unavailable, using in-process cache only", "addr", cfg.ValkeyAddr(), "error", err)
		} else {
			defer client.Close()
			shared = cache.NewContentCache(client)
		}
	}

	templateStore := store.NewTemplateStore(db)
	cacheLogStore := store.NewCacheLogStore(db)

	if cfg.TemplateDir != "" {
		if err := importTemplates(context.Background(), os.DirFS(cfg.TemplateDir), templateStore); err != nil {
			slog.Error("failed to import templates", "dir", cfg.TemplateDir, "error", err)
			os.Exit(1)
		}
	}

	eng := engine.New(engine.Sources{
		Templates: templateStore,
		Switches:  store.NewSwitchStore(db),
		Ranges:    store.NewRangeStore(db),
		Vehicles:  store.NewVehicleStore(db),
	}, engine.Options{
		Tiers:             cfg.CacheTiers,
		GenerationTimeout: cfg.GenerationTimeout,
		FetchTimeout:      cfg.FetchTimeout,
		LinkSection:       cfg.LinkSection,
		MakeSection:       cfg.MakeSection,
		SharedCache:       shared,
		AuditLog:          cacheLogStore,
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	defer limiter.Stop()

	r := router.New(router.Deps{
		SEO:       handlers.NewSEO(eng, cacheLogStore),
		Templates: handlers.NewTemplates(templateStore, eng),
		Ready:     handlers.Ready(map[string]handlers.Check{"postgres": db.PingContext}),
		Limiter:   limiter,
	})

	// WriteTimeout leaves room for a full generation budget plus encoding.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.GenerationTimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr(), "version", engine.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	stats := eng.GetEngineStats()
	slog.Info("server stopped gracefully", "generated", stats.Generated, "hits", stats.Hits, "misses", stats.Misses)
}

// importTemplates upserts every Markdown template file found in fsys.
func importTemplates(ctx context.Context, fsys fs.FS, ts *store.TemplateStore) error {
	templates, err := markdown.LoadTemplates(ctx, fsys, ".")
	if err != nil {
		return err
	}
	for _, t := range templates {
		if _, err := ts.Upsert(ctx, t); err != nil {
			return err
		}
	}
	slog.Info("templates imported", "count", len(templates))
	return nil
}
