// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// readyTimeout bounds all dependency checks of one readiness probe.
const readyTimeout = 2 * time.Second

// Check probes one dependency.
type Check func(ctx context.Context) error

// Ready returns a handler for GET /ready. It runs every check in parallel
// and answers 503 when any of them fails. Optional dependencies (the
// shared cache) are not registered as checks since the engine works
// without them.
func Ready(checks map[string]Check) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		results := make([]string, len(names))
		var g errgroup.Group
		for i, name := range names {
			g.Go(func() error {
				if err := checks[name](ctx); err != nil {
					slog.Warn("readiness check failed", "check", name, "error", err)
					results[i] = err.Error()
					return err
				}
				results[i] = "ok"
				return nil
			})
		}
		failed := g.Wait() != nil

		body := struct {
			Status string            `json:"status"`
			Checks map[string]string `json:"checks"`
		}{Status: "ok", Checks: make(map[string]string, len(names))}
		for i, name := range names {
			body.Checks[name] = results[i]
		}

		status := http.StatusOK
		if failed {
			body.Status = "unavailable"
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, body)
	}
}
