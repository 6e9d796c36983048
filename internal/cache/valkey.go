// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cache provides the SEO engine's caches: the in-process TTL cache
// with adaptive tiers (L1) and the shared Valkey content cache (L2).
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Valkey client timeouts. L2 sits on the generation path, so a slow server
// must turn into a miss well inside the engine's fetch timeout.
const (
	valkeyDialTimeout = 2 * time.Second
	valkeyIOTimeout   = 300 * time.Millisecond
	valkeyPingTimeout = 5 * time.Second
)

// ConnectValkey creates a Valkey client for addr (host:port) and verifies
// it with a ping.
func ConnectValkey(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  valkeyDialTimeout,
		ReadTimeout:  valkeyIOTimeout,
		WriteTimeout: valkeyIOTimeout,
	})

	ctx, cancel := context.WithTimeout(ctx, valkeyPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping %s: %w", addr, err)
	}

	slog.Info("valkey connected", "addr", addr)
	return client, nil
}
