// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package observability

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestInitTracing_Stdout(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := InitTracing(context.Background(), TracingConfig{
		ServiceName: "catalogseo-test",
		Version:     "test",
		Environment: "testing",
		SampleRatio: 1,
		Stdout:      &buf,
	})
	if err != nil {
		t.Fatalf("InitTracing: %v", err)
	}

	_, span := otel.Tracer("test").Start(context.Background(), "seo.test-span")
	span.End()

	// Shutdown flushes the batcher.
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "seo.test-span") || !strings.Contains(out, "catalogseo-test") {
		t.Errorf("exported spans missing name or service: %s", out)
	}
}

func TestInitTracing_Propagators(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), TracingConfig{ServiceName: "catalogseo-test", SampleRatio: 0})
	if err != nil {
		t.Fatalf("InitTracing: %v", err)
	}
	defer shutdown(context.Background())

	fields := otel.GetTextMapPropagator().Fields()
	joined := strings.Join(fields, ",")
	if !strings.Contains(joined, "traceparent") || !strings.Contains(joined, "baggage") {
		t.Errorf("propagator fields = %v", fields)
	}
}
