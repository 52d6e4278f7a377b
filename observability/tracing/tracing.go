// Package tracing wires the OpenTelemetry tracer provider used to wrap
// block-boundary processing and claim settlement with spans. It installs
// no OTLP exporter: a library module embedded into someone else's node
// has no business dialing a collector on its own, so spans are recorded
// in-process against whatever SpanProcessor the host registers, with a
// no-op default when it registers none.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Config captures the resource attributes attached to every span this
// module produces.
type Config struct {
	ServiceName string
	Environment string
}

// Init installs a process-wide TracerProvider tagged with cfg's
// resource attributes and returns a Tracer scoped to this module, plus
// a shutdown function callers should invoke during teardown.
func Init(cfg Config) (trace.Tracer, func(context.Context) error, error) {
	if cfg.ServiceName == "" {
		return nil, nil, fmt.Errorf("tracing: service name required")
	}

	attrs := []attribute.KeyValue{
		attribute.String("service.name", cfg.ServiceName),
	}
	if cfg.Environment != "" {
		attrs = append(attrs, attribute.String("deployment.environment", cfg.Environment))
	}

	res, err := sdkresource.Merge(sdkresource.Default(), sdkresource.NewSchemaless(attrs...))
	if err != nil {
		return nil, nil, fmt.Errorf("tracing: build resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithResource(res))
	otel.SetTracerProvider(tp)

	return tp.Tracer(cfg.ServiceName), tp.Shutdown, nil
}
