package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// InitTracing installs an OTLP gRPC span exporter as the global tracer
// provider. The returned shutdown function must be called on exit. When
// tracing is disabled the global provider stays a no-op and callers skip
// this entirely.
func InitTracing(ctx context.Context, endpoint, serviceVersion string) (func(context.Context) error, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter for %q: %w", endpoint, err)
	}

	res := resource.NewWithAttributes(
		"",
		attribute.String("service.name", "theoremdex"),
		attribute.String("service.version", serviceVersion),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	Tracer = otel.Tracer("theoremdex")
	return tp.Shutdown, nil
}
