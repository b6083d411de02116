// apps/go-server/internal/telemetry/telemetry.go
//
// OpenTelemetry tracing bootstrap.
//
// Tracing is opt-in: with no OTEL_ENDPOINT, or OTEL_ENABLED=false, Setup
// registers nothing and spans started through otel.Tracer are no-ops.
// The returned shutdown flushes pending spans and should be deferred.

package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/robalobadob/boggle/apps/go-server/internal/config"
)

// ServiceName identifies this process in traces.
const ServiceName = "boggle-go-server"

// Setup installs a global tracer provider exporting to cfg.OtelEndpoint.
func Setup(ctx context.Context, cfg config.Config) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }

	if !cfg.OtelEnabled || cfg.OtelEndpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(cfg.OtelEndpoint),
	)
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(ServiceName),
		),
	)
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}
