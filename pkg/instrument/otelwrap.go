package instrument

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	traceSpan "go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/CoverConnect/egonet"

// InitializeTracer installs a global tracer provider exporting to an OTLP
// HTTP collector. The returned function flushes and stops the provider.
func InitializeTracer(ctx context.Context, serviceName string, collectorAddress string) (func(context.Context) error, error) {
	headers := map[string]string{
		"content-type": "application/json",
	}

	exporter, err := otlptrace.New(
		ctx,
		otlptracehttp.NewClient(
			otlptracehttp.WithEndpoint(collectorAddress),
			otlptracehttp.WithHeaders(headers),
			otlptracehttp.WithInsecure(),
		),
	)
	if err != nil {
		return nil, err
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)
	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// Tracer returns the package tracer from the global provider. Without
// InitializeTracer it is a no-op tracer.
func Tracer() traceSpan.Tracer {
	return otel.Tracer(instrumentationName)
}

// StartSpan opens a span for one dispatched event on a connection.
func StartSpan(ctx context.Context, tracer traceSpan.Tracer, kind string, connID int) (context.Context, traceSpan.Span) {
	if tracer == nil {
		tracer = Tracer()
	}
	return tracer.Start(ctx, "endpoint."+kind,
		traceSpan.WithSpanKind(traceSpan.SpanKindConsumer),
		traceSpan.WithAttributes(
			attribute.String("event.kind", kind),
			attribute.Int("connection.id", connID),
		))
}

// Fail marks span as failed with cause.
func Fail(span traceSpan.Span, cause error) {
	span.RecordError(cause)
	span.SetStatus(codes.Error, cause.Error())
}
