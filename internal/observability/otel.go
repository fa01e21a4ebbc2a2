// Package observability owns process-wide telemetry: the OpenTelemetry tracer
// provider exporting over OTLP/gRPC, and the Prometheus collectors of the game
// engine.
//
// Spans come from three places. otelgin opens one server span per HTTP
// request; the services layer adds a child span per game operation, such as
// EvaluateGuess, RecordAttempt and the infinite session calls. The
// scheduler adds Resolve spans carrying the issuance key and mode, and the
// definition client adds Define spans for enrichment lookups. All of them
// are created through Tracer, so they share the "wordle/" namespace.
package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"google.golang.org/grpc/credentials"

	"github.com/tbourn/go-wordle-backend/internal/config"
)

// tracerPrefix namespaces every tracer created through Tracer.
const tracerPrefix = "wordle/"

// Tracer returns the named tracer from the global provider. Services call it
// per operation so a provider installed by SetupOTel is always picked up.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(tracerPrefix + name)
}

// Constructors used by SetupOTel. Tests swap them to force the failure
// paths without a collector.
var (
	// newOTLPClient builds the gRPC transport to the collector.
	newOTLPClient = otlptracegrpc.NewClient

	// newOTLPExporterFn wraps the client in a span exporter. The connection
	// is established lazily, so a missing collector is not an error here.
	newOTLPExporterFn = func(ctx context.Context, client otlptrace.Client) (*otlptrace.Exporter, error) {
		return otlptrace.New(ctx, client)
	}

	// newServiceResourceFn describes the game server process: service name
	// from OTEL_SERVICE_NAME and the build version stamped into main.
	newServiceResourceFn = func(ctx context.Context, serviceName, version string) (*resource.Resource, error) {
		return resource.New(
			ctx,
			resource.WithAttributes(
				semconv.ServiceName(serviceName),
				semconv.ServiceVersion(version),
			),
		)
	}
)

// SetupOTel installs a batching tracer provider for the game service and
// returns its shutdown function, which flushes pending spans. When tracing
// is disabled the returned shutdown is a no-op and the global no-op provider
// stays in place. On error the globals are left untouched.
func SetupOTel(ctx context.Context, cfg config.OTELConfig, version string) (func(context.Context) error, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	exp, err := newOTLPExporterFn(ctx, newOTLPClient(exporterOptions(cfg)...))
	if err != nil {
		return nil, err
	}
	res, err := newServiceResourceFn(ctx, cfg.ServiceName, version)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithSampler(sampler(cfg.SampleRatio)),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	// W3C trace context plus baggage, matching what otelgin extracts.
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return tp.Shutdown, nil
}

// exporterOptions targets the configured collector, over TLS with the
// system roots unless the endpoint is marked insecure.
func exporterOptions(cfg config.OTELConfig) []otlptracegrpc.Option {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		return append(opts, otlptracegrpc.WithInsecure())
	}
	return append(opts, otlptracegrpc.WithTLSCredentials(credentials.NewClientTLSFromCert(nil, "")))
}

// sampler keeps a ratio of root traces and follows the caller's decision
// for requests that arrive with a sampled parent.
func sampler(ratio float64) sdktrace.Sampler {
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}
