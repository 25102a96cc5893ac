// Package telemetry wires the optional OpenTelemetry tracer described in
// SPEC_FULL.md §A.5. spec.md §1 places metrics/telemetry collection out of
// scope for the routing/multicast engine itself, so the engine never
// requires a tracer to function; this package only exists for callers
// (cmd/simulator) that want hop-level spans during a run.
package telemetry

import (
	"context"
	"fmt"
	"log"

	"github.com/mikkelsvartveit/gdp-multicast-simulator/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// InitTracer installs a global TracerProvider according to cfg and returns
// a shutdown func the caller must invoke before exiting. If tracing is
// disabled, the returned shutdown is a no-op and the global provider is
// left untouched (otel's default no-op tracer keeps hoptrace.StartHop
// essentially free).
func InitTracer(cfg config.TelemetryConfig, serviceName, runID string) func(context.Context) error {
	if !cfg.Tracing.Enabled {
		log.Println("tracing disabled")
		return func(context.Context) error { return nil }
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("simulator.run_id", runID),
		),
	)
	if err != nil {
		log.Fatalf("failed to create telemetry resource: %v", err)
	}

	var tp *sdktrace.TracerProvider
	switch cfg.Tracing.Exporter {
	case "stdout":
		exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			log.Fatalf("failed to initialize stdout exporter: %v", err)
		}
		tp = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exp),
			sdktrace.WithResource(res),
		)
	default:
		panic(fmt.Sprintf("unsupported exporter: %s", cfg.Tracing.Exporter))
	}

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	return tp.Shutdown
}
