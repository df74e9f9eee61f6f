package infrastructure

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"sphasecli/internal/config"
	"sphasecli/pkg/contracts"
)

const (
	// ServiceName identifies the pipeline in exported spans
	ServiceName = "sphase-pipeline"

	// TracerName is the instrumentation scope of stage spans
	TracerName = "sphasecli/pipeline"
)

// TracingProviders holds the tracing handles for one process. Tracer is
// always usable: with tracing disabled, it is a no-op tracer.
type TracingProviders struct {
	TracerProvider *sdktrace.TracerProvider
	Tracer         trace.Tracer
	Logger         *slog.Logger
}

// InitializeTracing sets up OpenTelemetry tracing for a batch run. With
// tracing disabled (or exporter "none"), no provider is registered and the
// returned Tracer does nothing.
func InitializeTracing(cfg config.TracingConfig, logger *slog.Logger) (*TracingProviders, error) {
	if logger == nil {
		logger = slog.Default()
	}

	providers := &TracingProviders{Logger: logger}

	if !cfg.Enabled || cfg.Exporter == "none" {
		providers.Tracer = otel.Tracer(TracerName)
		return providers, nil
	}

	var exporter sdktrace.SpanExporter
	var err error

	switch cfg.Exporter {
	case "stdout":
		opts := []stdouttrace.Option{}
		if cfg.PrettyPrint {
			opts = append(opts, stdouttrace.WithPrettyPrint())
		}
		exporter, err = stdouttrace.New(opts...)
	default:
		return nil, fmt.Errorf("unsupported trace exporter: %s", cfg.Exporter)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(contracts.Version),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	providers.TracerProvider = tp
	providers.Tracer = tp.Tracer(TracerName, trace.WithInstrumentationVersion(contracts.Version))

	otel.SetTracerProvider(tp)

	logger.Info("tracing initialized", slog.String("exporter", cfg.Exporter))

	return providers, nil
}

// Shutdown flushes and stops the tracer provider. Safe to call when tracing
// was never enabled.
func (p *TracingProviders) Shutdown(ctx context.Context) error {
	if p == nil || p.TracerProvider == nil {
		return nil
	}
	if err := p.TracerProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown tracer provider: %w", err)
	}
	return nil
}
