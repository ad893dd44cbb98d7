// Package observability wires OpenTelemetry tracing and metrics around the
// dispatch pipeline. Disabled by default; the zero-value provider is a no-op
// so call sites never nil-check.
package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

// Config controls telemetry initialization
type Config struct {
	Enabled        bool    `yaml:"enabled"`
	ServiceName    string  `yaml:"service_name"`
	ServiceVersion string  `yaml:"service_version"`
	Environment    string  `yaml:"environment"`
	OTLPEndpoint   string  `yaml:"otlp_endpoint"`
	SampleRate     float64 `yaml:"sample_rate"`

	OTLPHeaders map[string]string `yaml:"otlp_headers"`
}

// DefaultConfig returns the disabled development configuration
func DefaultConfig() *Config {
	return &Config{
		Enabled:        false,
		ServiceName:    "metahub",
		ServiceVersion: "0.1.0",
		Environment:    "development",
		OTLPEndpoint:   "localhost:4318",
		SampleRate:     1.0,
	}
}

// TelemetryProvider owns the tracer, meter, and the dispatch metric set
type TelemetryProvider struct {
	config        *Config
	tracer        trace.Tracer
	meter         metric.Meter
	traceProvider *sdktrace.TracerProvider

	// Metrics
	dispatchesTotal  metric.Int64Counter
	dispatchesFailed metric.Int64Counter
	retriesTotal     metric.Int64Counter
	dispatchDuration metric.Float64Histogram
}

// NewTelemetryProvider creates a provider from cfg. A nil or disabled
// config yields a provider whose spans and metrics go nowhere.
func NewTelemetryProvider(cfg *Config) (*TelemetryProvider, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	tp := &TelemetryProvider{
		config: cfg,
	}

	if !cfg.Enabled {
		tp.tracer = otel.Tracer("metahub")
		tp.meter = otel.Meter("metahub")
		return tp, nil
	}

	if err := tp.initTracing(); err != nil {
		return nil, fmt.Errorf("init tracing: %v", err)
	}
	if err := tp.initMetrics(); err != nil {
		return nil, fmt.Errorf("init metrics: %v", err)
	}

	return tp, nil
}

func (tp *TelemetryProvider) initTracing() error {
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(tp.config.ServiceName),
			semconv.ServiceVersion(tp.config.ServiceVersion),
			semconv.DeploymentEnvironment(tp.config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("create resource: %v", err)
	}

	exporter, err := otlptrace.New(context.Background(),
		otlptracehttp.NewClient(
			otlptracehttp.WithEndpoint(tp.config.OTLPEndpoint),
			otlptracehttp.WithHeaders(tp.config.OTLPHeaders),
		),
	)
	if err != nil {
		return fmt.Errorf("create exporter: %v", err)
	}

	tp.traceProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(tp.config.SampleRate)),
	)

	otel.SetTracerProvider(tp.traceProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	tp.tracer = otel.Tracer("metahub",
		trace.WithSchemaURL(semconv.SchemaURL),
	)

	return nil
}

func (tp *TelemetryProvider) initMetrics() error {
	tp.meter = otel.Meter("metahub",
		metric.WithSchemaURL(semconv.SchemaURL),
	)

	var err error

	tp.dispatchesTotal, err = tp.meter.Int64Counter(
		"metahub_dispatches_total",
		metric.WithDescription("Total number of dispatched operations"),
	)
	if err != nil {
		return fmt.Errorf("create dispatches counter: %v", err)
	}

	tp.dispatchesFailed, err = tp.meter.Int64Counter(
		"metahub_dispatches_failed_total",
		metric.WithDescription("Total number of failed dispatches"),
	)
	if err != nil {
		return fmt.Errorf("create failures counter: %v", err)
	}

	tp.retriesTotal, err = tp.meter.Int64Counter(
		"metahub_retries_total",
		metric.WithDescription("Total number of retried adapter calls"),
	)
	if err != nil {
		return fmt.Errorf("create retries counter: %v", err)
	}

	tp.dispatchDuration, err = tp.meter.Float64Histogram(
		"metahub_dispatch_duration_seconds",
		metric.WithDescription("Duration of dispatched operations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("create duration histogram: %v", err)
	}

	return nil
}

// TraceDispatch starts a span covering one dispatched operation
func (tp *TelemetryProvider) TraceDispatch(ctx context.Context, operation string, platform string, requestID string) (context.Context, trace.Span) {
	if tp.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}

	return tp.tracer.Start(ctx, "metahub.dispatch."+operation,
		trace.WithAttributes(
			attribute.String("metahub.operation", operation),
			attribute.String("metahub.platform", platform),
			attribute.String("metahub.request.id", requestID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// RecordDispatch records one completed dispatch, success or failure
func (tp *TelemetryProvider) RecordDispatch(ctx context.Context, operation string, platform string, duration time.Duration, errorCode string) {
	status := "success"
	if errorCode != "" {
		status = "error"
	}
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("platform", platform),
		attribute.String("status", status),
	)

	if tp.dispatchesTotal != nil {
		tp.dispatchesTotal.Add(ctx, 1, attrs)
	}
	if tp.dispatchDuration != nil {
		tp.dispatchDuration.Record(ctx, duration.Seconds(), attrs)
	}
	if errorCode != "" && tp.dispatchesFailed != nil {
		tp.dispatchesFailed.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("platform", platform),
			attribute.String("error_code", errorCode),
		))
	}
}

// RecordRetry records one scheduled retry of an adapter call
func (tp *TelemetryProvider) RecordRetry(ctx context.Context, operation string, platform string) {
	if tp.retriesTotal != nil {
		tp.retriesTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("platform", platform),
		))
	}
}

// SetSpanError records err on span and marks it failed
func (tp *TelemetryProvider) SetSpanError(span trace.Span, err error) {
	if span != nil && err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanSuccess marks span as successful
func (tp *TelemetryProvider) SetSpanSuccess(span trace.Span) {
	if span != nil {
		span.SetStatus(codes.Ok, "")
	}
}

// Shutdown flushes and stops the trace provider
func (tp *TelemetryProvider) Shutdown(ctx context.Context) error {
	if tp.traceProvider != nil {
		return tp.traceProvider.Shutdown(ctx)
	}
	return nil
}
