package otel

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	serviceName    = "fnolwatch"
	serviceVersion = "1.0.0"
)

// Exporter records query cache activity as OTEL metrics and ships them to an
// OTEL Collector. It implements query.Recorder.
type Exporter struct {
	provider      *sdkmetric.MeterProvider
	meter         metric.Meter
	hitsTotal     metric.Int64Counter
	missesTotal   metric.Int64Counter
	fetchesTotal  metric.Int64Counter
	retriesTotal  metric.Int64Counter
	failuresTotal metric.Int64Counter
	fetchDuration metric.Float64Histogram
}

// NewExporter creates a new OTEL metrics exporter.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	hitsTotal, err := meter.Int64Counter(
		"fnolwatch_query_cache_hits_total",
		metric.WithDescription("Reads satisfied without a network call"),
		metric.WithUnit("{read}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating hits counter: %w", err)
	}

	missesTotal, err := meter.Int64Counter(
		"fnolwatch_query_cache_misses_total",
		metric.WithDescription("Reads that had to fetch from the backend"),
		metric.WithUnit("{read}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating misses counter: %w", err)
	}

	fetchesTotal, err := meter.Int64Counter(
		"fnolwatch_backend_fetches_total",
		metric.WithDescription("Backend fetch attempts"),
		metric.WithUnit("{fetch}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fetches counter: %w", err)
	}

	retriesTotal, err := meter.Int64Counter(
		"fnolwatch_backend_retries_total",
		metric.WithDescription("Retries after failed backend fetches"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating retries counter: %w", err)
	}

	failuresTotal, err := meter.Int64Counter(
		"fnolwatch_backend_failures_total",
		metric.WithDescription("Backend fetches surfaced as failed after all retries"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failures counter: %w", err)
	}

	fetchDuration, err := meter.Float64Histogram(
		"fnolwatch_backend_fetch_duration_seconds",
		metric.WithDescription("Backend fetch duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	return &Exporter{
		provider:      provider,
		meter:         meter,
		hitsTotal:     hitsTotal,
		missesTotal:   missesTotal,
		fetchesTotal:  fetchesTotal,
		retriesTotal:  retriesTotal,
		failuresTotal: failuresTotal,
		fetchDuration: fetchDuration,
	}, nil
}

func (e *Exporter) Hit(ctx context.Context, op string) {
	e.hitsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
}

func (e *Exporter) Miss(ctx context.Context, op string) {
	e.missesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
}

func (e *Exporter) Fetch(ctx context.Context, op string, d time.Duration, ok bool) {
	opt := metric.WithAttributes(
		attribute.String("op", op),
		attribute.Bool("ok", ok),
	)
	e.fetchesTotal.Add(ctx, 1, opt)
	e.fetchDuration.Record(ctx, d.Seconds(), opt)
}

func (e *Exporter) Retry(ctx context.Context, op string) {
	e.retriesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
}

func (e *Exporter) Failure(ctx context.Context, op string) {
	e.failuresTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
