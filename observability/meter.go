package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/gli/logger"
)

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config Config) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the loader's metric instruments. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	loadTotal       metric.Int64Counter
	loadDuration    metric.Float64Histogram
	filesDownloaded metric.Int64Counter
	bytesDownloaded metric.Int64Counter
	errorTotal      metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	loadTotal, err := meter.Int64Counter("gli.load.total",
		metric.WithDescription("Total number of load operations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating gli.load.total counter: %w", err)
	}

	loadDuration, err := meter.Float64Histogram("gli.load.duration",
		metric.WithDescription("Duration of load operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating gli.load.duration histogram: %w", err)
	}

	filesDownloaded, err := meter.Int64Counter("gli.download.files",
		metric.WithDescription("Number of dataset files fetched"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating gli.download.files counter: %w", err)
	}

	bytesDownloaded, err := meter.Int64Counter("gli.download.bytes",
		metric.WithDescription("Bytes written to the local dataset cache"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating gli.download.bytes counter: %w", err)
	}

	errorTotal, err := meter.Int64Counter("gli.error.total",
		metric.WithDescription("Total errors by code and component"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating gli.error.total counter: %w", err)
	}

	return &Metrics{
		loadTotal:       loadTotal,
		loadDuration:    loadDuration,
		filesDownloaded: filesDownloaded,
		bytesDownloaded: bytesDownloaded,
		errorTotal:      errorTotal,
	}, nil
}

// RecordLoad records a finished load operation.
func (m *Metrics) RecordLoad(ctx context.Context, operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.loadTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
	m.loadDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordDownload records one fetched file.
func (m *Metrics) RecordDownload(ctx context.Context, source string, bytes int64) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("source", source))
	m.filesDownloaded.Add(ctx, 1, attrs)
	m.bytesDownloaded.Add(ctx, bytes, attrs)
}

// RecordError records an error by code and component.
func (m *Metrics) RecordError(ctx context.Context, code, component string) {
	if m == nil {
		return
	}
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
		attribute.String("component", component),
	))
}
