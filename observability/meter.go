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
)

// Write outcomes used for the status attribute.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// InitMeter installs a global meter provider exporting over OTLP/HTTP.
// The returned provider must be shut down to flush pending points.
func InitMeter(ctx context.Context, cfg Config, res Resource) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	r, err := newResource(res)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(r),
	)

	otel.SetMeterProvider(mp)
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recorded for every page write.
// A nil *Metrics records nothing.
type Metrics struct {
	writes        metric.Int64Counter
	writeBytes    metric.Int64Histogram
	writeDuration metric.Float64Histogram
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	writes, err := meter.Int64Counter("outlet.writes",
		metric.WithDescription("Pages written to a storage backend"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating outlet.writes counter: %w", err)
	}

	writeBytes, err := meter.Int64Histogram("outlet.write.bytes",
		metric.WithDescription("Size of rendered pages"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating outlet.write.bytes histogram: %w", err)
	}

	writeDuration, err := meter.Float64Histogram("outlet.write.duration",
		metric.WithDescription("Duration of page writes in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating outlet.write.duration histogram: %w", err)
	}

	return &Metrics{
		writes:        writes,
		writeBytes:    writeBytes,
		writeDuration: writeDuration,
	}, nil
}

// RecordWrite records one page write attempt.
func (m *Metrics) RecordWrite(ctx context.Context, backend, status string, size int, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("backend", backend),
		attribute.String("status", status),
	)
	m.writes.Add(ctx, 1, attrs)
	m.writeDuration.Record(ctx, duration.Seconds(), attrs)
	if size > 0 {
		m.writeBytes.Record(ctx, int64(size), metric.WithAttributes(attribute.String("backend", backend)))
	}
}
