package observability

import (
	"context"
	"errors"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/ocdsoutlet/component"
	"github.com/kbukum/ocdsoutlet/logger"
)

// Telemetry is the component owning the tracer and meter providers.
type Telemetry struct {
	cfg Config
	res Resource
	log *logger.Logger

	tp *sdktrace.TracerProvider
	mp *sdkmetric.MeterProvider
}

var _ component.Component = (*Telemetry)(nil)

// NewTelemetry creates the telemetry component. Nothing is exported until Start.
func NewTelemetry(cfg Config, res Resource, log *logger.Logger) *Telemetry {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.NewNop()
	}
	return &Telemetry{cfg: cfg, res: res, log: log.WithComponent("telemetry")}
}

// Name implements component.Component.
func (t *Telemetry) Name() string { return "telemetry" }

// Start creates the exporters when an endpoint is configured.
func (t *Telemetry) Start(ctx context.Context) error {
	if !t.cfg.Enabled() {
		t.log.Debug("telemetry export disabled")
		return nil
	}
	tp, err := InitTracer(ctx, t.cfg, t.res)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	mp, err := InitMeter(ctx, t.cfg, t.res)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return fmt.Errorf("init meter: %w", err)
	}
	t.tp, t.mp = tp, mp
	t.log.Info("telemetry initialized", logger.Fields(
		"endpoint", t.cfg.Endpoint,
		"sample_rate", t.cfg.SampleRate,
		"interval", t.cfg.Interval.String(),
	))
	return nil
}

// Stop flushes and shuts down the providers.
func (t *Telemetry) Stop(ctx context.Context) error {
	var errs []error
	if t.tp != nil {
		errs = append(errs, t.tp.Shutdown(ctx))
	}
	if t.mp != nil {
		errs = append(errs, t.mp.Shutdown(ctx))
	}
	t.tp, t.mp = nil, nil
	return errors.Join(errs...)
}

// Health implements component.Component.
func (t *Telemetry) Health(ctx context.Context) component.Health {
	return component.Health{Name: t.Name(), Status: component.StatusHealthy}
}

// Describe implements component.Describable.
func (t *Telemetry) Describe() component.Description {
	details := "disabled"
	if t.cfg.Enabled() {
		details = "otlp=" + t.cfg.Endpoint
	}
	return component.Description{Name: "Telemetry", Type: "telemetry", Details: details}
}
