// Package observability wires OpenTelemetry tracing and metrics.
//
// Exporters are only created when an OTLP endpoint is configured; otherwise
// the global no-op providers stay in place and instruments cost nothing.
//
//	tel := observability.NewTelemetry(cfg, "ocds-outlet", version.Short(), log)
//	registry.Register(tel)
//
//	metrics, err := observability.NewMetrics(observability.Meter(observability.InstrumentationName))
//	metrics.RecordWrite(ctx, "s3", observability.StatusOK, len(body), elapsed)
package observability
