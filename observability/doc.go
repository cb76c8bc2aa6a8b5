// Package observability wires OpenTelemetry traces and metrics for the
// documentation service.
//
//	tp, err := observability.InitTracer(ctx, cfg.TracerConfig())
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanElement)
//	defer span.End()
//
//	metrics, err := observability.NewMetrics(observability.Meter("oasisd"))
//	metrics.RecordExtraction(ctx, "M1800", "resolved", elapsed)
//
// A nil *Metrics records nothing, so callers never need to guard it.
package observability
